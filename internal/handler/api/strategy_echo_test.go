package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	models "TrendHunter/internal/domain/models"
	"TrendHunter/internal/usecase"
	xlogger "TrendHunter/pkg/logger"

	"github.com/labstack/echo/v4"
)

type stubSource struct {
	history map[string][]models.Bar
	quotes  map[string]models.QuoteSnapshot
}

func (s *stubSource) FetchHistory(_ context.Context, symbol string, _ int) []models.Bar {
	return s.history[symbol]
}

func (s *stubSource) FetchQuotes(_ context.Context, symbols []string) map[string]models.QuoteSnapshot {
	out := make(map[string]models.QuoteSnapshot)
	for _, sym := range symbols {
		if q, ok := s.quotes[sym]; ok {
			out[sym] = q
		}
	}
	return out
}

type stubListing struct {
	snaps []models.QuoteSnapshot
	err   error
}

func (s *stubListing) ListActive(context.Context) ([]models.QuoteSnapshot, error) {
	return s.snaps, s.err
}

type stubCache struct{ data map[string][]byte }

func (c *stubCache) GetBytes(key string) ([]byte, bool, error) {
	b, ok := c.data[key]
	return b, ok, nil
}

func (c *stubCache) SetBytes(key string, value []byte, _ time.Duration) error {
	c.data[key] = value
	return nil
}

type stubMetrics struct{}

func (stubMetrics) RecordFetch(string, string) {}
func (stubMetrics) RecordError(string)         {}
func (stubMetrics) RecordScanDuration(float64) {}
func (stubMetrics) RecordPoolSize(int)         {}
func (stubMetrics) RecordBreakouts(int)        {}
func (stubMetrics) RecordRegime(bool)          {}

func benchmarkBars(n int) []models.Bar {
	ref := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]models.Bar, n)
	for i := range bars {
		c := float64(i + 1)
		bars[i] = models.Bar{Date: ref.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c}
	}
	return bars
}

func newTestHandler(src *stubSource, listing *stubListing) *StrategyEchoHandler {
	log := xlogger.NewNop()
	cache := &stubCache{data: make(map[string][]byte)}
	gate := usecase.NewRegimeGate(src, cache, usecase.RegimeConfig{
		Symbol: "sh000300", MAWindow: 60, CacheTTL: time.Minute,
	}, stubMetrics{}, log)
	pool := usecase.NewPoolBuilder(listing, usecase.PoolConfig{
		PriceCeiling: 80, VolumeRatioMin: 1.2,
	}, stubMetrics{}, log)
	scanner := usecase.NewBreakoutScanner(src, gate, pool, usecase.ScanConfig{
		LookbackDays: 120, BreakoutWindow: 20, MinHistoryBars: 30,
	}, stubMetrics{}, log)
	diagnose := usecase.NewPositionDiagnostic(src, gate, usecase.DiagnoseConfig{
		LookbackDays: 120, StopWindow: 10, HardStopPct: -8,
	}, stubMetrics{}, log)
	return NewStrategyEchoHandler(log, gate, scanner, diagnose)
}

func TestRegimeEndpoint(t *testing.T) {
	src := &stubSource{history: map[string][]models.Bar{"sh000300": benchmarkBars(70)}}
	h := newTestHandler(src, &stubListing{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/regime", nil)
	rec := httptest.NewRecorder()
	if err := h.Regime(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"safe":true`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestScanEndpointUpstreamFailure(t *testing.T) {
	src := &stubSource{history: map[string][]models.Bar{"sh000300": benchmarkBars(70)}}
	h := newTestHandler(src, &stubListing{err: errors.New("connection refused")})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/scan", strings.NewReader(`{"pool_size":10}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.Scan(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "ERR_UPSTREAM_UNAVAILABLE") {
		t.Fatalf("expected upstream error code, got %s", rec.Body.String())
	}
}

func TestDiagnoseEndpointUnknownSymbol(t *testing.T) {
	src := &stubSource{
		history: map[string][]models.Bar{"sh000300": benchmarkBars(70)},
		quotes:  map[string]models.QuoteSnapshot{},
	}
	h := newTestHandler(src, &stubListing{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/diagnose", strings.NewReader(`{"symbol":"600519","cost":100}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.Diagnose(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "ERR_NOT_FOUND") {
		t.Fatalf("expected not-found code, got %s", rec.Body.String())
	}
}

func TestDiagnoseEndpointRejectsMissingCost(t *testing.T) {
	src := &stubSource{history: map[string][]models.Bar{"sh000300": benchmarkBars(70)}}
	h := newTestHandler(src, &stubListing{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/diagnose", strings.NewReader(`{"symbol":"600519"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.Diagnose(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "ERR_GT") {
		t.Fatalf("expected validation error, got %s", rec.Body.String())
	}
}
