package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"TrendHunter/internal/domain/models"
	xlogger "TrendHunter/pkg/logger"
)

func newTestDiagnostic(src *fakeSource) *PositionDiagnostic {
	src.history["sh000300"] = barsFromCloses(risingCloses(70))
	gate := newTestGate(src, newFakeCache())
	return NewPositionDiagnostic(src, gate, DiagnoseConfig{
		LookbackDays: 120,
		StopWindow:   10,
		HardStopPct:  -8,
	}, nopMetrics{}, xlogger.NewNop())
}

// diagnoseBars: the last bar is the current session, the 10 before it all
// carry the given low.
func diagnoseBars(low float64) []models.Bar {
	bars := barsFromCloses(risingCloses(30))
	for i := range bars {
		bars[i].Low = low
	}
	return bars
}

func TestDiagnoseHold(t *testing.T) {
	src := &fakeSource{
		history: map[string][]models.Bar{"sh600519": diagnoseBars(100)},
		quotes: map[string]models.QuoteSnapshot{
			"sh600519": {Symbol: "sh600519", Name: "贵州茅台", Last: 105},
		},
	}
	diag, err := newTestDiagnostic(src).Diagnose(context.Background(), "600519", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diag.Severity != models.SeverityHold {
		t.Fatalf("expected hold, got %+v", diag)
	}
	if diag.Low10 != 100 {
		t.Fatalf("unexpected trailing low %v", diag.Low10)
	}
	if diag.ProfitPct != 5 {
		t.Fatalf("unexpected profit %v", diag.ProfitPct)
	}
}

func TestDiagnoseSellOnTrailingLowBreak(t *testing.T) {
	src := &fakeSource{
		history: map[string][]models.Bar{"sh600519": diagnoseBars(100)},
		quotes: map[string]models.QuoteSnapshot{
			"sh600519": {Symbol: "sh600519", Name: "贵州茅台", Last: 95},
		},
	}
	diag, err := newTestDiagnostic(src).Diagnose(context.Background(), "600519", 90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diag.Severity != models.SeveritySell {
		t.Fatalf("expected sell, got %+v", diag)
	}
	if !strings.Contains(diag.Advice, "10-day low") {
		t.Fatalf("unexpected advice %q", diag.Advice)
	}
}

func TestDiagnoseSellOnHardStop(t *testing.T) {
	// price above the trailing low but down 9% from cost
	src := &fakeSource{
		history: map[string][]models.Bar{"sh600519": diagnoseBars(80)},
		quotes: map[string]models.QuoteSnapshot{
			"sh600519": {Symbol: "sh600519", Name: "贵州茅台", Last: 91},
		},
	}
	diag, err := newTestDiagnostic(src).Diagnose(context.Background(), "600519", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diag.Severity != models.SeveritySell {
		t.Fatalf("expected sell, got %+v", diag)
	}
	if !strings.Contains(diag.Advice, "stop-loss") {
		t.Fatalf("unexpected advice %q", diag.Advice)
	}
}

func TestDiagnoseRegimeBreakWinsOverOtherRules(t *testing.T) {
	src := &fakeSource{
		history: map[string][]models.Bar{"sh600519": diagnoseBars(100)},
		quotes: map[string]models.QuoteSnapshot{
			"sh600519": {Symbol: "sh600519", Name: "贵州茅台", Last: 95},
		},
	}
	d := newTestDiagnostic(src)
	delete(src.history, "sh000300") // regime reads unsafe

	diag, err := d.Diagnose(context.Background(), "600519", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(diag.Advice, "regime") {
		t.Fatalf("expected regime advice to take precedence, got %q", diag.Advice)
	}
}

func TestDiagnoseUnknownSymbol(t *testing.T) {
	src := &fakeSource{
		history: map[string][]models.Bar{},
		quotes:  map[string]models.QuoteSnapshot{},
	}
	_, err := newTestDiagnostic(src).Diagnose(context.Background(), "600519", 100)
	if !errors.Is(err, ErrSymbolNotFound) {
		t.Fatalf("expected ErrSymbolNotFound, got %v", err)
	}
}

func TestDiagnoseUnsupportedExchange(t *testing.T) {
	src := &fakeSource{history: map[string][]models.Bar{}, quotes: map[string]models.QuoteSnapshot{}}
	_, err := newTestDiagnostic(src).Diagnose(context.Background(), "830001", 100)
	if !errors.Is(err, ErrSymbolNotFound) {
		t.Fatalf("expected ErrSymbolNotFound, got %v", err)
	}
}

func TestDiagnoseThinHistory(t *testing.T) {
	src := &fakeSource{
		history: map[string][]models.Bar{"sh600519": barsFromCloses(risingCloses(5))},
		quotes: map[string]models.QuoteSnapshot{
			"sh600519": {Symbol: "sh600519", Name: "贵州茅台", Last: 95},
		},
	}
	_, err := newTestDiagnostic(src).Diagnose(context.Background(), "600519", 100)
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
}
