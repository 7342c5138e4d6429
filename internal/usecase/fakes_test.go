package usecase

import (
	"context"
	"time"

	"TrendHunter/internal/domain/models"
)

type fakeSource struct {
	history map[string][]models.Bar
	quotes  map[string]models.QuoteSnapshot
	calls   int
}

func (f *fakeSource) FetchHistory(_ context.Context, symbol string, _ int) []models.Bar {
	f.calls++
	return f.history[symbol]
}

func (f *fakeSource) FetchQuotes(_ context.Context, symbols []string) map[string]models.QuoteSnapshot {
	out := make(map[string]models.QuoteSnapshot)
	for _, s := range symbols {
		if q, ok := f.quotes[s]; ok {
			out[s] = q
		}
	}
	return out
}

type fakeListing struct {
	snaps []models.QuoteSnapshot
	err   error
}

func (f *fakeListing) ListActive(context.Context) ([]models.QuoteSnapshot, error) {
	return f.snaps, f.err
}

type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache { return &fakeCache{data: make(map[string][]byte)} }

func (c *fakeCache) GetBytes(key string) ([]byte, bool, error) {
	b, ok := c.data[key]
	return b, ok, nil
}

func (c *fakeCache) SetBytes(key string, value []byte, _ time.Duration) error {
	c.data[key] = value
	return nil
}

type nopMetrics struct{}

func (nopMetrics) RecordFetch(string, string) {}
func (nopMetrics) RecordError(string)         {}
func (nopMetrics) RecordScanDuration(float64) {}
func (nopMetrics) RecordPoolSize(int)         {}
func (nopMetrics) RecordBreakouts(int)        {}
func (nopMetrics) RecordRegime(bool)          {}

// flatBars builds n daily bars ending the day before ref, every field set
// from the close price.
func flatBars(n int, close float64, ref time.Time) []models.Bar {
	bars := make([]models.Bar, n)
	for i := range bars {
		date := ref.AddDate(0, 0, -(n - i))
		bars[i] = models.Bar{Date: date, Open: close, High: close, Low: close, Close: close, Volume: 1000}
	}
	return bars
}
