package repository

import (
	"context"
	"time"

	"TrendHunter/internal/domain/models"
)

// MarketDataSource is the capability contract every upstream driver satisfies.
// The engine depends on this contract only, never on a source's field layout.
type MarketDataSource interface {
	// FetchHistory returns daily bars ascending by date. It fails softly: after
	// exhausting its retry budget it returns an empty slice, never an error.
	// Callers must treat "empty" as "unavailable", not "no data".
	FetchHistory(ctx context.Context, symbol string, lookbackDays int) []models.Bar

	// FetchQuotes resolves a batch of symbols to snapshots. Unresolvable
	// symbols are silently dropped from the result; the batch never aborts.
	FetchQuotes(ctx context.Context, symbols []string) map[string]models.QuoteSnapshot
}

// MarketListing produces raw snapshots of actively-traded instruments, either
// from one bulk full-market request or from bounded paginated listing calls.
type MarketListing interface {
	ListActive(ctx context.Context) ([]models.QuoteSnapshot, error)
}

// Progress receives per-candidate scan notifications. The engine has no UI
// dependency; the rendering collaborator subscribes through this.
type Progress interface {
	Notify(p models.ScanProgress)
}

// ProgressFunc adapts a plain function to Progress.
type ProgressFunc func(p models.ScanProgress)

func (f ProgressFunc) Notify(p models.ScanProgress) { f(p) }

// BytesCache is the regime-state cache contract. Entries expire, they are
// never invalidated early.
type BytesCache interface {
	GetBytes(key string) ([]byte, bool, error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}

type Metrics interface {
	RecordFetch(source, kind string)
	RecordError(kind string)
	RecordScanDuration(seconds float64)
	RecordPoolSize(n int)
	RecordBreakouts(n int)
	RecordRegime(safe bool)
}
