package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"TrendHunter/internal/domain/models"
	drepo "TrendHunter/internal/domain/repository"
	xlogger "TrendHunter/pkg/logger"
)

type PoolConfig struct {
	PriceCeiling   float64
	VolumeRatioMin float64 // 0 disables the filter
	SortKey        string  // volume_ratio or change_pct
	ExcludeNames   []string
}

// PoolBuilder narrows the full market listing to a ranked candidate pool:
// affordable, rising, actively traded names with no risk markers.
type PoolBuilder struct {
	listing drepo.MarketListing
	metrics drepo.Metrics
	logger  *xlogger.Logger
	cfg     PoolConfig
}

func NewPoolBuilder(listing drepo.MarketListing, cfg PoolConfig, metrics drepo.Metrics, logger *xlogger.Logger) *PoolBuilder {
	if cfg.PriceCeiling <= 0 {
		cfg.PriceCeiling = 80
	}
	if cfg.SortKey == "" {
		cfg.SortKey = "volume_ratio"
	}
	return &PoolBuilder{listing: listing, metrics: metrics, logger: logger, cfg: cfg}
}

// Build returns at most maxSize candidates. A listing failure is surfaced
// as ErrUpstreamUnavailable so callers can tell it apart from a market
// where simply nothing qualifies.
func (b *PoolBuilder) Build(ctx context.Context, maxSize int) ([]models.Candidate, error) {
	snaps, err := b.listing.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	pool := make([]models.Candidate, 0, maxSize)
	for _, s := range snaps {
		if !b.qualifies(s) {
			continue
		}
		pool = append(pool, models.CandidateFromSnapshot(s))
	}

	sort.SliceStable(pool, func(i, j int) bool {
		if b.cfg.SortKey == "change_pct" {
			return pool[i].ChangePct > pool[j].ChangePct
		}
		return pool[i].VolumeRatio > pool[j].VolumeRatio
	})
	if maxSize > 0 && len(pool) > maxSize {
		pool = pool[:maxSize]
	}

	b.metrics.RecordPoolSize(len(pool))
	b.logger.Debug("candidate pool built",
		xlogger.Int("listed", len(snaps)), xlogger.Int("pool", len(pool)))
	return pool, nil
}

func (b *PoolBuilder) qualifies(s models.QuoteSnapshot) bool {
	if s.Last <= 0 || s.Last >= b.cfg.PriceCeiling {
		return false
	}
	if s.ChangePct <= 0 {
		return false
	}
	// a zero ratio means the source does not report one, not low activity
	if b.cfg.VolumeRatioMin > 0 && s.VolumeRatio > 0 && s.VolumeRatio <= b.cfg.VolumeRatioMin {
		return false
	}
	for _, marker := range b.cfg.ExcludeNames {
		if strings.Contains(s.Name, marker) {
			return false
		}
	}
	return true
}
