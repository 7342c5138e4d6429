package usecase

import (
	"context"
	"errors"
	"testing"

	"TrendHunter/internal/domain/models"
	xlogger "TrendHunter/pkg/logger"
)

func newTestPool(listing *fakeListing) *PoolBuilder {
	return NewPoolBuilder(listing, PoolConfig{
		PriceCeiling:   80,
		VolumeRatioMin: 1.2,
		SortKey:        "volume_ratio",
		ExcludeNames:   []string{"ST", "退"},
	}, nopMetrics{}, xlogger.NewNop())
}

func TestPoolFiltersAndRanks(t *testing.T) {
	listing := &fakeListing{snaps: []models.QuoteSnapshot{
		{Symbol: "sh600001", Name: "甲", Last: 10, ChangePct: 2.0, VolumeRatio: 1.5},
		{Symbol: "sh600002", Name: "乙", Last: 10, ChangePct: 3.0, VolumeRatio: 2.5},
		{Symbol: "sh600003", Name: "丙", Last: 90, ChangePct: 1.0, VolumeRatio: 3.0},  // too expensive
		{Symbol: "sh600004", Name: "丁", Last: 10, ChangePct: -1.0, VolumeRatio: 3.0}, // falling
		{Symbol: "sh600005", Name: "戊", Last: 10, ChangePct: 1.0, VolumeRatio: 1.0},  // thin
	}}
	pool, err := newTestPool(listing).Build(context.Background(), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pool) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(pool))
	}
	if pool[0].Symbol != "sh600002" || pool[1].Symbol != "sh600001" {
		t.Fatalf("unexpected ranking %+v", pool)
	}
}

func TestPoolExcludesRiskMarkers(t *testing.T) {
	listing := &fakeListing{snaps: []models.QuoteSnapshot{
		{Symbol: "sh600001", Name: "*ST某某", Last: 10, ChangePct: 2.0, VolumeRatio: 2.0},
		{Symbol: "sh600002", Name: "某某退", Last: 10, ChangePct: 2.0, VolumeRatio: 2.0},
		{Symbol: "sh600003", Name: "正常", Last: 10, ChangePct: 2.0, VolumeRatio: 2.0},
	}}
	pool, err := newTestPool(listing).Build(context.Background(), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pool) != 1 || pool[0].Symbol != "sh600003" {
		t.Fatalf("unexpected pool %+v", pool)
	}
}

func TestPoolPassesRowsWithoutVolumeRatio(t *testing.T) {
	listing := &fakeListing{snaps: []models.QuoteSnapshot{
		{Symbol: "sh600001", Name: "甲", Last: 10, ChangePct: 2.0, VolumeRatio: 0},
	}}
	pool, err := newTestPool(listing).Build(context.Background(), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pool) != 1 {
		t.Fatalf("expected ratio-less row to pass, got %+v", pool)
	}
}

func TestPoolTruncatesToCap(t *testing.T) {
	snaps := make([]models.QuoteSnapshot, 50)
	for i := range snaps {
		snaps[i] = models.QuoteSnapshot{
			Symbol:      "sh600001",
			Name:        "甲",
			Last:        10,
			ChangePct:   1.0,
			VolumeRatio: 1.5 + float64(i)*0.1,
		}
	}
	pool, err := newTestPool(&fakeListing{snaps: snaps}).Build(context.Background(), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pool) != 30 {
		t.Fatalf("expected 30 candidates, got %d", len(pool))
	}
	// highest ratios survive the cut
	if pool[0].VolumeRatio < pool[29].VolumeRatio {
		t.Fatalf("expected descending ratios")
	}
}

func TestPoolListingFailure(t *testing.T) {
	listing := &fakeListing{err: errors.New("connection refused")}
	_, err := newTestPool(listing).Build(context.Background(), 30)
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestPoolSortByChangePct(t *testing.T) {
	listing := &fakeListing{snaps: []models.QuoteSnapshot{
		{Symbol: "sh600001", Name: "甲", Last: 10, ChangePct: 1.0, VolumeRatio: 9.0},
		{Symbol: "sh600002", Name: "乙", Last: 10, ChangePct: 5.0, VolumeRatio: 1.5},
	}}
	b := NewPoolBuilder(listing, PoolConfig{
		PriceCeiling: 80,
		SortKey:      "change_pct",
	}, nopMetrics{}, xlogger.NewNop())
	pool, err := b.Build(context.Background(), 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pool[0].Symbol != "sh600002" {
		t.Fatalf("unexpected ranking %+v", pool)
	}
}
