package usecase

import (
	"context"
	"sort"
	"time"

	"TrendHunter/internal/domain/models"
	drepo "TrendHunter/internal/domain/repository"
	xlogger "TrendHunter/pkg/logger"
	"TrendHunter/pkg/util"
)

type ScanConfig struct {
	LookbackDays   int
	BreakoutWindow int
	MinHistoryBars int
	FetchDelay     time.Duration
}

// BreakoutScanner walks the candidate pool and keeps names whose last price
// exceeds the highest high of the trailing completed window. An unsafe
// regime does not veto the scan; it travels with the report so the caller
// can warn.
type BreakoutScanner struct {
	source  drepo.MarketDataSource
	regime  *RegimeGate
	pool    *PoolBuilder
	metrics drepo.Metrics
	logger  *xlogger.Logger
	cfg     ScanConfig
	now     func() time.Time
}

func NewBreakoutScanner(source drepo.MarketDataSource, regime *RegimeGate, pool *PoolBuilder, cfg ScanConfig, metrics drepo.Metrics, logger *xlogger.Logger) *BreakoutScanner {
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = 120
	}
	if cfg.BreakoutWindow <= 0 {
		cfg.BreakoutWindow = 20
	}
	if cfg.MinHistoryBars <= cfg.BreakoutWindow {
		cfg.MinHistoryBars = cfg.BreakoutWindow + 10
	}
	return &BreakoutScanner{
		source:  source,
		regime:  regime,
		pool:    pool,
		metrics: metrics,
		logger:  logger,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Scan runs one full pass: regime, pool, then per-candidate history checks.
// Cancelling ctx stops the walk and returns the rows collected so far.
// progress may be nil.
func (s *BreakoutScanner) Scan(ctx context.Context, poolSize int, progress drepo.Progress) (models.ScanReport, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordScanDuration(time.Since(start).Seconds())
	}()

	report := models.ScanReport{Regime: s.regime.Evaluate(ctx)}

	candidates, err := s.pool.Build(ctx, poolSize)
	if err != nil {
		return report, err
	}

	for i, cand := range candidates {
		if ctx.Err() != nil {
			s.logger.Warn("scan cancelled", xlogger.Int("done", i), xlogger.Int("total", len(candidates)))
			break
		}
		if progress != nil {
			progress.Notify(models.ScanProgress{Index: i + 1, Total: len(candidates), Symbol: cand.Symbol})
		}

		if row, ok := s.evaluate(ctx, cand); ok {
			report.Rows = append(report.Rows, row)
		}

		if s.cfg.FetchDelay > 0 && i < len(candidates)-1 {
			select {
			case <-time.After(s.cfg.FetchDelay):
			case <-ctx.Done():
			}
		}
	}

	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].ChangePct > report.Rows[j].ChangePct
	})
	if len(report.Rows) > 0 {
		report.Best = &report.Rows[0]
	}

	s.metrics.RecordBreakouts(len(report.Rows))
	s.logger.Info("scan complete",
		xlogger.Int("candidates", len(candidates)),
		xlogger.Int("breakouts", len(report.Rows)),
		xlogger.Bool("regime_safe", report.Regime.Safe))
	return report, nil
}

// evaluate checks one candidate against the trailing-high rule. Candidates
// with too little history, or whose history cannot be fetched, are skipped
// rather than failing the scan.
func (s *BreakoutScanner) evaluate(ctx context.Context, cand models.Candidate) (models.ScanResultRow, bool) {
	bars := s.source.FetchHistory(ctx, cand.Symbol, s.cfg.LookbackDays)
	bars = dropFormingBar(bars, s.now())
	if len(bars) < s.cfg.MinHistoryBars {
		return models.ScanResultRow{}, false
	}

	window := bars[len(bars)-s.cfg.BreakoutWindow:]
	high := window[0].High
	for _, b := range window[1:] {
		if b.High > high {
			high = b.High
		}
	}
	if high <= 0 || cand.Last <= high {
		return models.ScanResultRow{}, false
	}

	return models.ScanResultRow{
		Symbol:      cand.Symbol,
		Name:        cand.Name,
		Price:       cand.Last,
		ChangePct:   cand.ChangePct,
		VolumeRatio: cand.VolumeRatio,
		High20:      high,
		BreakoutPct: (cand.Last/high - 1) * 100,
	}, true
}

// dropFormingBar removes a trailing bar stamped with today's date: the
// session is still running, so its high is not final.
func dropFormingBar(bars []models.Bar, now time.Time) []models.Bar {
	if len(bars) == 0 {
		return bars
	}
	if util.SameDay(bars[len(bars)-1].Date, now) {
		return bars[:len(bars)-1]
	}
	return bars
}
