package usecase

import (
	"context"
	"fmt"

	"TrendHunter/internal/domain/models"
	drepo "TrendHunter/internal/domain/repository"
	xlogger "TrendHunter/pkg/logger"
)

type DiagnoseConfig struct {
	LookbackDays int
	StopWindow   int
	HardStopPct  float64
}

// PositionDiagnostic evaluates one held position and produces a hold/sell
// advice. Rules are checked in strict order: regime break, trailing-low
// break, hard stop. The first hit wins.
type PositionDiagnostic struct {
	source  drepo.MarketDataSource
	regime  *RegimeGate
	metrics drepo.Metrics
	logger  *xlogger.Logger
	cfg     DiagnoseConfig
}

func NewPositionDiagnostic(source drepo.MarketDataSource, regime *RegimeGate, cfg DiagnoseConfig, metrics drepo.Metrics, logger *xlogger.Logger) *PositionDiagnostic {
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = 120
	}
	if cfg.StopWindow <= 0 {
		cfg.StopWindow = 10
	}
	if cfg.HardStopPct >= 0 {
		cfg.HardStopPct = -8
	}
	return &PositionDiagnostic{source: source, regime: regime, metrics: metrics, logger: logger, cfg: cfg}
}

// Diagnose evaluates the position at the live quote against entry cost.
// The trailing low is taken over the bars preceding the latest one, so the
// current session cannot be its own stop reference.
func (d *PositionDiagnostic) Diagnose(ctx context.Context, symbol string, cost float64) (models.Diagnosis, error) {
	sym, err := drepo.NormalizeSymbol(symbol)
	if err != nil {
		return models.Diagnosis{}, fmt.Errorf("%w: %v", ErrSymbolNotFound, err)
	}

	quotes := d.source.FetchQuotes(ctx, []string{sym})
	snap, ok := quotes[sym]
	if !ok || snap.Last <= 0 {
		return models.Diagnosis{}, ErrSymbolNotFound
	}

	bars := d.source.FetchHistory(ctx, sym, d.cfg.LookbackDays)
	if len(bars) < d.cfg.StopWindow+1 {
		d.metrics.RecordError("diagnose")
		return models.Diagnosis{}, ErrDataUnavailable
	}

	// lowest low of the StopWindow bars before the last one
	window := bars[len(bars)-1-d.cfg.StopWindow : len(bars)-1]
	low := window[0].Low
	for _, b := range window[1:] {
		if b.Low < low {
			low = b.Low
		}
	}

	diag := models.Diagnosis{
		Symbol:    sym,
		Name:      snap.Name,
		Price:     snap.Last,
		Low10:     low,
		ProfitPct: (snap.Last/cost - 1) * 100,
	}

	switch {
	case !d.regime.Evaluate(ctx).Safe:
		diag.Advice = "sell: market regime broken"
		diag.Severity = models.SeveritySell
	case snap.Last < low:
		diag.Advice = fmt.Sprintf("sell: broke %d-day low (%.2f)", d.cfg.StopWindow, low)
		diag.Severity = models.SeveritySell
	case diag.ProfitPct < d.cfg.HardStopPct:
		diag.Advice = "sell: hit hard stop-loss"
		diag.Severity = models.SeveritySell
	default:
		diag.Advice = "hold: trend intact"
		diag.Severity = models.SeverityHold
	}

	d.logger.Info("position diagnosed",
		xlogger.String("symbol", sym),
		xlogger.String("advice", diag.Advice),
		xlogger.Float64("profit_pct", diag.ProfitPct))
	return diag, nil
}
