package usecase

import (
	"context"
	"encoding/json"
	"time"

	"TrendHunter/internal/domain/models"
	drepo "TrendHunter/internal/domain/repository"
	xlogger "TrendHunter/pkg/logger"
	"TrendHunter/pkg/util"
)

// lookbackPad covers sessions lost to holidays so the tail still holds a
// full moving-average window.
const lookbackPad = 10

type RegimeConfig struct {
	Symbol   string
	MAWindow int
	CacheTTL time.Duration
}

// RegimeGate decides whether the market regime permits long entries: the
// benchmark index must close above its moving average. Evaluations are
// cached; data unavailability is reported as unsafe, never guessed around.
type RegimeGate struct {
	source  drepo.MarketDataSource
	cache   drepo.BytesCache
	metrics drepo.Metrics
	logger  *xlogger.Logger
	cfg     RegimeConfig
}

func NewRegimeGate(source drepo.MarketDataSource, cache drepo.BytesCache, cfg RegimeConfig, metrics drepo.Metrics, logger *xlogger.Logger) *RegimeGate {
	if cfg.MAWindow <= 0 {
		cfg.MAWindow = 60
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	return &RegimeGate{source: source, cache: cache, metrics: metrics, logger: logger, cfg: cfg}
}

// Evaluate returns the current regime state. Unsafe outcomes caused by
// missing data carry zero values and are not cached, so the next call
// retries the fetch.
func (g *RegimeGate) Evaluate(ctx context.Context) models.RegimeState {
	key := "regime:" + g.cfg.Symbol
	if b, ok, err := g.cache.GetBytes(key); err == nil && ok {
		var state models.RegimeState
		if json.Unmarshal(b, &state) == nil {
			return state
		}
	}

	bars := g.source.FetchHistory(ctx, g.cfg.Symbol, g.cfg.MAWindow+lookbackPad)
	if len(bars) < g.cfg.MAWindow {
		g.logger.Warn("benchmark history too short",
			xlogger.String("symbol", g.cfg.Symbol), xlogger.Int("bars", len(bars)))
		g.metrics.RecordRegime(false)
		return models.RegimeState{}
	}

	last := bars[len(bars)-1]
	window := bars[len(bars)-g.cfg.MAWindow:]
	var sum float64
	for _, b := range window {
		sum += b.Close
	}
	ma := sum / float64(len(window))

	state := models.RegimeState{
		Safe:  last.Close > ma,
		Index: last.Close,
		MA60:  ma,
		AsOf:  last.Date.Format(util.DateLayout),
	}
	g.metrics.RecordRegime(state.Safe)

	if b, err := json.Marshal(state); err == nil {
		if err := g.cache.SetBytes(key, b, g.cfg.CacheTTL); err != nil {
			g.logger.Warn("regime cache write failed", xlogger.Error(err))
		}
	}
	return state
}
