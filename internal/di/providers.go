package di

import (
	"TrendHunter/internal/domain/repository"
	"TrendHunter/internal/handler/api"
	icache "TrendHunter/internal/service/cache"
	"TrendHunter/internal/service/eastmoney"
	"TrendHunter/internal/service/quote"
	"TrendHunter/internal/service/ratelimit"
	"TrendHunter/internal/service/sina"
	"TrendHunter/internal/service/tencent"
	"TrendHunter/internal/usecase"
	"TrendHunter/pkg/config"
	xlogger "TrendHunter/pkg/logger"
	"TrendHunter/pkg/metrics"
	"TrendHunter/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*xlogger.Logger, error) {
	return xlogger.New(&xlogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideLimiter creates the shared per-host rate limiter.
func ProvideLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideQuoteBase creates the shared resilient-fetch foundation.
func ProvideQuoteBase(cfg *config.Config, limiter *ratelimit.Limiter) *quote.Base {
	return quote.NewBase(quote.BaseConfig{
		Timeout:       cfg.Source.Timeout,
		DisableProxy:  cfg.Source.DisableProxy,
		Retries:       cfg.Source.Retries,
		RetryDelayMin: cfg.Source.RetryDelayMin,
		RetryDelayMax: cfg.Source.RetryDelayMax,
		RatePerSec:    cfg.Source.RatePerSec,
		Burst:         cfg.Source.Burst,
	}, limiter)
}

// ProvideRegimeCache creates the regime-state cache: Redis when configured,
// otherwise in-process.
func ProvideRegimeCache(cfg *config.Config) repository.BytesCache {
	if cfg.Redis.Enabled {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvideMarketDataSource selects the history/quote driver.
func ProvideMarketDataSource(cfg *config.Config, base *quote.Base, m repository.Metrics, l *xlogger.Logger) repository.MarketDataSource {
	if cfg.Source.Driver == "tencent" {
		return tencent.New(base, m, l)
	}
	return eastmoney.New(base, m, l)
}

// ProvideMarketListing selects the listing source.
func ProvideMarketListing(cfg *config.Config, base *quote.Base, m repository.Metrics, l *xlogger.Logger) repository.MarketListing {
	if cfg.Source.Listing == "sina" {
		return sina.NewListing(base, sina.Config{
			PageSize:  cfg.Listing.PageSize,
			MaxPages:  cfg.Listing.MaxPages,
			PageDelay: cfg.Listing.PageDelay,
		}, m, l)
	}
	return eastmoney.New(base, m, l)
}

// ProvideRegimeGate creates the benchmark regime gate.
func ProvideRegimeGate(cfg *config.Config, source repository.MarketDataSource, cache repository.BytesCache, m repository.Metrics, l *xlogger.Logger) *usecase.RegimeGate {
	return usecase.NewRegimeGate(source, cache, usecase.RegimeConfig{
		Symbol:   cfg.Benchmark.Symbol,
		MAWindow: cfg.Strategy.MAWindow,
		CacheTTL: cfg.Benchmark.CacheTTL,
	}, m, l)
}

// ProvidePoolBuilder creates the candidate pool builder.
func ProvidePoolBuilder(cfg *config.Config, listing repository.MarketListing, m repository.Metrics, l *xlogger.Logger) *usecase.PoolBuilder {
	return usecase.NewPoolBuilder(listing, usecase.PoolConfig{
		PriceCeiling:   cfg.Strategy.PriceCeiling,
		VolumeRatioMin: cfg.Strategy.VolumeRatioMin,
		SortKey:        cfg.Strategy.SortKey,
		ExcludeNames:   cfg.Strategy.ExcludeNames,
	}, m, l)
}

// ProvideScanner creates the breakout scanner.
func ProvideScanner(cfg *config.Config, source repository.MarketDataSource, gate *usecase.RegimeGate, pool *usecase.PoolBuilder, m repository.Metrics, l *xlogger.Logger) *usecase.BreakoutScanner {
	return usecase.NewBreakoutScanner(source, gate, pool, usecase.ScanConfig{
		LookbackDays:   cfg.Strategy.LookbackDays,
		BreakoutWindow: cfg.Strategy.BreakoutWindow,
		MinHistoryBars: cfg.Strategy.MinHistoryBars,
		FetchDelay:     cfg.Strategy.FetchDelay,
	}, m, l)
}

// ProvideDiagnostic creates the position diagnostic.
func ProvideDiagnostic(cfg *config.Config, source repository.MarketDataSource, gate *usecase.RegimeGate, m repository.Metrics, l *xlogger.Logger) *usecase.PositionDiagnostic {
	return usecase.NewPositionDiagnostic(source, gate, usecase.DiagnoseConfig{
		LookbackDays: cfg.Strategy.LookbackDays,
		StopWindow:   cfg.Strategy.StopWindow,
		HardStopPct:  cfg.Strategy.HardStopPct,
	}, m, l)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(l *xlogger.Logger, gate *usecase.RegimeGate, scanner *usecase.BreakoutScanner, diagnostic *usecase.PositionDiagnostic) *api.StrategyEchoHandler {
	return api.NewStrategyEchoHandler(l, gate, scanner, diagnostic)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *xlogger.Logger, handler *api.StrategyEchoHandler, cache repository.BytesCache) *server.App {
	return server.New(cfg, l, handler, cache)
}
