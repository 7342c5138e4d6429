//go:build wireinject
// +build wireinject

package di

import (
	"TrendHunter/pkg/config"
	"TrendHunter/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Upstream plumbing
		ProvideLimiter,
		ProvideQuoteBase,
		ProvideRegimeCache,
		ProvideMarketDataSource,
		ProvideMarketListing,

		// Use cases
		ProvideRegimeGate,
		ProvidePoolBuilder,
		ProvideScanner,
		ProvideDiagnostic,

		// Transport
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
