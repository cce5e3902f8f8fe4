package services

import (
	"log/slog"

	"github.com/SscSPs/currency_app/internal/cache"
	portsrepo "github.com/SscSPs/currency_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_app/internal/core/ports/services"
	"github.com/SscSPs/currency_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The query and import services share the store and the read cache.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, feed portssvc.FeedSource, logger *slog.Logger) *portssvc.ServiceContainer {
	rateCache := cache.New(cfg.RatesCacheTTL)

	return &portssvc.ServiceContainer{
		ExchangeRateQuery: NewExchangeRateService(
			repos.ExchangeRateRepo,
			WithRateCache(rateCache),
		),
		ExchangeRateImport: NewImportService(
			feed,
			repos.ExchangeRateRepo,
			WithInitialImportDays(cfg.InitialImportDays),
			WithImportCache(rateCache),
			WithImportLogger(logger),
		),
	}
}
