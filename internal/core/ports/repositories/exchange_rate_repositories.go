package repositories

import (
	"context"

	"github.com/SscSPs/currency_app/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate observations
type ExchangeRateReader interface {
	// FindLatestPerCurrency returns one row per currency, the one with the greatest
	// observed date (ties broken by highest id), ordered by currency ascending.
	FindLatestPerCurrency(ctx context.Context) ([]domain.ExchangeRateObservation, error)

	// FindHistory returns up to limit rows for currency, newest observed date first.
	FindHistory(ctx context.Context, currency string, limit int) ([]domain.ExchangeRateObservation, error)

	// FindLatest returns the most recent row for currency or an apperrors.ErrNotFound error.
	FindLatest(ctx context.Context, currency string) (*domain.ExchangeRateObservation, error)
}

// ExchangeRateWriter defines write operations for exchange rate observations
type ExchangeRateWriter interface {
	// InsertObservation appends one row and returns it with its assigned id.
	// No deduplication is performed.
	InsertObservation(ctx context.Context, obs domain.ExchangeRateObservation) (*domain.ExchangeRateObservation, error)
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
// This is a facade for clients that need access to all operations
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
