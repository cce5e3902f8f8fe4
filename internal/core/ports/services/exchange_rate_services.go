package services

import (
	"context"

	"github.com/SscSPs/currency_app/internal/core/domain"
)

// ExchangeRateQuerySvc defines the read API over stored observations
type ExchangeRateQuerySvc interface {
	// GetLatestRates returns the latest observation per currency. An empty slice means no data yet.
	GetLatestRates(ctx context.Context) ([]domain.ExchangeRateObservation, error)

	// GetHistory returns the most recent observations for currency, newest first.
	GetHistory(ctx context.Context, currency string) ([]domain.ExchangeRateObservation, error)

	// Convert multiplies euroAmount by the latest stored rate for currency.
	Convert(ctx context.Context, currency string, euroAmount float64) (*domain.Conversion, error)
}

// ExchangeRateImportSvc defines the ingestion operations
type ExchangeRateImportSvc interface {
	// ImportRange fetches the feed for r and appends every parsed observation.
	ImportRange(ctx context.Context, r domain.DateRange) (*domain.ImportResult, error)

	// ImportInitial imports the configured startup window ending today.
	ImportInitial(ctx context.Context) (*domain.ImportResult, error)

	// ImportDaily imports today only.
	ImportDaily(ctx context.Context) (*domain.ImportResult, error)
}

// FeedSource retrieves and decodes the upstream feed for a date range.
type FeedSource interface {
	// URL returns the request URL used for r.
	URL(r domain.DateRange) string

	// FetchRows returns one row outcome per observation of every EUR-denominated series,
	// in document order. A returned error wraps apperrors.ErrFetch and is fatal for the run.
	FetchRows(ctx context.Context, r domain.DateRange) ([]domain.FeedRow, error)
}
