package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/currency_app/internal/cache"
	"github.com/SscSPs/currency_app/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_app/internal/core/ports/services"
	"golang.org/x/sync/singleflight"
)

// DefaultInitialImportDays is the width of the startup import window.
const DefaultInitialImportDays = 90

// importService implements the ExchangeRateImportSvc interface
type importService struct {
	BaseService
	feed        portssvc.FeedSource
	rateRepo    portsrepo.ExchangeRateWriter
	cache       *cache.RateCache
	initialDays int
	now         func() time.Time

	flight singleflight.Group // Dedupes identical concurrent ranges
	runMu  sync.Mutex         // Serializes runs of different ranges
}

// ImportOption is a functional option for configuring the import service
type ImportOption func(*importService)

// WithInitialImportDays overrides the startup window width.
func WithInitialImportDays(days int) ImportOption {
	return func(s *importService) {
		s.initialDays = days
	}
}

// WithClock overrides the clock used to compute "today".
func WithClock(now func() time.Time) ImportOption {
	return func(s *importService) {
		s.now = now
	}
}

// WithImportCache flushes c after every run that inserted rows.
func WithImportCache(c *cache.RateCache) ImportOption {
	return func(s *importService) {
		s.cache = c
	}
}

// WithImportLogger sets the logger used outside of request scope.
func WithImportLogger(logger *slog.Logger) ImportOption {
	return func(s *importService) {
		s.Logger = logger
	}
}

// NewImportService creates a new import service.
func NewImportService(feed portssvc.FeedSource, rateRepo portsrepo.ExchangeRateWriter, options ...ImportOption) portssvc.ExchangeRateImportSvc {
	svc := &importService{
		feed:        feed,
		rateRepo:    rateRepo,
		initialDays: DefaultInitialImportDays,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure importService implements the ExchangeRateImportSvc interface
var _ portssvc.ExchangeRateImportSvc = (*importService)(nil)

func (s *importService) ImportInitial(ctx context.Context) (*domain.ImportResult, error) {
	return s.ImportRange(ctx, domain.NewDateRange(s.now(), s.initialDays))
}

func (s *importService) ImportDaily(ctx context.Context) (*domain.ImportResult, error) {
	return s.ImportRange(ctx, domain.NewDateRange(s.now(), 0))
}

func (s *importService) ImportRange(ctx context.Context, r domain.DateRange) (*domain.ImportResult, error) {
	v, err, shared := s.flight.Do(r.String(), func() (interface{}, error) {
		s.runMu.Lock()
		defer s.runMu.Unlock()
		return s.importRange(ctx, r)
	})
	if shared {
		s.LogDebug(ctx, "Joined in-flight import", slog.String("range", r.String()))
	}
	result, _ := v.(*domain.ImportResult)
	return result, err
}

func (s *importService) importRange(ctx context.Context, r domain.DateRange) (*domain.ImportResult, error) {
	result := &domain.ImportResult{Range: r, URL: s.feed.URL(r)}
	logger := s.GetLogger(ctx).With(
		slog.String("start_date", r.StartISO()),
		slog.String("end_date", r.EndISO()),
	)
	logger.Info("Starting exchange rate import", slog.String("url", result.URL))

	rows, err := s.feed.FetchRows(ctx, r)
	if err != nil {
		logger.Error("Exchange rate import aborted",
			slog.String("url", result.URL),
			slog.String("error", err.Error()),
		)
		return result, fmt.Errorf("import %s: %w", r, err)
	}

	var insertErr, cancelErr error
	for _, row := range rows {
		if row.Skipped() {
			result.Skipped++
			logger.Warn("Skipping unparseable observation",
				slog.String("currency", row.Observation.Currency),
				slog.String("error", row.Err.Error()),
			)
			continue
		}
		if err := ctx.Err(); err != nil {
			cancelErr = err
			break
		}
		result.Parsed++

		if _, err := s.rateRepo.InsertObservation(ctx, row.Observation); err != nil {
			result.Failed++
			logger.Error("Failed to insert observation",
				slog.String("currency", row.Observation.Currency),
				slog.String("observed_date", row.Observation.ObservedDate.Format(domain.DateLayout)),
				slog.String("error", err.Error()),
			)
			if insertErr == nil {
				insertErr = err
			}
			continue
		}
		result.Inserted++
	}

	if result.Inserted > 0 {
		s.cache.Flush()
	}

	logger.Info("Exchange rate import finished",
		slog.Int("parsed", result.Parsed),
		slog.Int("skipped", result.Skipped),
		slog.Int("inserted", result.Inserted),
		slog.Int("failed", result.Failed),
	)

	if cancelErr != nil {
		return result, fmt.Errorf("import %s interrupted: %w", r, errors.Join(cancelErr, insertErr))
	}
	if insertErr != nil {
		return result, fmt.Errorf("import %s: %d of %d inserts failed: %w", r, result.Failed, result.Parsed, insertErr)
	}
	return result, nil
}
