package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/SscSPs/currency_app/internal/apperrors"
	"github.com/SscSPs/currency_app/internal/cache"
	"github.com/SscSPs/currency_app/internal/core/domain"
	portsrepo "github.com/SscSPs/currency_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/currency_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// HistoryLimit is the number of observations returned by GetHistory.
const HistoryLimit = 30

// exchangeRateService implements the ExchangeRateQuerySvc interface
type exchangeRateService struct {
	BaseService
	rateRepo portsrepo.ExchangeRateReader
	cache    *cache.RateCache
}

// QueryOption is a functional option for configuring the exchange rate query service
type QueryOption func(*exchangeRateService)

// WithRateCache puts a read cache in front of the listing queries.
func WithRateCache(c *cache.RateCache) QueryOption {
	return func(s *exchangeRateService) {
		s.cache = c
	}
}

// NewExchangeRateService creates a new exchange rate query service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateReader, options ...QueryOption) portssvc.ExchangeRateQuerySvc {
	svc := &exchangeRateService{
		rateRepo: rateRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure exchangeRateService implements the ExchangeRateQuerySvc interface
var _ portssvc.ExchangeRateQuerySvc = (*exchangeRateService)(nil)

func (s *exchangeRateService) GetLatestRates(ctx context.Context) ([]domain.ExchangeRateObservation, error) {
	if cached, ok := s.cache.Get(cache.LatestRatesKey); ok {
		return cached.([]domain.ExchangeRateObservation), nil
	}

	rates, err := s.rateRepo.FindLatestPerCurrency(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load latest exchange rates")
		return nil, fmt.Errorf("failed to get latest exchange rates: %w", err)
	}

	s.cache.Set(cache.LatestRatesKey, rates)
	return rates, nil
}

func (s *exchangeRateService) GetHistory(ctx context.Context, currency string) ([]domain.ExchangeRateObservation, error) {
	currency, err := normalizeCurrency(currency)
	if err != nil {
		return nil, err
	}

	key := cache.HistoryKey(currency)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]domain.ExchangeRateObservation), nil
	}

	history, err := s.rateRepo.FindHistory(ctx, currency, HistoryLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to load exchange rate history", slog.String("currency", currency))
		return nil, fmt.Errorf("failed to get history for %s: %w", currency, err)
	}

	s.cache.Set(key, history)
	return history, nil
}

func (s *exchangeRateService) Convert(ctx context.Context, currency string, euroAmount float64) (*domain.Conversion, error) {
	currency, err := normalizeCurrency(currency)
	if err != nil {
		return nil, err
	}
	if euroAmount < 0 || math.IsNaN(euroAmount) || math.IsInf(euroAmount, 0) {
		return nil, fmt.Errorf("%w: amount must be a non-negative number", apperrors.ErrValidation)
	}

	latest, err := s.rateRepo.FindLatest(ctx, currency)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no exchange rate data for currency %s", apperrors.ErrNotFound, currency)
		}
		s.LogError(ctx, err, "Failed to load latest exchange rate", slog.String("currency", currency))
		return nil, fmt.Errorf("failed to convert to %s: %w", currency, err)
	}

	if !latest.HasValue() {
		s.LogWarn(ctx, "Latest exchange rate has no value",
			slog.String("currency", currency),
			slog.Time("observed_date", latest.ObservedDate),
		)
		return nil, fmt.Errorf("%w: latest exchange rate for currency %s on %s has no value",
			apperrors.ErrInvalidData, currency, latest.ObservedDate.Format(domain.DateLayout))
	}

	rate := *latest.Value
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		s.LogWarn(ctx, "Latest exchange rate is not finite",
			slog.String("currency", currency),
			slog.Time("observed_date", latest.ObservedDate),
		)
		return nil, fmt.Errorf("%w: latest exchange rate for currency %s on %s is not a finite number",
			apperrors.ErrInvalidData, currency, latest.ObservedDate.Format(domain.DateLayout))
	}

	result := decimal.NewFromFloat(euroAmount).Mul(decimal.NewFromFloat(rate)).InexactFloat64()
	if math.IsInf(result, 0) {
		return nil, fmt.Errorf("%w: amount %g is too large to convert to %s", apperrors.ErrValidation, euroAmount, currency)
	}

	return &domain.Conversion{
		Currency:     currency,
		EuroAmount:   euroAmount,
		Rate:         rate,
		ObservedDate: latest.ObservedDate,
		Result:       result,
	}, nil
}

func normalizeCurrency(currency string) (string, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return "", fmt.Errorf("%w: currency must not be empty", apperrors.ErrValidation)
	}
	return currency, nil
}
