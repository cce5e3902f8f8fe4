package mapping

import (
	"math"

	"github.com/SscSPs/currency_app/internal/core/domain"
	"github.com/SscSPs/currency_app/internal/models"
)

// ToModelExchangeRateObservation converts a domain observation to its row model.
func ToModelExchangeRateObservation(d domain.ExchangeRateObservation) models.ExchangeRateObservation {
	return models.ExchangeRateObservation{
		ID:            d.ID,
		Currency:      d.Currency,
		CurrencyDenom: d.CurrencyDenom,
		ObsValue:      d.Value,
		Title:         d.Title,
		TitleCompl:    d.TitleDescription,
		ObservedDate:  domain.TruncateToDate(d.ObservedDate),
	}
}

// ToDomainExchangeRateObservation converts a row model to a domain observation.
func ToDomainExchangeRateObservation(m models.ExchangeRateObservation) domain.ExchangeRateObservation {
	return domain.ExchangeRateObservation{
		ID:               m.ID,
		Currency:         m.Currency,
		CurrencyDenom:    m.CurrencyDenom,
		Value:            finiteOrNil(m.ObsValue),
		Title:            m.Title,
		TitleDescription: m.TitleCompl,
		ObservedDate:     domain.TruncateToDate(m.ObservedDate),
	}
}

// ToDomainExchangeRateObservations converts a slice of row models.
func ToDomainExchangeRateObservations(ms []models.ExchangeRateObservation) []domain.ExchangeRateObservation {
	out := make([]domain.ExchangeRateObservation, len(ms))
	for i, m := range ms {
		out[i] = ToDomainExchangeRateObservation(m)
	}
	return out
}

// finiteOrNil drops NaN and infinite stored values, which cannot be served as JSON numbers.
func finiteOrNil(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	return v
}
