package dto

import (
	"github.com/SscSPs/currency_app/internal/core/domain"
)

// ExchangeRateResponse is one observation as returned by the read API.
type ExchangeRateResponse struct {
	ID               int64    `json:"id"`
	Currency         string   `json:"currency"`
	CurrencyDenom    string   `json:"currencyDenom"`
	Value            *float64 `json:"value"` // null when the feed carried no value
	Title            string   `json:"title"`
	TitleDescription string   `json:"titleDescription"`
	ObservedDate     string   `json:"observedDate"` // YYYY-MM-DD
}

// HistoryQuery binds the query string of the history endpoint.
type HistoryQuery struct {
	Currency string `form:"currency" binding:"required,currencycode"`
}

// ConvertQuery binds the query string of the conversion endpoints.
// The amount may be given as "euro" or "amount"; "euro" wins when both are present.
type ConvertQuery struct {
	Currency string   `form:"currency" binding:"required,currencycode"`
	Euro     *float64 `form:"euro" binding:"omitempty,gte=0"`
	Amount   *float64 `form:"amount" binding:"omitempty,gte=0"`
}

// EuroAmount returns the requested amount and whether one was supplied.
func (q ConvertQuery) EuroAmount() (float64, bool) {
	if q.Euro != nil {
		return *q.Euro, true
	}
	if q.Amount != nil {
		return *q.Amount, true
	}
	return 0, false
}

// ConversionResponse describes a EUR to currency conversion.
type ConversionResponse struct {
	Currency     string  `json:"currency"`
	Euro         float64 `json:"euro"`
	Rate         float64 `json:"rate"`
	ObservedDate string  `json:"observedDate"`
	Result       float64 `json:"result"`
}

// ToExchangeRateResponse converts a domain observation to its response DTO
func ToExchangeRateResponse(obs domain.ExchangeRateObservation) ExchangeRateResponse {
	return ExchangeRateResponse{
		ID:               obs.ID,
		Currency:         obs.Currency,
		CurrencyDenom:    obs.CurrencyDenom,
		Value:            obs.Value,
		Title:            obs.Title,
		TitleDescription: obs.TitleDescription,
		ObservedDate:     obs.ObservedDate.Format(domain.DateLayout),
	}
}

// ToListExchangeRateResponse converts a slice of domain observations to response DTOs.
func ToListExchangeRateResponse(observations []domain.ExchangeRateObservation) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(observations))
	for i, obs := range observations {
		responses[i] = ToExchangeRateResponse(obs)
	}
	return responses
}

// ToConversionResponse converts a domain conversion to its response DTO.
func ToConversionResponse(c domain.Conversion) ConversionResponse {
	return ConversionResponse{
		Currency:     c.Currency,
		Euro:         c.EuroAmount,
		Rate:         c.Rate,
		ObservedDate: c.ObservedDate.Format(domain.DateLayout),
		Result:       c.Result,
	}
}
