package domain

import "time"

// BaseCurrency is the only denominator currency accepted from the feed.
const BaseCurrency = "EUR"

// ExchangeRateObservation is a single EUR-denominated rate data point.
// Value is nil when the feed carried an empty observation.
type ExchangeRateObservation struct {
	ID               int64     `json:"id"`
	Currency         string    `json:"currency"`      // Quoted currency, e.g. "USD"
	CurrencyDenom    string    `json:"currencyDenom"` // Always BaseCurrency for stored rows
	Value            *float64  `json:"value"`         // 1 EUR = Value units of Currency
	Title            string    `json:"title"`
	TitleDescription string    `json:"titleDescription"`
	ObservedDate     time.Time `json:"observedDate"` // Calendar date, midnight UTC
}

// HasValue reports whether the observation carries a rate.
func (o ExchangeRateObservation) HasValue() bool {
	return o.Value != nil
}

// Conversion is the result of converting a EUR amount into a quoted currency.
type Conversion struct {
	Currency     string
	EuroAmount   float64
	Rate         float64
	ObservedDate time.Time
	Result       float64
}
