package models

import "time"

// ExchangeRateObservation mirrors a row of the exchange_rate_observations table.
type ExchangeRateObservation struct {
	ID            int64     `db:"id"`
	Currency      string    `db:"currency"`
	CurrencyDenom string    `db:"currency_denom"`
	ObsValue      *float64  `db:"obs_value"` // NULL when the feed value was empty
	Title         string    `db:"title"`
	TitleCompl    string    `db:"title_compl"`
	ObservedDate  time.Time `db:"observed_date"`
	CreatedAt     time.Time `db:"created_at"`
}
