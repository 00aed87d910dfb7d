package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// HomeCurrencyCode is the currency all budgets are denominated in and all conversions
// resolve to.
const HomeCurrencyCode = "TRY"

// Currency represents a supported currency.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g. "TRY", "USD")
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	AuditFields
}

// ExchangeRate is a multiplicative factor to the home currency, effective from a given
// date. Conversions always pick the rate with the latest effective date on or before the
// reference date.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"` // Primary Key (UUID)
	CurrencyCode   string          `json:"currencyCode"`   // foreign currency
	Rate           decimal.Decimal `json:"rate"`           // home-currency units per 1 foreign unit
	DateEffective  time.Time       `json:"dateEffective"`
	AuditFields
}
