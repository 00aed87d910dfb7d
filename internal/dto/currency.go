package dto

import (
	"time"

	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCurrencyRequest defines the payload for creating a currency.
type CreateCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,len=3,uppercase"`
	Symbol       string `json:"symbol" binding:"required"`
	Name         string `json:"name" binding:"required"`
}

// CurrencyResponse is the API shape of a currency.
type CurrencyResponse struct {
	CurrencyCode string `json:"currencyCode"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
}

// ToCurrencyResponse converts a domain.Currency to its API shape.
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{CurrencyCode: c.CurrencyCode, Symbol: c.Symbol, Name: c.Name}
}

// ToCurrencyResponses converts a slice of currencies.
func ToCurrencyResponses(currencies []domain.Currency) []CurrencyResponse {
	responses := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		responses[i] = ToCurrencyResponse(&currencies[i])
	}
	return responses
}

// CreateExchangeRateRequest defines the payload for recording an exchange rate.
type CreateExchangeRateRequest struct {
	CurrencyCode  string          `json:"currencyCode" binding:"required,len=3,uppercase"`
	Rate          decimal.Decimal `json:"rate" binding:"required"`
	DateEffective time.Time       `json:"dateEffective" binding:"required"`
}

// ExchangeRateResponse is the API shape of an exchange rate.
type ExchangeRateResponse struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	CurrencyCode   string          `json:"currencyCode"`
	Rate           decimal.Decimal `json:"rate"`
	DateEffective  time.Time       `json:"dateEffective"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to its API shape.
func ToExchangeRateResponse(r *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID: r.ExchangeRateID,
		CurrencyCode:   r.CurrencyCode,
		Rate:           r.Rate,
		DateEffective:  r.DateEffective,
	}
}

// ToExchangeRateResponses converts a slice of exchange rates.
func ToExchangeRateResponses(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}
