package repositories

import (
	"context"
	"time"

	"github.com/candenizkocak/procurementsystem/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rates.
type ExchangeRateReader interface {
	// FindLatestRateOnOrBefore retrieves the rate for the currency with the latest
	// effective date on or before the given date. Returns apperrors.ErrRateNotFound
	// (wrapped) when no such rate exists.
	FindLatestRateOnOrBefore(ctx context.Context, currencyCode string, date time.Time) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves all rates for a currency, newest first.
	ListExchangeRates(ctx context.Context, currencyCode string) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rates.
type ExchangeRateWriter interface {
	// SaveExchangeRate inserts a rate, or updates it when one already exists for the same
	// currency and effective date.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange-rate repository interfaces.
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}

// CurrencyReader defines read operations for currency reference data.
type CurrencyReader interface {
	// FindCurrencyByCode retrieves a currency by its 3-letter code.
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all supported currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for currency reference data.
type CurrencyWriter interface {
	// SaveCurrency persists a new currency.
	SaveCurrency(ctx context.Context, currency domain.Currency) error
}

// CurrencyRepositoryFacade combines all currency repository interfaces.
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}
