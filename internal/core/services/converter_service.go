package services

import (
	"context"
	"fmt"
	"time"

	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	portsrepo "github.com/candenizkocak/procurementsystem/internal/core/ports/repositories"
	portssvc "github.com/candenizkocak/procurementsystem/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// converterService converts foreign-currency amounts into the home currency using
// recorded exchange rates.
type converterService struct {
	rateRepo portsrepo.ExchangeRateRepositoryFacade
}

// NewConverterService creates a new ConverterSvc.
func NewConverterService(rateRepo portsrepo.ExchangeRateRepositoryFacade) portssvc.ConverterSvc {
	return &converterService{rateRepo: rateRepo}
}

var _ portssvc.ConverterSvc = (*converterService)(nil)

// ValueInHomeCurrency converts amount using the latest rate effective on or before asOf.
// Pinning the reference date keeps a request's home-currency value stable across its
// whole approval lifetime regardless of later rate updates.
func (s *converterService) ValueInHomeCurrency(ctx context.Context, amount decimal.Decimal, currencyCode string, asOf time.Time) (decimal.Decimal, error) {
	if currencyCode == domain.HomeCurrencyCode {
		return amount, nil
	}

	rate, err := s.rateRepo.FindLatestRateOnOrBefore(ctx, currencyCode, asOf)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to resolve rate for %s as of %s: %w", currencyCode, asOf.Format(time.DateOnly), err)
	}

	return amount.Mul(rate.Rate), nil
}
