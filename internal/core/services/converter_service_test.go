package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/candenizkocak/procurementsystem/internal/apperrors"
	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	portsrepo "github.com/candenizkocak/procurementsystem/internal/core/ports/repositories"
	"github.com/candenizkocak/procurementsystem/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*MockExchangeRateRepository)(nil)

func (m *MockExchangeRateRepository) FindLatestRateOnOrBefore(ctx context.Context, currencyCode string, date time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, currencyCode, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListExchangeRates(ctx context.Context, currencyCode string) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func TestValueInHomeCurrency_HomeCurrencyIsIdentity(t *testing.T) {
	mockRateRepo := new(MockExchangeRateRepository)
	converter := services.NewConverterService(mockRateRepo)

	amount := decimal.RequireFromString("1234.56")
	got, err := converter.ValueInHomeCurrency(context.Background(), amount, domain.HomeCurrencyCode, time.Now())

	require.NoError(t, err)
	assert.True(t, got.Equal(amount))
	// No rate lookup for the home currency.
	mockRateRepo.AssertNotCalled(t, "FindLatestRateOnOrBefore", mock.Anything, mock.Anything, mock.Anything)
}

func TestValueInHomeCurrency_UsesRateAtReferenceDate(t *testing.T) {
	mockRateRepo := new(MockExchangeRateRepository)
	converter := services.NewConverterService(mockRateRepo)
	ctx := context.Background()

	asOf := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	rate := &domain.ExchangeRate{
		CurrencyCode:  "USD",
		Rate:          decimal.RequireFromString("32.50"),
		DateEffective: time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC),
	}
	mockRateRepo.On("FindLatestRateOnOrBefore", ctx, "USD", asOf).Return(rate, nil).Once()

	got, err := converter.ValueInHomeCurrency(ctx, decimal.NewFromInt(100), "USD", asOf)

	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(3250)), "got %s", got)
	mockRateRepo.AssertExpectations(t)
}

func TestValueInHomeCurrency_NoRateRecorded(t *testing.T) {
	mockRateRepo := new(MockExchangeRateRepository)
	converter := services.NewConverterService(mockRateRepo)
	ctx := context.Background()

	asOf := time.Now()
	mockRateRepo.On("FindLatestRateOnOrBefore", ctx, "CHF", asOf).
		Return(nil, apperrors.ErrRateNotFound).Once()

	_, err := converter.ValueInHomeCurrency(ctx, decimal.NewFromInt(100), "CHF", asOf)

	assert.ErrorIs(t, err, apperrors.ErrRateNotFound)
	mockRateRepo.AssertExpectations(t)
}
