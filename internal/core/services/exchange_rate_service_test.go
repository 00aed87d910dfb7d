package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/candenizkocak/procurementsystem/internal/apperrors"
	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	portssvc "github.com/candenizkocak/procurementsystem/internal/core/ports/services"
	"github.com/candenizkocak/procurementsystem/internal/core/services"
	"github.com/candenizkocak/procurementsystem/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock CurrencyReaderSvc ---
type MockCurrencyReaderSvc struct {
	mock.Mock
}

var _ portssvc.CurrencyReaderSvc = (*MockCurrencyReaderSvc)(nil)

func (m *MockCurrencyReaderSvc) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyReaderSvc) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func TestCreateExchangeRate_Success(t *testing.T) {
	mockRateRepo := new(MockExchangeRateRepository)
	mockCurrencySvc := new(MockCurrencyReaderSvc)
	service := services.NewExchangeRateService(mockRateRepo, mockCurrencySvc)
	ctx := context.Background()

	req := dto.CreateExchangeRateRequest{
		CurrencyCode:  "USD",
		Rate:          decimal.RequireFromString("32.50"),
		DateEffective: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	}

	mockCurrencySvc.On("GetCurrencyByCode", ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil).Once()
	mockRateRepo.On("SaveExchangeRate", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.CurrencyCode == "USD" && r.Rate.Equal(req.Rate) && r.DateEffective.Equal(req.DateEffective)
	})).Return(nil).Once()

	rate, err := service.CreateExchangeRate(ctx, req, "admin-user")

	require.NoError(t, err)
	assert.NotEmpty(t, rate.ExchangeRateID)
	mockRateRepo.AssertExpectations(t)
}

func TestCreateExchangeRate_RejectsHomeCurrency(t *testing.T) {
	service := services.NewExchangeRateService(new(MockExchangeRateRepository), new(MockCurrencyReaderSvc))

	_, err := service.CreateExchangeRate(context.Background(), dto.CreateExchangeRateRequest{
		CurrencyCode:  domain.HomeCurrencyCode,
		Rate:          decimal.NewFromInt(1),
		DateEffective: time.Now(),
	}, "admin-user")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreateExchangeRate_RejectsNonPositiveRate(t *testing.T) {
	service := services.NewExchangeRateService(new(MockExchangeRateRepository), new(MockCurrencyReaderSvc))

	_, err := service.CreateExchangeRate(context.Background(), dto.CreateExchangeRateRequest{
		CurrencyCode:  "USD",
		Rate:          decimal.Zero,
		DateEffective: time.Now(),
	}, "admin-user")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreateExchangeRate_UnregisteredCurrency(t *testing.T) {
	mockRateRepo := new(MockExchangeRateRepository)
	mockCurrencySvc := new(MockCurrencyReaderSvc)
	service := services.NewExchangeRateService(mockRateRepo, mockCurrencySvc)
	ctx := context.Background()

	mockCurrencySvc.On("GetCurrencyByCode", ctx, "XXX").Return(nil, apperrors.ErrNotFound).Once()

	_, err := service.CreateExchangeRate(ctx, dto.CreateExchangeRateRequest{
		CurrencyCode:  "XXX",
		Rate:          decimal.NewFromInt(10),
		DateEffective: time.Now(),
	}, "admin-user")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockRateRepo.AssertNotCalled(t, "SaveExchangeRate", mock.Anything, mock.Anything)
}
