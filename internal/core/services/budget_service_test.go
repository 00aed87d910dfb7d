package services_test

import (
	"context"
	"testing"

	"github.com/candenizkocak/procurementsystem/internal/apperrors"
	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	"github.com/candenizkocak/procurementsystem/internal/core/services"
	"github.com/candenizkocak/procurementsystem/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateBudgetCode_Success(t *testing.T) {
	mockBudgetRepo := new(MockBudgetCodeRepository)
	mockUserRepo := new(MockUserRepository)
	service := services.NewBudgetService(mockBudgetRepo, mockUserRepo)
	ctx := context.Background()

	deptID := uuid.NewString()
	req := dto.CreateBudgetCodeRequest{
		DepartmentID: deptID,
		Code:         "IT-2026",
		Year:         2026,
		Amount:       decimal.NewFromInt(500_000),
	}

	mockUserRepo.On("FindDepartmentByID", ctx, deptID).Return(&domain.Department{DepartmentID: deptID}, nil).Once()
	mockBudgetRepo.On("SaveBudgetCode", ctx, mock.MatchedBy(func(c domain.BudgetCode) bool {
		return c.IsActive && c.RemainingAmount.Equal(req.Amount) && c.DepartmentID == deptID
	})).Return(nil).Once()

	code, err := service.CreateBudgetCode(ctx, req, "admin-user")

	require.NoError(t, err)
	assert.True(t, code.IsActive, "new codes start active")
	assert.True(t, code.RemainingAmount.Equal(req.Amount))
	mockBudgetRepo.AssertExpectations(t)
}

func TestCreateBudgetCode_NegativeAmount(t *testing.T) {
	service := services.NewBudgetService(new(MockBudgetCodeRepository), new(MockUserRepository))

	_, err := service.CreateBudgetCode(context.Background(), dto.CreateBudgetCodeRequest{
		DepartmentID: uuid.NewString(),
		Code:         "IT-2026",
		Amount:       decimal.NewFromInt(-1),
	}, "admin-user")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreateBudgetCode_UnknownDepartment(t *testing.T) {
	mockBudgetRepo := new(MockBudgetCodeRepository)
	mockUserRepo := new(MockUserRepository)
	service := services.NewBudgetService(mockBudgetRepo, mockUserRepo)
	ctx := context.Background()
	deptID := uuid.NewString()

	mockUserRepo.On("FindDepartmentByID", ctx, deptID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := service.CreateBudgetCode(ctx, dto.CreateBudgetCodeRequest{
		DepartmentID: deptID,
		Code:         "IT-2026",
		Amount:       decimal.NewFromInt(100),
	}, "admin-user")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockBudgetRepo.AssertNotCalled(t, "SaveBudgetCode", mock.Anything, mock.Anything)
}

func TestUpdateBudgetCode_ReallocationReplacesRemaining(t *testing.T) {
	mockBudgetRepo := new(MockBudgetCodeRepository)
	service := services.NewBudgetService(mockBudgetRepo, new(MockUserRepository))
	ctx := context.Background()

	existing := &domain.BudgetCode{
		BudgetCodeID:    uuid.NewString(),
		DepartmentID:    uuid.NewString(),
		Code:            "IT-2026",
		RemainingAmount: decimal.NewFromInt(120),
		IsActive:        true,
	}
	newAmount := decimal.NewFromInt(750_000)

	mockBudgetRepo.On("FindBudgetCodeByID", ctx, existing.BudgetCodeID).Return(existing, nil).Once()
	mockBudgetRepo.On("UpdateBudgetCode", ctx, mock.MatchedBy(func(c domain.BudgetCode) bool {
		return c.RemainingAmount.Equal(newAmount)
	})).Return(nil).Once()

	updated, err := service.UpdateBudgetCode(ctx, existing.BudgetCodeID, dto.UpdateBudgetCodeRequest{Amount: &newAmount}, "admin-user")

	require.NoError(t, err)
	assert.True(t, updated.RemainingAmount.Equal(newAmount))
	mockBudgetRepo.AssertExpectations(t)
}

func TestUpdateBudgetCode_Deactivate(t *testing.T) {
	mockBudgetRepo := new(MockBudgetCodeRepository)
	service := services.NewBudgetService(mockBudgetRepo, new(MockUserRepository))
	ctx := context.Background()

	existing := &domain.BudgetCode{BudgetCodeID: uuid.NewString(), IsActive: true}
	inactive := false

	mockBudgetRepo.On("FindBudgetCodeByID", ctx, existing.BudgetCodeID).Return(existing, nil).Once()
	mockBudgetRepo.On("UpdateBudgetCode", ctx, mock.MatchedBy(func(c domain.BudgetCode) bool {
		return !c.IsActive
	})).Return(nil).Once()

	updated, err := service.UpdateBudgetCode(ctx, existing.BudgetCodeID, dto.UpdateBudgetCodeRequest{IsActive: &inactive}, "admin-user")

	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}
