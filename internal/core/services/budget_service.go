package services

import (
	"context"
	"fmt"
	"time"

	"github.com/candenizkocak/procurementsystem/internal/apperrors"
	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	portsrepo "github.com/candenizkocak/procurementsystem/internal/core/ports/repositories"
	portssvc "github.com/candenizkocak/procurementsystem/internal/core/ports/services"
	"github.com/candenizkocak/procurementsystem/internal/dto"
	"github.com/google/uuid"
)

// budgetService manages budget code administration. Consumption never goes through this
// service; it is bundled into the request repository's transactional writes.
type budgetService struct {
	budgetRepo portsrepo.BudgetCodeRepositoryFacade
	userRepo   portsrepo.UserRepositoryFacade
}

// NewBudgetService creates a new BudgetSvcFacade.
func NewBudgetService(budgetRepo portsrepo.BudgetCodeRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.BudgetSvcFacade {
	return &budgetService{budgetRepo: budgetRepo, userRepo: userRepo}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

func (s *budgetService) CreateBudgetCode(ctx context.Context, req dto.CreateBudgetCodeRequest, creatorUserID string) (*domain.BudgetCode, error) {
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: budget amount cannot be negative", apperrors.ErrValidation)
	}

	if _, err := s.userRepo.FindDepartmentByID(ctx, req.DepartmentID); err != nil {
		return nil, fmt.Errorf("failed to verify department %s: %w", req.DepartmentID, err)
	}

	now := time.Now()
	code := domain.BudgetCode{
		BudgetCodeID:    uuid.NewString(),
		DepartmentID:    req.DepartmentID,
		Code:            req.Code,
		Description:     req.Description,
		Year:            req.Year,
		RemainingAmount: req.Amount,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.budgetRepo.SaveBudgetCode(ctx, code); err != nil {
		return nil, fmt.Errorf("failed to create budget code: %w", err)
	}

	return &code, nil
}

func (s *budgetService) UpdateBudgetCode(ctx context.Context, budgetCodeID string, req dto.UpdateBudgetCodeRequest, updaterUserID string) (*domain.BudgetCode, error) {
	code, err := s.budgetRepo.FindBudgetCodeByID(ctx, budgetCodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget code %s: %w", budgetCodeID, err)
	}

	if req.Code != nil {
		code.Code = *req.Code
	}
	if req.Description != nil {
		code.Description = *req.Description
	}
	if req.Year != nil {
		code.Year = *req.Year
	}
	if req.Amount != nil {
		// Re-allocation: replaces the remaining balance outright.
		if req.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: budget amount cannot be negative", apperrors.ErrValidation)
		}
		code.RemainingAmount = *req.Amount
	}
	if req.IsActive != nil {
		code.IsActive = *req.IsActive
	}

	code.LastUpdatedAt = time.Now()
	code.LastUpdatedBy = updaterUserID

	if err := s.budgetRepo.UpdateBudgetCode(ctx, *code); err != nil {
		return nil, fmt.Errorf("failed to update budget code %s: %w", budgetCodeID, err)
	}

	return code, nil
}

func (s *budgetService) GetBudgetCodeByID(ctx context.Context, budgetCodeID string) (*domain.BudgetCode, error) {
	code, err := s.budgetRepo.FindBudgetCodeByID(ctx, budgetCodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget code %s: %w", budgetCodeID, err)
	}
	return code, nil
}

func (s *budgetService) ListBudgetCodes(ctx context.Context, departmentID *string, activeOnly bool) ([]domain.BudgetCode, error) {
	codes, err := s.budgetRepo.ListBudgetCodes(ctx, departmentID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list budget codes: %w", err)
	}
	if codes == nil {
		return []domain.BudgetCode{}, nil
	}
	return codes, nil
}
