package services

import (
	"context"

	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	"github.com/candenizkocak/procurementsystem/internal/dto"
)

// BudgetReaderSvc defines read operations for budget codes
type BudgetReaderSvc interface {
	// GetBudgetCodeByID retrieves a specific budget code.
	GetBudgetCodeByID(ctx context.Context, budgetCodeID string) (*domain.BudgetCode, error)

	// ListBudgetCodes retrieves budget codes, optionally filtered by department and
	// restricted to active codes.
	ListBudgetCodes(ctx context.Context, departmentID *string, activeOnly bool) ([]domain.BudgetCode, error)
}

// BudgetWriterSvc defines administrative write operations for budget codes
type BudgetWriterSvc interface {
	// CreateBudgetCode persists a new budget code with its allocation.
	CreateBudgetCode(ctx context.Context, req dto.CreateBudgetCodeRequest, creatorUserID string) (*domain.BudgetCode, error)

	// UpdateBudgetCode updates a budget code's descriptive fields and allocation.
	UpdateBudgetCode(ctx context.Context, budgetCodeID string, req dto.UpdateBudgetCodeRequest, updaterUserID string) (*domain.BudgetCode, error)
}

// BudgetSvcFacade combines all budget-code service interfaces
type BudgetSvcFacade interface {
	BudgetReaderSvc
	BudgetWriterSvc
}
