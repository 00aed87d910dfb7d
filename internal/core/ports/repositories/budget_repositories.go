package repositories

import (
	"context"

	"github.com/candenizkocak/procurementsystem/internal/core/domain"
)

// BudgetCodeReader defines read operations for budget codes.
type BudgetCodeReader interface {
	// FindBudgetCodeByID retrieves a budget code by its identifier.
	FindBudgetCodeByID(ctx context.Context, budgetCodeID string) (*domain.BudgetCode, error)

	// ListBudgetCodes retrieves budget codes, optionally filtered to one department and to
	// active codes only.
	ListBudgetCodes(ctx context.Context, departmentID *string, activeOnly bool) ([]domain.BudgetCode, error)
}

// BudgetCodeWriter defines administrative write operations for budget codes. The remaining
// balance is never written through these; consumption is the only decrement path.
type BudgetCodeWriter interface {
	// SaveBudgetCode persists a new budget code.
	SaveBudgetCode(ctx context.Context, code domain.BudgetCode) error

	// UpdateBudgetCode updates a budget code's descriptive fields and allocation.
	UpdateBudgetCode(ctx context.Context, code domain.BudgetCode) error
}

// BudgetConsumer is the ledger's atomic check-and-decrement. The implementation must
// serialize concurrent consumptions against the same budget code (row lock or
// equivalent); an insufficient balance returns *apperrors.InsufficientBudgetError and
// leaves the balance untouched.
type BudgetConsumer interface {
	ConsumeBudget(ctx context.Context, consumption domain.BudgetConsumption, actorUserID string) error
}

// BudgetCodeRepositoryFacade combines all budget-code repository interfaces.
type BudgetCodeRepositoryFacade interface {
	BudgetCodeReader
	BudgetCodeWriter
	BudgetConsumer
}
