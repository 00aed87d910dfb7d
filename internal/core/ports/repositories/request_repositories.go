package repositories

import (
	"context"

	"github.com/candenizkocak/procurementsystem/internal/core/domain"
)

// RequestReader defines read operations for purchase request data.
type RequestReader interface {
	// FindRequestByID retrieves a request with its items.
	FindRequestByID(ctx context.Context, requestID string) (*domain.PurchaseRequest, error)

	// ListRequestsByCreator retrieves all requests created by a user, newest first.
	ListRequestsByCreator(ctx context.Context, creatorUserID string) ([]domain.PurchaseRequest, error)

	// ListAllRequests retrieves every request, newest first.
	ListAllRequests(ctx context.Context) ([]domain.PurchaseRequest, error)

	// ListPendingByDepartmentManager retrieves requests pending at the department-manager
	// level for departments the given user manages.
	ListPendingByDepartmentManager(ctx context.Context, managerUserID string) ([]domain.PurchaseRequest, error)

	// ListPendingByLevels retrieves requests pending at any of the given approval levels.
	ListPendingByLevels(ctx context.Context, levels []int) ([]domain.PurchaseRequest, error)

	// SearchByItemName retrieves requests whose items match the free-text term.
	SearchByItemName(ctx context.Context, term string) ([]domain.PurchaseRequest, error)
}

// RequestWriter defines the engine's mutating operations. Each call is a single database
// transaction; when a consumption is supplied, the budget check-and-decrement commits
// with the request state change or the whole call fails.
type RequestWriter interface {
	// SaveNewRequest persists a freshly classified request and its items. A non-nil
	// consumption is applied atomically (auto-approved submissions); an insufficient
	// budget aborts the save entirely.
	SaveNewRequest(ctx context.Context, request domain.PurchaseRequest, consumption *domain.BudgetConsumption) error

	// ApplyDecision persists a decision: the request's new status/level, the immutable
	// approval ledger entry, and optionally a budget consumption, all in one transaction.
	// The request row is locked and guarded against concurrent transitions; entry.StepOrder
	// must hold the level the request sat at before the transition.
	ApplyDecision(ctx context.Context, request domain.PurchaseRequest, entry domain.Approval, consumption *domain.BudgetConsumption) error

	// UpdateRequestForResubmit replaces a returned-for-edit request's items, amounts,
	// budget code, currency, and reclassified status/level, guarded on the
	// RETURNED_FOR_EDIT status. A non-nil consumption is applied atomically when the
	// resubmission classifies straight to approved.
	UpdateRequestForResubmit(ctx context.Context, request domain.PurchaseRequest, consumption *domain.BudgetConsumption) error
}

// RequestRepositoryFacade combines all purchase-request repository interfaces.
type RequestRepositoryFacade interface {
	RequestReader
	RequestWriter
}
