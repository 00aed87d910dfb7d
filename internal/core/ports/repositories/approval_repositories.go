package repositories

import (
	"context"

	"github.com/candenizkocak/procurementsystem/internal/core/domain"
)

// ApprovalStepReader defines read access to the approval step catalog. The catalog is
// reference data; there is no writer.
type ApprovalStepReader interface {
	// FindStepByOrder retrieves the step at the given 1-based order.
	FindStepByOrder(ctx context.Context, stepOrder int) (*domain.ApprovalStep, error)

	// ListSteps retrieves all steps ordered by step order.
	ListSteps(ctx context.Context) ([]domain.ApprovalStep, error)
}

// ApprovalReader defines read access to the approval ledger.
type ApprovalReader interface {
	// ListApprovalsByRequestID retrieves the ledger entries for a request, oldest first.
	ListApprovalsByRequestID(ctx context.Context, requestID string) ([]domain.Approval, error)
}

// ApprovalRepositoryFacade combines approval-ledger and step-catalog read interfaces.
type ApprovalRepositoryFacade interface {
	ApprovalStepReader
	ApprovalReader
}

// RequestHistoryWriter appends to the business audit trail.
type RequestHistoryWriter interface {
	SaveRequestHistory(ctx context.Context, entry domain.RequestHistory) error
}

// RequestHistoryReader reads the business audit trail.
type RequestHistoryReader interface {
	ListHistoryByRequestID(ctx context.Context, requestID string) ([]domain.RequestHistory, error)
}

// RequestHistoryRepositoryFacade combines the audit-trail interfaces.
type RequestHistoryRepositoryFacade interface {
	RequestHistoryWriter
	RequestHistoryReader
}
