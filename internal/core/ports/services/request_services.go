package services

import (
	"context"

	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	"github.com/candenizkocak/procurementsystem/internal/dto"
)

// RequestReaderSvc defines read operations for purchase requests
type RequestReaderSvc interface {
	// GetRequestByID retrieves a request, enforcing the caller's visibility rules.
	GetRequestByID(ctx context.Context, requestID string, requestingUserID string) (*domain.PurchaseRequest, error)

	// ListMyRequests retrieves the requests created by the given user, newest first.
	ListMyRequests(ctx context.Context, creatorUserID string) ([]domain.PurchaseRequest, error)

	// ListAllRequests retrieves every request. Restricted to privileged roles.
	ListAllRequests(ctx context.Context, requestingUserID string) ([]domain.PurchaseRequest, error)

	// ListPendingApprovalsFor retrieves the requests currently awaiting the given
	// user's decision, based on their roles and managed department.
	ListPendingApprovalsFor(ctx context.Context, approverUserID string) ([]domain.PurchaseRequest, error)

	// SearchRequests finds requests whose items match the given name fragment.
	SearchRequests(ctx context.Context, requestingUserID string, itemName string) ([]domain.PurchaseRequest, error)

	// GetRequestApprovals retrieves the approval ledger for a request.
	GetRequestApprovals(ctx context.Context, requestID string, requestingUserID string) ([]domain.Approval, error)
}

// RequestWriterSvc defines write operations for purchase requests
type RequestWriterSvc interface {
	// CreateRequest submits a new purchase request. Amounts are computed from the
	// items, the request is classified to its entry step, and any auto-approval
	// consumes budget atomically with persistence.
	CreateRequest(ctx context.Context, req dto.CreateRequestRequest, creatorUserID string) (*domain.PurchaseRequest, error)

	// ResubmitRequest replaces the items of a returned-for-edit request and runs it
	// through classification again as a fresh submission.
	ResubmitRequest(ctx context.Context, requestID string, req dto.ResubmitRequestRequest, creatorUserID string) (*domain.PurchaseRequest, error)
}

// RequestSvcFacade combines all purchase-request service interfaces
type RequestSvcFacade interface {
	RequestReaderSvc
	RequestWriterSvc
}
