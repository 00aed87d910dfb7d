package services

import (
	"context"

	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ApprovalSvcFacade drives pending requests through the approval chain.
type ApprovalSvcFacade interface {
	// ProcessDecision records an approve or reject decision on a pending request at
	// its current step and advances, finalizes, or rejects it accordingly. A final
	// approval consumes budget atomically with the state transition.
	ProcessDecision(ctx context.Context, requestID string, approverUserID string, decision domain.Decision, reason *string) (*domain.PurchaseRequest, error)

	// ReturnForEdit sends a pending request back to its creator with comments
	// instead of deciding it.
	ReturnForEdit(ctx context.Context, requestID string, approverUserID string, comments string) (*domain.PurchaseRequest, error)
}

// StepCatalogSvc exposes the ordered approval step definitions.
type StepCatalogSvc interface {
	// GetStepByOrder retrieves the step definition at the given order.
	GetStepByOrder(ctx context.Context, stepOrder int) (*domain.ApprovalStep, error)

	// ListSteps retrieves all step definitions in ascending order.
	ListSteps(ctx context.Context) ([]domain.ApprovalStep, error)
}

// ClassifierSvc determines where a submission enters the approval chain.
type ClassifierSvc interface {
	// DetermineEntryLevel returns the approval level a new submission starts at for
	// the given creator and net value in home currency. It returns
	// domain.LevelResolved when no approval is required.
	DetermineEntryLevel(ctx context.Context, creator *domain.User, netHomeValue decimal.Decimal) (int, error)
}
