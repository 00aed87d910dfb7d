package services

import (
	"context"

	"github.com/candenizkocak/procurementsystem/internal/core/domain"
)

// NotifierSvc fans workflow events out to the users who should act on or know
// about them. The request creator is never among the recipients of pending-work
// notifications.
type NotifierSvc interface {
	// NotifySubmissionPending informs the approvers of the request's entry step.
	NotifySubmissionPending(ctx context.Context, request *domain.PurchaseRequest) error

	// NotifyStepAdvanced informs the approvers of the step a request moved to.
	NotifyStepAdvanced(ctx context.Context, request *domain.PurchaseRequest) error

	// NotifyFinalApproved informs the creator their request is fully approved.
	NotifyFinalApproved(ctx context.Context, request *domain.PurchaseRequest) error

	// NotifyRejected informs the creator their request was rejected.
	NotifyRejected(ctx context.Context, request *domain.PurchaseRequest, reason *string) error

	// NotifyReturnedForEdit informs the creator their request needs changes.
	NotifyReturnedForEdit(ctx context.Context, request *domain.PurchaseRequest, comments string) error
}

// NotificationSvcFacade exposes a user's in-app notification feed.
type NotificationSvcFacade interface {
	// ListMyNotifications retrieves the user's notifications, newest first.
	ListMyNotifications(ctx context.Context, userID string, limit int) ([]domain.Notification, error)

	// CountUnread counts the user's unread notifications.
	CountUnread(ctx context.Context, userID string) (int64, error)

	// MarkRead marks one of the user's notifications read.
	MarkRead(ctx context.Context, notificationID string, userID string) error

	// MarkAllRead marks all of the user's notifications read.
	MarkAllRead(ctx context.Context, userID string) error
}

// HistorySvc records and reads the per-request audit trail.
type HistorySvc interface {
	// LogAction appends an audit entry for a request.
	LogAction(ctx context.Context, requestID string, userID string, action string, details *string) error

	// ListHistory retrieves a request's audit trail, oldest first.
	ListHistory(ctx context.Context, requestID string, requestingUserID string) ([]domain.RequestHistory, error)
}
