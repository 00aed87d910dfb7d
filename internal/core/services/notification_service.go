package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	portsrepo "github.com/candenizkocak/procurementsystem/internal/core/ports/repositories"
	portssvc "github.com/candenizkocak/procurementsystem/internal/core/ports/services"
	"github.com/candenizkocak/procurementsystem/internal/middleware"
	"github.com/google/uuid"
)

// notificationService fans workflow events out as persisted in-app notifications and
// serves each user's feed.
type notificationService struct {
	notificationRepo portsrepo.NotificationRepositoryFacade
	userRepo         portsrepo.UserRepositoryFacade
}

// NewNotificationService creates a service implementing both NotifierSvc and
// NotificationSvcFacade.
func NewNotificationService(notificationRepo portsrepo.NotificationRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) *notificationService {
	return &notificationService{notificationRepo: notificationRepo, userRepo: userRepo}
}

var (
	_ portssvc.NotifierSvc           = (*notificationService)(nil)
	_ portssvc.NotificationSvcFacade = (*notificationService)(nil)
)

// pendingRecipients resolves who should act on a request waiting at its current level:
// the department's designated manager at level 1, every holder of the step's role at
// the later levels. The creator never receives their own pending-work notification.
func (s *notificationService) pendingRecipients(ctx context.Context, request *domain.PurchaseRequest) ([]string, error) {
	var candidates []string

	switch request.CurrentLevel {
	case domain.LevelDepartmentManager:
		dept, err := s.userRepo.FindDepartmentByID(ctx, request.DepartmentID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve department %s: %w", request.DepartmentID, err)
		}
		if dept.ManagerUserID != nil {
			candidates = append(candidates, *dept.ManagerUserID)
		}
	case domain.LevelProcurementManager:
		users, err := s.userRepo.FindUsersByRole(ctx, domain.RoleProcurementManager)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve procurement managers: %w", err)
		}
		for _, u := range users {
			candidates = append(candidates, u.UserID)
		}
	case domain.LevelDirector:
		users, err := s.userRepo.FindUsersByRole(ctx, domain.RoleDirector)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve directors: %w", err)
		}
		for _, u := range users {
			candidates = append(candidates, u.UserID)
		}
	}

	recipients := candidates[:0]
	for _, userID := range candidates {
		if userID != request.CreatorUserID {
			recipients = append(recipients, userID)
		}
	}
	return recipients, nil
}

func (s *notificationService) saveForRecipients(ctx context.Context, recipients []string, request *domain.PurchaseRequest, kind domain.NotificationKind, message string) error {
	if len(recipients) == 0 {
		middleware.GetLoggerFromCtx(ctx).Warn("No recipients for notification",
			slog.String("request_id", request.RequestID), slog.String("kind", string(kind)))
		return nil
	}

	now := time.Now()
	requestID := request.RequestID
	notifications := make([]domain.Notification, len(recipients))
	for i, userID := range recipients {
		notifications[i] = domain.Notification{
			NotificationID: uuid.NewString(),
			UserID:         userID,
			RequestID:      &requestID,
			Kind:           kind,
			Message:        message,
			Link:           "/requests/" + requestID,
			SentAt:         now,
		}
	}

	if err := s.notificationRepo.SaveNotifications(ctx, notifications); err != nil {
		return fmt.Errorf("failed to save notifications: %w", err)
	}
	return nil
}

func (s *notificationService) NotifySubmissionPending(ctx context.Context, request *domain.PurchaseRequest) error {
	recipients, err := s.pendingRecipients(ctx, request)
	if err != nil {
		return err
	}
	message := fmt.Sprintf("A purchase request (%s %s gross) awaits your approval.",
		request.GrossAmount.StringFixed(2), request.CurrencyCode)
	return s.saveForRecipients(ctx, recipients, request, domain.NotifySubmissionPendingApproval, message)
}

func (s *notificationService) NotifyStepAdvanced(ctx context.Context, request *domain.PurchaseRequest) error {
	recipients, err := s.pendingRecipients(ctx, request)
	if err != nil {
		return err
	}
	message := fmt.Sprintf("A purchase request (%s %s gross) advanced to your approval step.",
		request.GrossAmount.StringFixed(2), request.CurrencyCode)
	return s.saveForRecipients(ctx, recipients, request, domain.NotifyStepAdvanced, message)
}

func (s *notificationService) NotifyFinalApproved(ctx context.Context, request *domain.PurchaseRequest) error {
	message := "Your purchase request has been fully approved."
	return s.saveForRecipients(ctx, []string{request.CreatorUserID}, request, domain.NotifyFinalApproved, message)
}

func (s *notificationService) NotifyRejected(ctx context.Context, request *domain.PurchaseRequest, reason *string) error {
	message := "Your purchase request has been rejected."
	if reason != nil && *reason != "" {
		message = fmt.Sprintf("Your purchase request has been rejected: %s", *reason)
	}
	return s.saveForRecipients(ctx, []string{request.CreatorUserID}, request, domain.NotifyRejected, message)
}

func (s *notificationService) NotifyReturnedForEdit(ctx context.Context, request *domain.PurchaseRequest, comments string) error {
	message := fmt.Sprintf("Your purchase request was returned for edit: %s", comments)
	return s.saveForRecipients(ctx, []string{request.CreatorUserID}, request, domain.NotifyReturnedForEdit, message)
}

func (s *notificationService) ListMyNotifications(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	notifications, err := s.notificationRepo.ListNotificationsByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	if notifications == nil {
		return []domain.Notification{}, nil
	}
	return notifications, nil
}

func (s *notificationService) CountUnread(ctx context.Context, userID string) (int64, error) {
	count, err := s.notificationRepo.CountUnreadNotifications(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID string, userID string) error {
	if err := s.notificationRepo.MarkNotificationRead(ctx, notificationID, userID); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.notificationRepo.MarkAllNotificationsRead(ctx, userID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
