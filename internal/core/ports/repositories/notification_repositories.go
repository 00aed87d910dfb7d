package repositories

import (
	"context"

	"github.com/candenizkocak/procurementsystem/internal/core/domain"
)

// NotificationWriter persists outbound in-app notifications.
type NotificationWriter interface {
	// SaveNotifications persists a batch of notifications for their recipients.
	SaveNotifications(ctx context.Context, notifications []domain.Notification) error

	// MarkNotificationRead marks a single notification read for its owner.
	MarkNotificationRead(ctx context.Context, notificationID string, userID string) error

	// MarkAllNotificationsRead marks every unread notification read for a user.
	MarkAllNotificationsRead(ctx context.Context, userID string) error
}

// NotificationReader reads a user's notifications.
type NotificationReader interface {
	// ListNotificationsByUser retrieves a user's notifications, newest first, up to limit.
	ListNotificationsByUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error)

	// CountUnreadNotifications counts a user's unread notifications.
	CountUnreadNotifications(ctx context.Context, userID string) (int64, error)
}

// NotificationRepositoryFacade combines the notification interfaces.
type NotificationRepositoryFacade interface {
	NotificationWriter
	NotificationReader
}
