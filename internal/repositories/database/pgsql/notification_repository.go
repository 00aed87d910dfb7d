package pgsql

import (
	"context"
	"fmt"

	"github.com/candenizkocak/procurementsystem/internal/apperrors"
	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	portsrepo "github.com/candenizkocak/procurementsystem/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxNotificationRepository struct {
	BaseRepository
}

// newPgxNotificationRepository creates a new repository for in-app notifications.
func newPgxNotificationRepository(pool *pgxpool.Pool) portsrepo.NotificationRepositoryFacade {
	return &PgxNotificationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

// SaveNotifications persists a batch of notifications in one round trip.
func (r *PgxNotificationRepository) SaveNotifications(ctx context.Context, notifications []domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, n := range notifications {
		batch.Queue(`
			INSERT INTO notifications (notification_id, user_id, request_id, kind, message, link, is_read, sent_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
		`, n.NotificationID, n.UserID, n.RequestID, n.Kind, n.Message, n.Link, n.IsRead, n.SentAt)
	}

	results := r.Pool.SendBatch(ctx, batch)
	defer results.Close()

	for range notifications {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to save notifications: %w", err)
		}
	}
	return nil
}

// MarkNotificationRead marks a single notification read for its owner.
func (r *PgxNotificationRepository) MarkNotificationRead(ctx context.Context, notificationID string, userID string) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE WHERE notification_id = $1 AND user_id = $2;
	`, notificationID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: notification %s", apperrors.ErrNotFound, notificationID)
	}
	return nil
}

// MarkAllNotificationsRead marks every unread notification read for a user.
func (r *PgxNotificationRepository) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	_, err := r.Pool.Exec(ctx, `
		UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND NOT is_read;
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// ListNotificationsByUser retrieves a user's notifications, newest first, up to limit.
func (r *PgxNotificationRepository) ListNotificationsByUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT notification_id, user_id, request_id, kind, message, link, is_read, sent_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY sent_at DESC
		LIMIT $2;
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	notifications, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Notification, error) {
		var n domain.Notification
		err := row.Scan(
			&n.NotificationID,
			&n.UserID,
			&n.RequestID,
			&n.Kind,
			&n.Message,
			&n.Link,
			&n.IsRead,
			&n.SentAt,
		)
		return n, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect notifications: %w", err)
	}

	return notifications, nil
}

// CountUnreadNotifications counts a user's unread notifications.
func (r *PgxNotificationRepository) CountUnreadNotifications(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read;
	`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}
