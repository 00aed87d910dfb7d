package pgsql

import (
	"context"
	"fmt"

	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	portsrepo "github.com/candenizkocak/procurementsystem/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRequestHistoryRepository struct {
	BaseRepository
}

// newPgxRequestHistoryRepository creates a new repository for the request audit trail.
func newPgxRequestHistoryRepository(pool *pgxpool.Pool) portsrepo.RequestHistoryRepositoryFacade {
	return &PgxRequestHistoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.RequestHistoryRepositoryFacade = (*PgxRequestHistoryRepository)(nil)

// SaveRequestHistory appends an audit entry. Entries are never updated or deleted.
func (r *PgxRequestHistoryRepository) SaveRequestHistory(ctx context.Context, entry domain.RequestHistory) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO request_history (history_id, request_id, user_id, action, details, event_date)
		VALUES ($1, $2, $3, $4, $5, $6);
	`, entry.HistoryID, entry.RequestID, entry.UserID, entry.Action, entry.Details, entry.EventDate)
	if err != nil {
		return fmt.Errorf("failed to save history entry: %w", err)
	}
	return nil
}

// ListHistoryByRequestID retrieves a request's audit trail, oldest first.
func (r *PgxRequestHistoryRepository) ListHistoryByRequestID(ctx context.Context, requestID string) ([]domain.RequestHistory, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT history_id, request_id, user_id, action, details, event_date
		FROM request_history
		WHERE request_id = $1
		ORDER BY event_date;
	`, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history for request %s: %w", requestID, err)
	}
	defer rows.Close()

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RequestHistory, error) {
		var e domain.RequestHistory
		err := row.Scan(
			&e.HistoryID,
			&e.RequestID,
			&e.UserID,
			&e.Action,
			&e.Details,
			&e.EventDate,
		)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect history for request %s: %w", requestID, err)
	}

	return entries, nil
}
