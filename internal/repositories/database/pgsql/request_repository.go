package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/candenizkocak/procurementsystem/internal/apperrors"
	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	portsrepo "github.com/candenizkocak/procurementsystem/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRequestRepository struct {
	BaseRepository
}

// newPgxRequestRepository creates a new repository for purchase request data.
func newPgxRequestRepository(pool *pgxpool.Pool) portsrepo.RequestRepositoryFacade {
	return &PgxRequestRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.RequestRepositoryFacade = (*PgxRequestRepository)(nil)

const requestColumns = `request_id, creator_user_id, department_id, budget_code_id, currency_code, net_amount, gross_amount, status, current_level, reject_reason, created_at, created_by, last_updated_at, last_updated_by`

func scanRequest(row pgx.CollectableRow) (domain.PurchaseRequest, error) {
	var r domain.PurchaseRequest
	err := row.Scan(
		&r.RequestID,
		&r.CreatorUserID,
		&r.DepartmentID,
		&r.BudgetCodeID,
		&r.CurrencyCode,
		&r.NetAmount,
		&r.GrossAmount,
		&r.Status,
		&r.CurrentLevel,
		&r.RejectReason,
		&r.CreatedAt,
		&r.CreatedBy,
		&r.LastUpdatedAt,
		&r.LastUpdatedBy,
	)
	return r, err
}

// insertItems persists a request's item list within the caller's transaction.
func insertItems(ctx context.Context, tx pgx.Tx, items []domain.RequestItem) error {
	for _, item := range items {
		_, err := tx.Exec(ctx, `
			INSERT INTO request_items (request_item_id, request_id, item_name, description, quantity, unit_price, unit)
			VALUES ($1, $2, $3, $4, $5, $6, $7);
		`, item.RequestItemID, item.RequestID, item.ItemName, item.Description, item.Quantity, item.UnitPrice, item.Unit)
		if err != nil {
			return fmt.Errorf("failed to insert request item %s: %w", item.ItemName, err)
		}
	}
	return nil
}

// insertApproval appends an immutable ledger entry within the caller's transaction.
func insertApproval(ctx context.Context, tx pgx.Tx, entry domain.Approval) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO approvals (approval_id, request_id, step_order, approver_user_id, outcome, reason, decided_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`, entry.ApprovalID, entry.RequestID, entry.StepOrder, entry.ApproverUserID, entry.Outcome, entry.Reason, entry.DecidedAt)
	if err != nil {
		return fmt.Errorf("failed to insert approval entry: %w", err)
	}
	return nil
}

// SaveNewRequest persists a freshly classified request, its items, and an optional
// budget consumption in one transaction.
func (r *PgxRequestRepository) SaveNewRequest(ctx context.Context, request domain.PurchaseRequest, consumption *domain.BudgetConsumption) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		INSERT INTO purchase_requests (`+requestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`,
		request.RequestID,
		request.CreatorUserID,
		request.DepartmentID,
		request.BudgetCodeID,
		request.CurrencyCode,
		request.NetAmount,
		request.GrossAmount,
		request.Status,
		request.CurrentLevel,
		request.RejectReason,
		request.CreatedAt,
		request.CreatedBy,
		request.LastUpdatedAt,
		request.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert request: %w", err)
	}

	if err := insertItems(ctx, tx, request.Items); err != nil {
		return err
	}

	if consumption != nil {
		if err := applyBudgetConsumption(ctx, tx, *consumption, request.CreatorUserID); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// ApplyDecision persists a decision in one transaction: the request's new status and
// level, the ledger entry, and optionally a budget consumption. The update is guarded on
// the request still being pending at the level the decision was made against, so two
// concurrent approvers cannot both transition the same request.
func (r *PgxRequestRepository) ApplyDecision(ctx context.Context, request domain.PurchaseRequest, entry domain.Approval, consumption *domain.BudgetConsumption) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE purchase_requests
		SET status = $2,
			current_level = $3,
			reject_reason = $4,
			last_updated_at = $5,
			last_updated_by = $6
		WHERE request_id = $1
		  AND status = 'PENDING'
		  AND current_level = $7;
	`,
		request.RequestID,
		request.Status,
		request.CurrentLevel,
		request.RejectReason,
		request.LastUpdatedAt,
		request.LastUpdatedBy,
		entry.StepOrder,
	)
	if err != nil {
		return fmt.Errorf("failed to update request %s: %w", request.RequestID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: request %s was decided concurrently", apperrors.ErrConflict, request.RequestID)
	}

	if err := insertApproval(ctx, tx, entry); err != nil {
		return err
	}

	if consumption != nil {
		if err := applyBudgetConsumption(ctx, tx, *consumption, entry.ApproverUserID); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// UpdateRequestForResubmit replaces a returned-for-edit request's items and reclassified
// state, guarded on the RETURNED_FOR_EDIT status.
func (r *PgxRequestRepository) UpdateRequestForResubmit(ctx context.Context, request domain.PurchaseRequest, consumption *domain.BudgetConsumption) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE purchase_requests
		SET budget_code_id = $2,
			currency_code = $3,
			net_amount = $4,
			gross_amount = $5,
			status = $6,
			current_level = $7,
			reject_reason = NULL,
			last_updated_at = $8,
			last_updated_by = $9
		WHERE request_id = $1
		  AND status = 'RETURNED_FOR_EDIT';
	`,
		request.RequestID,
		request.BudgetCodeID,
		request.CurrencyCode,
		request.NetAmount,
		request.GrossAmount,
		request.Status,
		request.CurrentLevel,
		request.LastUpdatedAt,
		request.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update request %s for resubmit: %w", request.RequestID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: request %s is not awaiting edits", apperrors.ErrConflict, request.RequestID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM request_items WHERE request_id = $1;`, request.RequestID); err != nil {
		return fmt.Errorf("failed to clear request items: %w", err)
	}
	if err := insertItems(ctx, tx, request.Items); err != nil {
		return err
	}

	if consumption != nil {
		if err := applyBudgetConsumption(ctx, tx, *consumption, request.CreatorUserID); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// FindRequestByID retrieves a request with its items.
func (r *PgxRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.PurchaseRequest, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+requestColumns+`
		FROM purchase_requests
		WHERE request_id = $1;
	`, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query request %s: %w", requestID, err)
	}

	request, err := pgx.CollectOneRow(rows, scanRequest)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: request %s", apperrors.ErrNotFound, requestID)
		}
		return nil, fmt.Errorf("failed to scan request %s: %w", requestID, err)
	}

	itemRows, err := r.Pool.Query(ctx, `
		SELECT request_item_id, request_id, item_name, description, quantity, unit_price, unit
		FROM request_items
		WHERE request_id = $1
		ORDER BY item_name;
	`, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for request %s: %w", requestID, err)
	}
	defer itemRows.Close()

	items, err := pgx.CollectRows(itemRows, func(row pgx.CollectableRow) (domain.RequestItem, error) {
		var item domain.RequestItem
		err := row.Scan(
			&item.RequestItemID,
			&item.RequestID,
			&item.ItemName,
			&item.Description,
			&item.Quantity,
			&item.UnitPrice,
			&item.Unit,
		)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect items for request %s: %w", requestID, err)
	}

	request.Items = items
	return &request, nil
}

func (r *PgxRequestRepository) listRequests(ctx context.Context, query string, args ...any) ([]domain.PurchaseRequest, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	requests, err := pgx.CollectRows(rows, scanRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to collect requests: %w", err)
	}
	return requests, nil
}

// ListRequestsByCreator retrieves all requests created by a user, newest first.
func (r *PgxRequestRepository) ListRequestsByCreator(ctx context.Context, creatorUserID string) ([]domain.PurchaseRequest, error) {
	return r.listRequests(ctx, `
		SELECT `+requestColumns+`
		FROM purchase_requests
		WHERE creator_user_id = $1
		ORDER BY created_at DESC;
	`, creatorUserID)
}

// ListAllRequests retrieves every request, newest first.
func (r *PgxRequestRepository) ListAllRequests(ctx context.Context) ([]domain.PurchaseRequest, error) {
	return r.listRequests(ctx, `
		SELECT `+requestColumns+`
		FROM purchase_requests
		ORDER BY created_at DESC;
	`)
}

// ListPendingByDepartmentManager retrieves requests pending at the department-manager
// level for departments the given user manages.
func (r *PgxRequestRepository) ListPendingByDepartmentManager(ctx context.Context, managerUserID string) ([]domain.PurchaseRequest, error) {
	return r.listRequests(ctx, `
		SELECT r.`+requestColumnsPrefixed("r")+`
		FROM purchase_requests r
		JOIN departments d ON d.department_id = r.department_id
		WHERE d.manager_user_id = $1
		  AND r.status = 'PENDING'
		  AND r.current_level = $2
		ORDER BY r.created_at DESC;
	`, managerUserID, domain.LevelDepartmentManager)
}

// ListPendingByLevels retrieves requests pending at any of the given approval levels.
func (r *PgxRequestRepository) ListPendingByLevels(ctx context.Context, levels []int) ([]domain.PurchaseRequest, error) {
	if len(levels) == 0 {
		return nil, nil
	}

	intLevels := make([]int32, len(levels))
	for i, level := range levels {
		intLevels[i] = int32(level)
	}

	return r.listRequests(ctx, `
		SELECT `+requestColumns+`
		FROM purchase_requests
		WHERE status = 'PENDING'
		  AND current_level = ANY($1)
		ORDER BY created_at DESC;
	`, intLevels)
}

// SearchByItemName retrieves requests whose items match the free-text term.
func (r *PgxRequestRepository) SearchByItemName(ctx context.Context, term string) ([]domain.PurchaseRequest, error) {
	return r.listRequests(ctx, `
		SELECT DISTINCT r.`+requestColumnsPrefixed("r")+`
		FROM purchase_requests r
		JOIN request_items i ON i.request_id = r.request_id
		WHERE i.item_name ILIKE '%' || $1 || '%'
		ORDER BY r.created_at DESC;
	`, term)
}

// requestColumnsPrefixed qualifies the shared column list with a table alias.
func requestColumnsPrefixed(alias string) string {
	return "request_id, " + alias + ".creator_user_id, " + alias + ".department_id, " + alias + ".budget_code_id, " + alias + ".currency_code, " + alias + ".net_amount, " + alias + ".gross_amount, " + alias + ".status, " + alias + ".current_level, " + alias + ".reject_reason, " + alias + ".created_at, " + alias + ".created_by, " + alias + ".last_updated_at, " + alias + ".last_updated_by"
}
