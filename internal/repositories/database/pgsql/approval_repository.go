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

type PgxApprovalRepository struct {
	BaseRepository
}

// newPgxApprovalRepository creates a new repository for the approval ledger and the step
// catalog. The ledger is written through the request repository's transactions; this
// repository only reads.
func newPgxApprovalRepository(pool *pgxpool.Pool) portsrepo.ApprovalRepositoryFacade {
	return &PgxApprovalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ApprovalRepositoryFacade = (*PgxApprovalRepository)(nil)

// FindStepByOrder retrieves the step at the given 1-based order.
func (r *PgxApprovalRepository) FindStepByOrder(ctx context.Context, stepOrder int) (*domain.ApprovalStep, error) {
	query := `
		SELECT approval_step_id, step_order, required_role, name
		FROM approval_steps
		WHERE step_order = $1;
	`
	var step domain.ApprovalStep
	err := r.Pool.QueryRow(ctx, query, stepOrder).Scan(
		&step.ApprovalStepID,
		&step.StepOrder,
		&step.RequiredRole,
		&step.Name,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: approval step %d", apperrors.ErrNotFound, stepOrder)
		}
		return nil, fmt.Errorf("failed to find approval step %d: %w", stepOrder, err)
	}

	return &step, nil
}

// ListSteps retrieves all steps ordered by step order.
func (r *PgxApprovalRepository) ListSteps(ctx context.Context) ([]domain.ApprovalStep, error) {
	query := `
		SELECT approval_step_id, step_order, required_role, name
		FROM approval_steps
		ORDER BY step_order;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query approval steps: %w", err)
	}
	defer rows.Close()

	steps, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ApprovalStep, error) {
		var step domain.ApprovalStep
		err := row.Scan(
			&step.ApprovalStepID,
			&step.StepOrder,
			&step.RequiredRole,
			&step.Name,
		)
		return step, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect approval steps: %w", err)
	}

	return steps, nil
}

// ListApprovalsByRequestID retrieves the ledger entries for a request, oldest first.
func (r *PgxApprovalRepository) ListApprovalsByRequestID(ctx context.Context, requestID string) ([]domain.Approval, error) {
	query := `
		SELECT approval_id, request_id, step_order, approver_user_id, outcome, reason, decided_at
		FROM approvals
		WHERE request_id = $1
		ORDER BY decided_at;
	`
	rows, err := r.Pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query approvals for request %s: %w", requestID, err)
	}
	defer rows.Close()

	approvals, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Approval, error) {
		var a domain.Approval
		err := row.Scan(
			&a.ApprovalID,
			&a.RequestID,
			&a.StepOrder,
			&a.ApproverUserID,
			&a.Outcome,
			&a.Reason,
			&a.DecidedAt,
		)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect approvals for request %s: %w", requestID, err)
	}

	return approvals, nil
}
