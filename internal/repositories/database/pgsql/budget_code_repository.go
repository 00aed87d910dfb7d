package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/candenizkocak/procurementsystem/internal/apperrors"
	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	portsrepo "github.com/candenizkocak/procurementsystem/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxBudgetCodeRepository struct {
	BaseRepository
}

// newPgxBudgetCodeRepository creates a new repository for budget code data.
func newPgxBudgetCodeRepository(pool *pgxpool.Pool) portsrepo.BudgetCodeRepositoryFacade {
	return &PgxBudgetCodeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.BudgetCodeRepositoryFacade = (*PgxBudgetCodeRepository)(nil)

// applyBudgetConsumption locks the budget row, verifies sufficiency, and decrements the
// remaining balance within the caller's transaction. The row lock serializes concurrent
// consumers of the same code; an insufficient balance aborts without touching the row.
// Shared with the request repository so final approvals commit the decrement atomically
// with the request's state change.
func applyBudgetConsumption(ctx context.Context, tx pgx.Tx, consumption domain.BudgetConsumption, actorUserID string) error {
	var code string
	var remaining decimal.Decimal
	err := tx.QueryRow(ctx, `
		SELECT code, remaining_amount
		FROM budget_codes
		WHERE budget_code_id = $1
		FOR UPDATE;
	`, consumption.BudgetCodeID).Scan(&code, &remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: budget code %s", apperrors.ErrNotFound, consumption.BudgetCodeID)
		}
		return fmt.Errorf("failed to lock budget code %s: %w", consumption.BudgetCodeID, err)
	}

	if remaining.LessThan(consumption.Amount) {
		return &apperrors.InsufficientBudgetError{
			BudgetCode: code,
			Remaining:  remaining,
			Required:   consumption.Amount,
		}
	}

	_, err = tx.Exec(ctx, `
		UPDATE budget_codes
		SET remaining_amount = remaining_amount - $2,
			last_updated_at = $3,
			last_updated_by = $4
		WHERE budget_code_id = $1;
	`, consumption.BudgetCodeID, consumption.Amount, time.Now(), actorUserID)
	if err != nil {
		return fmt.Errorf("failed to consume budget code %s: %w", consumption.BudgetCodeID, err)
	}

	return nil
}

// ConsumeBudget runs a standalone check-and-decrement in its own transaction.
func (r *PgxBudgetCodeRepository) ConsumeBudget(ctx context.Context, consumption domain.BudgetConsumption, actorUserID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := applyBudgetConsumption(ctx, tx, consumption, actorUserID); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveBudgetCode inserts a new budget code.
func (r *PgxBudgetCodeRepository) SaveBudgetCode(ctx context.Context, code domain.BudgetCode) error {
	query := `
		INSERT INTO budget_codes (budget_code_id, department_id, code, description, year, remaining_amount, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`

	_, err := r.Pool.Exec(ctx, query,
		code.BudgetCodeID,
		code.DepartmentID,
		code.Code,
		code.Description,
		code.Year,
		code.RemainingAmount,
		code.IsActive,
		code.CreatedAt,
		code.CreatedBy,
		code.LastUpdatedAt,
		code.LastUpdatedBy,
	)

	if err != nil {
		return fmt.Errorf("failed to save budget code %s: %w", code.Code, err)
	}
	return nil
}

// UpdateBudgetCode updates a budget code's descriptive fields and allocation.
func (r *PgxBudgetCodeRepository) UpdateBudgetCode(ctx context.Context, code domain.BudgetCode) error {
	query := `
		UPDATE budget_codes
		SET code = $2,
			description = $3,
			year = $4,
			remaining_amount = $5,
			is_active = $6,
			last_updated_at = $7,
			last_updated_by = $8
		WHERE budget_code_id = $1;
	`

	tag, err := r.Pool.Exec(ctx, query,
		code.BudgetCodeID,
		code.Code,
		code.Description,
		code.Year,
		code.RemainingAmount,
		code.IsActive,
		code.LastUpdatedAt,
		code.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget code %s: %w", code.BudgetCodeID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: budget code %s", apperrors.ErrNotFound, code.BudgetCodeID)
	}
	return nil
}

// FindBudgetCodeByID retrieves a budget code by its identifier.
func (r *PgxBudgetCodeRepository) FindBudgetCodeByID(ctx context.Context, budgetCodeID string) (*domain.BudgetCode, error) {
	query := `
		SELECT budget_code_id, department_id, code, description, year, remaining_amount, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM budget_codes
		WHERE budget_code_id = $1;
	`
	var code domain.BudgetCode
	err := r.Pool.QueryRow(ctx, query, budgetCodeID).Scan(
		&code.BudgetCodeID,
		&code.DepartmentID,
		&code.Code,
		&code.Description,
		&code.Year,
		&code.RemainingAmount,
		&code.IsActive,
		&code.CreatedAt,
		&code.CreatedBy,
		&code.LastUpdatedAt,
		&code.LastUpdatedBy,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: budget code %s", apperrors.ErrNotFound, budgetCodeID)
		}
		return nil, fmt.Errorf("failed to find budget code %s: %w", budgetCodeID, err)
	}

	return &code, nil
}

// ListBudgetCodes retrieves budget codes, optionally filtered to one department and to
// active codes only.
func (r *PgxBudgetCodeRepository) ListBudgetCodes(ctx context.Context, departmentID *string, activeOnly bool) ([]domain.BudgetCode, error) {
	query := `
		SELECT budget_code_id, department_id, code, description, year, remaining_amount, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM budget_codes
		WHERE ($1::text IS NULL OR department_id = $1)
		  AND (NOT $2::bool OR is_active)
		ORDER BY year DESC, code;
	`
	rows, err := r.Pool.Query(ctx, query, departmentID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget codes: %w", err)
	}
	defer rows.Close()

	codes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.BudgetCode, error) {
		var code domain.BudgetCode
		err := row.Scan(
			&code.BudgetCodeID,
			&code.DepartmentID,
			&code.Code,
			&code.Description,
			&code.Year,
			&code.RemainingAmount,
			&code.IsActive,
			&code.CreatedAt,
			&code.CreatedBy,
			&code.LastUpdatedAt,
			&code.LastUpdatedBy,
		)
		return code, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect budget codes: %w", err)
	}

	return codes, nil
}
