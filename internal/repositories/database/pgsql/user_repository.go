package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/candenizkocak/procurementsystem/internal/apperrors"
	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	portsrepo "github.com/candenizkocak/procurementsystem/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for directory data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, first_name, last_name, email, password_hash, department_id, roles, is_former, created_at, created_by, last_updated_at, last_updated_by`

func scanUser(row pgx.CollectableRow) (domain.User, error) {
	var u domain.User
	var roles []string
	err := row.Scan(
		&u.UserID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.PasswordHash,
		&u.DepartmentID,
		&roles,
		&u.IsFormer,
		&u.CreatedAt,
		&u.CreatedBy,
		&u.LastUpdatedAt,
		&u.LastUpdatedBy,
	)
	if err != nil {
		return u, err
	}
	u.Roles = make([]domain.Role, len(roles))
	for i, r := range roles {
		u.Roles[i] = domain.Role(r)
	}
	return u, nil
}

func rolesToStrings(roles []domain.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

// SaveUser persists a new user with their role assignments.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`

	_, err := r.Pool.Exec(ctx, query,
		user.UserID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.DepartmentID,
		rolesToStrings(user.Roles),
		user.IsFormer,
		user.CreatedAt,
		user.CreatedBy,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: email %s", apperrors.ErrDuplicate, user.Email)
		}
		return fmt.Errorf("failed to save user %s: %w", user.UserID, err)
	}
	return nil
}

// UpdateUser updates a user's directory record and role assignments.
func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	query := `
		UPDATE users
		SET first_name = $2,
			last_name = $3,
			email = $4,
			department_id = $5,
			roles = $6,
			is_former = $7,
			last_updated_at = $8,
			last_updated_by = $9
		WHERE user_id = $1;
	`

	tag, err := r.Pool.Exec(ctx, query,
		user.UserID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.DepartmentID,
		rolesToStrings(user.Roles),
		user.IsFormer,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: email %s", apperrors.ErrDuplicate, user.Email)
		}
		return fmt.Errorf("failed to update user %s: %w", user.UserID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, user.UserID)
	}
	return nil
}

// FindUserByID retrieves a user with their roles.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1;`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user %s: %w", userID, err)
	}

	user, err := pgx.CollectOneRow(rows, scanUser)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("failed to scan user %s: %w", userID, err)
	}
	return &user, nil
}

// FindUserByEmail retrieves a user by their unique email.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1;`, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}

	user, err := pgx.CollectOneRow(rows, scanUser)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user by email: %w", err)
	}
	return &user, nil
}

// FindUsersByRole retrieves all active users holding the given role.
func (r *PgxUserRepository) FindUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE $1 = ANY(roles) AND NOT is_former
		ORDER BY last_name, first_name;
	`, string(role))
	if err != nil {
		return nil, fmt.Errorf("failed to query users by role %s: %w", role, err)
	}
	defer rows.Close()

	users, err := pgx.CollectRows(rows, scanUser)
	if err != nil {
		return nil, fmt.Errorf("failed to collect users by role %s: %w", role, err)
	}
	return users, nil
}

// ListUsers retrieves all users.
func (r *PgxUserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY last_name, first_name;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users, err := pgx.CollectRows(rows, scanUser)
	if err != nil {
		return nil, fmt.Errorf("failed to collect users: %w", err)
	}
	return users, nil
}

const departmentColumns = `department_id, name, manager_user_id, created_at, created_by, last_updated_at, last_updated_by`

func scanDepartment(row pgx.CollectableRow) (domain.Department, error) {
	var d domain.Department
	err := row.Scan(
		&d.DepartmentID,
		&d.Name,
		&d.ManagerUserID,
		&d.CreatedAt,
		&d.CreatedBy,
		&d.LastUpdatedAt,
		&d.LastUpdatedBy,
	)
	return d, err
}

// FindDepartmentByID retrieves a department, including its manager reference.
func (r *PgxUserRepository) FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+departmentColumns+` FROM departments WHERE department_id = $1;`, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query department %s: %w", departmentID, err)
	}

	dept, err := pgx.CollectOneRow(rows, scanDepartment)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: department %s", apperrors.ErrNotFound, departmentID)
		}
		return nil, fmt.Errorf("failed to scan department %s: %w", departmentID, err)
	}
	return &dept, nil
}

// ListDepartments retrieves all departments.
func (r *PgxUserRepository) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+departmentColumns+` FROM departments ORDER BY name;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	departments, err := pgx.CollectRows(rows, scanDepartment)
	if err != nil {
		return nil, fmt.Errorf("failed to collect departments: %w", err)
	}
	return departments, nil
}

// SaveDepartment persists a new department.
func (r *PgxUserRepository) SaveDepartment(ctx context.Context, department domain.Department) error {
	query := `
		INSERT INTO departments (` + departmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`

	_, err := r.Pool.Exec(ctx, query,
		department.DepartmentID,
		department.Name,
		department.ManagerUserID,
		department.CreatedAt,
		department.CreatedBy,
		department.LastUpdatedAt,
		department.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: department %s", apperrors.ErrDuplicate, department.Name)
		}
		return fmt.Errorf("failed to save department %s: %w", department.Name, err)
	}
	return nil
}

// SetDepartmentManager points a department at its designated manager.
func (r *PgxUserRepository) SetDepartmentManager(ctx context.Context, departmentID string, managerUserID string) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE departments SET manager_user_id = $2 WHERE department_id = $1;
	`, departmentID, managerUserID)
	if err != nil {
		return fmt.Errorf("failed to set manager for department %s: %w", departmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: department %s", apperrors.ErrNotFound, departmentID)
	}
	return nil
}
