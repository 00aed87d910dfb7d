package repositories

import (
	"context"

	"github.com/candenizkocak/procurementsystem/internal/core/domain"
)

// UserReader defines directory lookups for users.
type UserReader interface {
	// FindUserByID retrieves a user with their roles.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their unique email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsersByRole retrieves all active users holding the given role.
	FindUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error)

	// ListUsers retrieves all users.
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// UserWriter defines directory write operations.
type UserWriter interface {
	// SaveUser persists a new user with their role assignments.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates a user's directory record and role assignments.
	UpdateUser(ctx context.Context, user domain.User) error
}

// DepartmentReader defines directory lookups for departments.
type DepartmentReader interface {
	// FindDepartmentByID retrieves a department, including its manager reference.
	FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error)

	// ListDepartments retrieves all departments.
	ListDepartments(ctx context.Context) ([]domain.Department, error)
}

// DepartmentWriter defines directory write operations for departments.
type DepartmentWriter interface {
	// SaveDepartment persists a new department.
	SaveDepartment(ctx context.Context, department domain.Department) error

	// SetDepartmentManager points a department at its designated manager.
	SetDepartmentManager(ctx context.Context, departmentID string, managerUserID string) error
}

// UserRepositoryFacade combines all directory repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	DepartmentReader
	DepartmentWriter
}
