package services

import (
	"context"

	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	"github.com/candenizkocak/procurementsystem/internal/dto"
)

// UserReaderSvc defines read operations for the user directory
type UserReaderSvc interface {
	// GetUserByID retrieves a specific user.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves all users.
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// UserWriterSvc defines administrative write operations for the user directory
type UserWriterSvc interface {
	// CreateUser persists a new user with a hashed password. Roles are normalized
	// against the user's department before saving.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)

	// UpdateUser updates a user's profile, department, roles, or former flag.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error)
}

// AuthSvc authenticates credentials and issues access tokens.
type AuthSvc interface {
	// Login verifies the credentials and returns a signed token with the user.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	AuthSvc
}

// DepartmentSvcFacade manages departments and their designated managers.
type DepartmentSvcFacade interface {
	// GetDepartmentByID retrieves a specific department.
	GetDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error)

	// ListDepartments retrieves all departments.
	ListDepartments(ctx context.Context) ([]domain.Department, error)

	// CreateDepartment persists a new department.
	CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest, creatorUserID string) (*domain.Department, error)

	// SetDepartmentManager designates the user who approves the department's
	// first-level submissions.
	SetDepartmentManager(ctx context.Context, departmentID string, managerUserID string, updaterUserID string) (*domain.Department, error)
}
