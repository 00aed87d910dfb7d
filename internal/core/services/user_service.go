package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/candenizkocak/procurementsystem/internal/apperrors"
	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	portsrepo "github.com/candenizkocak/procurementsystem/internal/core/ports/repositories"
	portssvc "github.com/candenizkocak/procurementsystem/internal/core/ports/services"
	"github.com/candenizkocak/procurementsystem/internal/dto"
	"github.com/candenizkocak/procurementsystem/internal/middleware"
	"github.com/candenizkocak/procurementsystem/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// userService manages the user directory and credential authentication.
type userService struct {
	userRepo  portsrepo.UserRepositoryFacade
	jwtSecret string
	jwtExpiry time.Duration
}

// NewUserService creates a new UserSvcFacade.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, jwtSecret string, jwtExpiry time.Duration) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, jwtSecret: jwtSecret, jwtExpiry: jwtExpiry}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// normalizeRoles validates the assigned roles and resolves each against the user's
// department. The derivation runs here, at assignment time, so the stored roles are
// already effective and the approval gates never re-derive.
func (s *userService) normalizeRoles(ctx context.Context, roles []domain.Role, departmentID *string) ([]domain.Role, error) {
	departmentName := ""
	if departmentID != nil {
		dept, err := s.userRepo.FindDepartmentByID(ctx, *departmentID)
		if err != nil {
			return nil, fmt.Errorf("failed to verify department %s: %w", *departmentID, err)
		}
		departmentName = dept.Name
	}

	seen := make(map[domain.Role]bool, len(roles))
	normalized := make([]domain.Role, 0, len(roles))
	for _, role := range roles {
		if !role.IsValid() {
			return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
		}
		effective := domain.DeriveEffectiveRole(role, departmentName)
		if !seen[effective] {
			seen[effective] = true
			normalized = append(normalized, effective)
		}
	}
	return normalized, nil
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	existing, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email %s", apperrors.ErrDuplicate, req.Email)
	}

	roles, err := s.normalizeRoles(ctx, req.Roles, req.DepartmentID)
	if err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		DepartmentID: req.DepartmentID,
		Roles:        roles,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil && *req.Email != user.Email {
		existing, err := s.userRepo.FindUserByEmail(ctx, *req.Email)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: email %s", apperrors.ErrDuplicate, *req.Email)
		}
		user.Email = *req.Email
	}
	if req.DepartmentID != nil {
		user.DepartmentID = req.DepartmentID
	}
	if req.IsFormer != nil {
		user.IsFormer = *req.IsFormer
	}

	// Re-derive whenever roles or department change; a department move alone can flip a
	// manager into (or out of) the procurement manager role.
	if req.Roles != nil || req.DepartmentID != nil {
		assigned := user.Roles
		if req.Roles != nil {
			assigned = *req.Roles
		}
		roles, err := s.normalizeRoles(ctx, assigned, user.DepartmentID)
		if err != nil {
			return nil, err
		}
		user.Roles = roles
	}

	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = updaterUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", userID, err)
	}

	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same error as a bad password so the response does not leak which emails exist.
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user.IsFormer {
		logger.Warn("Login attempt by former employee", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("Failed login attempt", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.LoginResponse{
		AccessToken: token,
		User:        dto.ToUserResponse(user),
	}, nil
}
