package services

import (
	"context"
	"fmt"
	"time"

	"github.com/candenizkocak/procurementsystem/internal/apperrors"
	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	portsrepo "github.com/candenizkocak/procurementsystem/internal/core/ports/repositories"
	portssvc "github.com/candenizkocak/procurementsystem/internal/core/ports/services"
	"github.com/candenizkocak/procurementsystem/internal/dto"
	"github.com/google/uuid"
)

// departmentService manages departments and their designated managers.
type departmentService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewDepartmentService creates a new DepartmentSvcFacade.
func NewDepartmentService(userRepo portsrepo.UserRepositoryFacade) portssvc.DepartmentSvcFacade {
	return &departmentService{userRepo: userRepo}
}

var _ portssvc.DepartmentSvcFacade = (*departmentService)(nil)

func (s *departmentService) GetDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	dept, err := s.userRepo.FindDepartmentByID(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get department %s: %w", departmentID, err)
	}
	return dept, nil
}

func (s *departmentService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	departments, err := s.userRepo.ListDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	if departments == nil {
		return []domain.Department{}, nil
	}
	return departments, nil
}

func (s *departmentService) CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest, creatorUserID string) (*domain.Department, error) {
	now := time.Now()
	dept := domain.Department{
		DepartmentID: uuid.NewString(),
		Name:         req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveDepartment(ctx, dept); err != nil {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}

	return &dept, nil
}

func (s *departmentService) SetDepartmentManager(ctx context.Context, departmentID string, managerUserID string, updaterUserID string) (*domain.Department, error) {
	dept, err := s.userRepo.FindDepartmentByID(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get department %s: %w", departmentID, err)
	}

	manager, err := s.userRepo.FindUserByID(ctx, managerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", managerUserID, err)
	}
	if manager.IsFormer {
		return nil, fmt.Errorf("%w: former employees cannot manage a department", apperrors.ErrValidation)
	}
	if !manager.HasRole(domain.RoleManager) && !manager.HasRole(domain.RoleProcurementManager) {
		return nil, fmt.Errorf("%w: user %s does not hold a manager role", apperrors.ErrValidation, managerUserID)
	}

	if err := s.userRepo.SetDepartmentManager(ctx, departmentID, managerUserID); err != nil {
		return nil, fmt.Errorf("failed to set manager for department %s: %w", departmentID, err)
	}

	dept.ManagerUserID = &managerUserID
	return dept, nil
}
