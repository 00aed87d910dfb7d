package services

import (
	"context"
	"fmt"

	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	portsrepo "github.com/candenizkocak/procurementsystem/internal/core/ports/repositories"
	portssvc "github.com/candenizkocak/procurementsystem/internal/core/ports/services"
)

// stepCatalogService exposes the ordered approval step definitions.
type stepCatalogService struct {
	approvalRepo portsrepo.ApprovalRepositoryFacade
}

// NewStepCatalogService creates a new StepCatalogSvc.
func NewStepCatalogService(approvalRepo portsrepo.ApprovalRepositoryFacade) portssvc.StepCatalogSvc {
	return &stepCatalogService{approvalRepo: approvalRepo}
}

var _ portssvc.StepCatalogSvc = (*stepCatalogService)(nil)

func (s *stepCatalogService) GetStepByOrder(ctx context.Context, stepOrder int) (*domain.ApprovalStep, error) {
	step, err := s.approvalRepo.FindStepByOrder(ctx, stepOrder)
	if err != nil {
		return nil, fmt.Errorf("failed to get approval step %d: %w", stepOrder, err)
	}
	return step, nil
}

func (s *stepCatalogService) ListSteps(ctx context.Context) ([]domain.ApprovalStep, error) {
	steps, err := s.approvalRepo.ListSteps(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list approval steps: %w", err)
	}
	return steps, nil
}
