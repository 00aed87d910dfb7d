package services

import (
	"context"
	"fmt"

	"github.com/candenizkocak/procurementsystem/internal/apperrors"
	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	portssvc "github.com/candenizkocak/procurementsystem/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// classifierService decides where a submission enters the approval chain based on the
// creator's roles and the net value in home currency.
type classifierService struct {
	highValueThreshold decimal.Decimal
}

// NewClassifierService creates a new ClassifierSvc with the given high-value threshold
// (home currency).
func NewClassifierService(highValueThreshold decimal.Decimal) portssvc.ClassifierSvc {
	return &classifierService{highValueThreshold: highValueThreshold}
}

var _ portssvc.ClassifierSvc = (*classifierService)(nil)

// DetermineEntryLevel applies the role rules in seniority order. The first matching role
// wins:
//
//   - Director: no approval needed.
//   - Procurement manager: above the threshold (strictly greater) the director decides,
//     otherwise no approval needed.
//   - Manager or finance officer: the procurement manager decides first.
//   - Everyone else: the chain starts at the department manager.
func (s *classifierService) DetermineEntryLevel(ctx context.Context, creator *domain.User, netHomeValue decimal.Decimal) (int, error) {
	if creator == nil {
		return 0, fmt.Errorf("%w: creator is required for classification", apperrors.ErrValidation)
	}

	switch {
	case creator.HasRole(domain.RoleDirector):
		return domain.LevelResolved, nil
	case creator.HasRole(domain.RoleProcurementManager):
		if netHomeValue.GreaterThan(s.highValueThreshold) {
			return domain.LevelDirector, nil
		}
		return domain.LevelResolved, nil
	case creator.HasRole(domain.RoleManager), creator.HasRole(domain.RoleFinanceOfficer):
		return domain.LevelProcurementManager, nil
	default:
		return domain.LevelDepartmentManager, nil
	}
}
