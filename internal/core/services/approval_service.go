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
	"github.com/candenizkocak/procurementsystem/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// approvalService drives pending requests through the step chain. Every decision writes
// an immutable ledger entry; the final approval additionally consumes budget, bundled
// into the same transaction as the state change.
type approvalService struct {
	requestRepo        portsrepo.RequestRepositoryFacade
	approvalRepo       portsrepo.ApprovalRepositoryFacade
	userRepo           portsrepo.UserRepositoryFacade
	converter          portssvc.ConverterSvc
	highValueThreshold decimal.Decimal
	notifier           portssvc.NotifierSvc
	history            portssvc.HistorySvc
}

// NewApprovalService creates a new ApprovalSvcFacade with the given high-value threshold
// (home currency).
func NewApprovalService(
	requestRepo portsrepo.RequestRepositoryFacade,
	approvalRepo portsrepo.ApprovalRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	converter portssvc.ConverterSvc,
	highValueThreshold decimal.Decimal,
	notifier portssvc.NotifierSvc,
	history portssvc.HistorySvc,
) portssvc.ApprovalSvcFacade {
	return &approvalService{
		requestRepo:        requestRepo,
		approvalRepo:       approvalRepo,
		userRepo:           userRepo,
		converter:          converter,
		highValueThreshold: highValueThreshold,
		notifier:           notifier,
		history:            history,
	}
}

var _ portssvc.ApprovalSvcFacade = (*approvalService)(nil)

// authorizeApprover loads the request and approver and checks that the approver may act
// on the request at its current level. Returns both on success.
func (s *approvalService) authorizeApprover(ctx context.Context, requestID string, approverUserID string) (*domain.PurchaseRequest, *domain.User, error) {
	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get request %s: %w", requestID, err)
	}
	if request.Status != domain.StatusPending {
		return nil, nil, fmt.Errorf("%w: request is %s, not pending", apperrors.ErrConflict, request.Status)
	}

	approver, err := s.userRepo.FindUserByID(ctx, approverUserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get approver: %w", err)
	}
	if approver.IsFormer {
		return nil, nil, fmt.Errorf("%w: former employees cannot act on requests", apperrors.ErrForbidden)
	}

	// Deciding on one's own request is denied; only directors are exempt.
	if request.CreatorUserID == approverUserID && !approver.HasRole(domain.RoleDirector) {
		return nil, nil, fmt.Errorf("%w: cannot decide on own request", apperrors.ErrForbidden)
	}

	step, err := s.approvalRepo.FindStepByOrder(ctx, request.CurrentLevel)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// A pending request must always sit at a defined step.
			return nil, nil, fmt.Errorf("%w: request %s is pending at undefined level %d", apperrors.ErrInvalidState, requestID, request.CurrentLevel)
		}
		return nil, nil, fmt.Errorf("failed to get step %d: %w", request.CurrentLevel, err)
	}

	if request.CurrentLevel == domain.LevelDepartmentManager {
		// The first gate belongs to the department's designated manager, not to anyone
		// who happens to hold the manager role.
		dept, err := s.userRepo.FindDepartmentByID(ctx, request.DepartmentID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get department %s: %w", request.DepartmentID, err)
		}
		if dept.ManagerUserID == nil || *dept.ManagerUserID != approverUserID {
			return nil, nil, fmt.Errorf("%w: only the department manager can decide at this step", apperrors.ErrForbidden)
		}
	} else if !approver.HasRole(step.RequiredRole) {
		return nil, nil, fmt.Errorf("%w: step requires role %s", apperrors.ErrForbidden, step.RequiredRole)
	}

	return request, approver, nil
}

// nextLevel returns the order of the first step after current, or domain.LevelResolved
// when current is the final step.
func (s *approvalService) nextLevel(ctx context.Context, current int) (int, error) {
	steps, err := s.approvalRepo.ListSteps(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list steps: %w", err)
	}
	for _, step := range steps {
		if step.StepOrder > current {
			return step.StepOrder, nil
		}
	}
	return domain.LevelResolved, nil
}

// logAndNotify records the audit entry and notifications after a committed transition.
// Failures are logged and swallowed: the decision itself is already durable.
func (s *approvalService) logAndNotify(ctx context.Context, request *domain.PurchaseRequest, actorUserID string, action string, details *string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.history.LogAction(ctx, request.RequestID, actorUserID, action, details); err != nil {
		logger.Error("Failed to record request history", slog.String("request_id", request.RequestID), slog.String("error", err.Error()))
	}

	var err error
	switch request.Status {
	case domain.StatusApproved:
		err = s.notifier.NotifyFinalApproved(ctx, request)
	case domain.StatusRejected:
		err = s.notifier.NotifyRejected(ctx, request, request.RejectReason)
	case domain.StatusReturnedForEdit:
		comments := ""
		if request.RejectReason != nil {
			comments = *request.RejectReason
		}
		err = s.notifier.NotifyReturnedForEdit(ctx, request, comments)
	case domain.StatusPending:
		err = s.notifier.NotifyStepAdvanced(ctx, request)
	}
	if err != nil {
		logger.Error("Failed to send notifications", slog.String("request_id", request.RequestID), slog.String("error", err.Error()))
	}
}

func (s *approvalService) ProcessDecision(ctx context.Context, requestID string, approverUserID string, decision domain.Decision, reason *string) (*domain.PurchaseRequest, error) {
	if !decision.IsValid() {
		return nil, fmt.Errorf("%w: unknown decision %q", apperrors.ErrValidation, decision)
	}

	request, _, err := s.authorizeApprover(ctx, requestID, approverUserID)
	if err != nil {
		return nil, err
	}

	decidedAt := request.CurrentLevel
	entry := domain.Approval{
		ApprovalID:     uuid.NewString(),
		RequestID:      request.RequestID,
		StepOrder:      decidedAt,
		ApproverUserID: approverUserID,
		Reason:         reason,
		DecidedAt:      time.Now(),
	}

	var consumption *domain.BudgetConsumption
	action := ""

	if decision == domain.DecisionReject {
		if reason == nil || *reason == "" {
			return nil, fmt.Errorf("%w: rejection requires a reason", apperrors.ErrValidation)
		}
		entry.Outcome = domain.OutcomeRejected
		request.Status = domain.StatusRejected
		request.CurrentLevel = domain.LevelResolved
		request.RejectReason = reason
		action = "Rejected"
	} else {
		entry.Outcome = domain.OutcomeApproved
		next, err := s.nextLevel(ctx, decidedAt)
		if err != nil {
			return nil, err
		}

		finalize := next == domain.LevelResolved
		var valueHome decimal.Decimal
		if finalize || decidedAt == domain.LevelProcurementManager {
			// The net value is converted at the request's creation date, never the
			// decision date.
			valueHome, err = s.converter.ValueInHomeCurrency(ctx, request.NetAmount, request.CurrencyCode, request.CreatedAt)
			if err != nil {
				return nil, err
			}
			// The procurement gate escalates to the director only above the high-value
			// cutoff (strictly greater); everything else finalizes here.
			if decidedAt == domain.LevelProcurementManager && !valueHome.GreaterThan(s.highValueThreshold) {
				finalize = true
			}
		}

		if finalize {
			// Final approval: consume budget atomically with the state change.
			consumption = &domain.BudgetConsumption{BudgetCodeID: request.BudgetCodeID, Amount: valueHome}
			request.Status = domain.StatusApproved
			request.CurrentLevel = domain.LevelResolved
			action = "Approved"
		} else {
			request.CurrentLevel = next
			action = fmt.Sprintf("Approved at step %d", decidedAt)
		}
	}

	request.LastUpdatedAt = time.Now()
	request.LastUpdatedBy = approverUserID

	if err := s.requestRepo.ApplyDecision(ctx, *request, entry, consumption); err != nil {
		return nil, fmt.Errorf("failed to apply decision on request %s: %w", requestID, err)
	}

	s.logAndNotify(ctx, request, approverUserID, action, reason)

	return request, nil
}

func (s *approvalService) ReturnForEdit(ctx context.Context, requestID string, approverUserID string, comments string) (*domain.PurchaseRequest, error) {
	if comments == "" {
		return nil, fmt.Errorf("%w: return for edit requires comments", apperrors.ErrValidation)
	}

	request, _, err := s.authorizeApprover(ctx, requestID, approverUserID)
	if err != nil {
		return nil, err
	}

	entry := domain.Approval{
		ApprovalID:     uuid.NewString(),
		RequestID:      request.RequestID,
		StepOrder:      request.CurrentLevel,
		ApproverUserID: approverUserID,
		Outcome:        domain.OutcomeReturnedForEdit,
		Reason:         &comments,
		DecidedAt:      time.Now(),
	}

	request.Status = domain.StatusReturnedForEdit
	request.RejectReason = &comments
	request.LastUpdatedAt = time.Now()
	request.LastUpdatedBy = approverUserID

	if err := s.requestRepo.ApplyDecision(ctx, *request, entry, nil); err != nil {
		return nil, fmt.Errorf("failed to return request %s for edit: %w", requestID, err)
	}

	s.logAndNotify(ctx, request, approverUserID, "Returned for edit", &comments)

	return request, nil
}
