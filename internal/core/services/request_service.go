package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/candenizkocak/procurementsystem/internal/apperrors"
	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	portsrepo "github.com/candenizkocak/procurementsystem/internal/core/ports/repositories"
	portssvc "github.com/candenizkocak/procurementsystem/internal/core/ports/services"
	"github.com/candenizkocak/procurementsystem/internal/dto"
	"github.com/candenizkocak/procurementsystem/internal/middleware"
	"github.com/google/uuid"
)

// requestService handles submission, resubmission, and the read paths of purchase
// requests. Classification happens here; deciding on pending requests lives in the
// approval service.
type requestService struct {
	requestRepo  portsrepo.RequestRepositoryFacade
	budgetRepo   portsrepo.BudgetCodeReader
	userRepo     portsrepo.UserRepositoryFacade
	approvalRepo portsrepo.ApprovalReader
	converter    portssvc.ConverterSvc
	classifier   portssvc.ClassifierSvc
	notifier     portssvc.NotifierSvc
	history      portssvc.HistorySvc
}

// NewRequestService creates a new RequestSvcFacade.
func NewRequestService(
	requestRepo portsrepo.RequestRepositoryFacade,
	budgetRepo portsrepo.BudgetCodeReader,
	userRepo portsrepo.UserRepositoryFacade,
	approvalRepo portsrepo.ApprovalReader,
	converter portssvc.ConverterSvc,
	classifier portssvc.ClassifierSvc,
	notifier portssvc.NotifierSvc,
	history portssvc.HistorySvc,
) portssvc.RequestSvcFacade {
	return &requestService{
		requestRepo:  requestRepo,
		budgetRepo:   budgetRepo,
		userRepo:     userRepo,
		approvalRepo: approvalRepo,
		converter:    converter,
		classifier:   classifier,
		notifier:     notifier,
		history:      history,
	}
}

var _ portssvc.RequestSvcFacade = (*requestService)(nil)

// buildItems converts the payload items, assigning identifiers and validating amounts.
func buildItems(requestID string, inputs []dto.RequestItemInput) ([]domain.RequestItem, error) {
	items := make([]domain.RequestItem, len(inputs))
	for i, in := range inputs {
		if !in.UnitPrice.IsPositive() {
			return nil, fmt.Errorf("%w: unit price must be positive for item %q", apperrors.ErrValidation, in.ItemName)
		}
		items[i] = domain.RequestItem{
			RequestItemID: uuid.NewString(),
			RequestID:     requestID,
			ItemName:      in.ItemName,
			Description:   in.Description,
			Quantity:      in.Quantity,
			UnitPrice:     in.UnitPrice,
			Unit:          in.Unit,
		}
	}
	return items, nil
}

// validateBudgetCode checks that the budget code exists, is active, and belongs to the
// creator's department.
func (s *requestService) validateBudgetCode(ctx context.Context, budgetCodeID string, departmentID string) (*domain.BudgetCode, error) {
	code, err := s.budgetRepo.FindBudgetCodeByID(ctx, budgetCodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get budget code %s: %w", budgetCodeID, err)
	}
	if !code.IsActive {
		return nil, fmt.Errorf("%w: budget code %s is inactive", apperrors.ErrValidation, code.Code)
	}
	if code.DepartmentID != departmentID {
		return nil, fmt.Errorf("%w: budget code %s belongs to another department", apperrors.ErrValidation, code.Code)
	}
	return code, nil
}

// classify runs the submission through conversion and classification, returning the
// entry level and, when the request resolves immediately, the budget consumption to
// bundle with the write.
func (s *requestService) classify(ctx context.Context, creator *domain.User, request *domain.PurchaseRequest) (int, *domain.BudgetConsumption, error) {
	// Classification and consumption both run on the net value in home currency.
	valueHome, err := s.converter.ValueInHomeCurrency(ctx, request.NetAmount, request.CurrencyCode, request.CreatedAt)
	if err != nil {
		return 0, nil, err
	}

	level, err := s.classifier.DetermineEntryLevel(ctx, creator, valueHome)
	if err != nil {
		return 0, nil, err
	}

	if level == domain.LevelResolved {
		return level, &domain.BudgetConsumption{BudgetCodeID: request.BudgetCodeID, Amount: valueHome}, nil
	}
	return level, nil, nil
}

// notifyOutcome fans out the post-write notifications and audit entry. Failures here are
// logged and swallowed: the request is already durably written.
func (s *requestService) notifyOutcome(ctx context.Context, request *domain.PurchaseRequest, action string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.history.LogAction(ctx, request.RequestID, request.CreatorUserID, action, nil); err != nil {
		logger.Error("Failed to record request history", slog.String("request_id", request.RequestID), slog.String("error", err.Error()))
	}

	var err error
	if request.Status == domain.StatusApproved {
		err = s.notifier.NotifyFinalApproved(ctx, request)
	} else {
		err = s.notifier.NotifySubmissionPending(ctx, request)
	}
	if err != nil {
		logger.Error("Failed to send notifications", slog.String("request_id", request.RequestID), slog.String("error", err.Error()))
	}
}

func (s *requestService) CreateRequest(ctx context.Context, req dto.CreateRequestRequest, creatorUserID string) (*domain.PurchaseRequest, error) {
	creator, err := s.userRepo.FindUserByID(ctx, creatorUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get creator: %w", err)
	}
	if creator.IsFormer {
		return nil, fmt.Errorf("%w: former employees cannot submit requests", apperrors.ErrForbidden)
	}
	if creator.DepartmentID == nil {
		return nil, fmt.Errorf("%w: submitter has no department", apperrors.ErrValidation)
	}

	if _, err := s.validateBudgetCode(ctx, req.BudgetCodeID, *creator.DepartmentID); err != nil {
		return nil, err
	}

	now := time.Now()
	request := domain.PurchaseRequest{
		RequestID:     uuid.NewString(),
		CreatorUserID: creatorUserID,
		DepartmentID:  *creator.DepartmentID,
		BudgetCodeID:  req.BudgetCodeID,
		CurrencyCode:  req.CurrencyCode,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	items, err := buildItems(request.RequestID, req.Items)
	if err != nil {
		return nil, err
	}
	request.Items = items
	request.RecomputeAmounts()

	level, consumption, err := s.classify(ctx, creator, &request)
	if err != nil {
		return nil, err
	}

	if level == domain.LevelResolved {
		request.Status = domain.StatusApproved
		request.CurrentLevel = domain.LevelResolved
	} else {
		request.Status = domain.StatusPending
		request.CurrentLevel = level
	}

	if err := s.requestRepo.SaveNewRequest(ctx, request, consumption); err != nil {
		return nil, fmt.Errorf("failed to save request: %w", err)
	}

	action := "Submitted"
	if request.Status == domain.StatusApproved {
		action = "Submitted (auto-approved)"
	}
	s.notifyOutcome(ctx, &request, action)

	return &request, nil
}

func (s *requestService) ResubmitRequest(ctx context.Context, requestID string, req dto.ResubmitRequestRequest, creatorUserID string) (*domain.PurchaseRequest, error) {
	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get request %s: %w", requestID, err)
	}
	if request.CreatorUserID != creatorUserID {
		return nil, fmt.Errorf("%w: only the creator can resubmit a request", apperrors.ErrForbidden)
	}
	if request.Status != domain.StatusReturnedForEdit {
		return nil, fmt.Errorf("%w: request is %s, only returned-for-edit requests can be resubmitted", apperrors.ErrConflict, request.Status)
	}

	creator, err := s.userRepo.FindUserByID(ctx, creatorUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get creator: %w", err)
	}
	if creator.IsFormer {
		return nil, fmt.Errorf("%w: former employees cannot submit requests", apperrors.ErrForbidden)
	}

	if _, err := s.validateBudgetCode(ctx, req.BudgetCodeID, request.DepartmentID); err != nil {
		return nil, err
	}

	items, err := buildItems(request.RequestID, req.Items)
	if err != nil {
		return nil, err
	}

	request.BudgetCodeID = req.BudgetCodeID
	request.CurrencyCode = req.CurrencyCode
	request.Items = items
	request.RejectReason = nil
	request.RecomputeAmounts()
	request.LastUpdatedAt = time.Now()
	request.LastUpdatedBy = creatorUserID

	// A resubmission is classified exactly like a fresh submission.
	level, consumption, err := s.classify(ctx, creator, request)
	if err != nil {
		return nil, err
	}

	if level == domain.LevelResolved {
		request.Status = domain.StatusApproved
		request.CurrentLevel = domain.LevelResolved
	} else {
		request.Status = domain.StatusPending
		request.CurrentLevel = level
	}

	if err := s.requestRepo.UpdateRequestForResubmit(ctx, *request, consumption); err != nil {
		return nil, fmt.Errorf("failed to resubmit request %s: %w", requestID, err)
	}

	s.notifyOutcome(ctx, request, "Resubmitted")

	return request, nil
}

// canView reports whether the user may read the request: creators see their own,
// privileged roles see everything.
func canView(user *domain.User, request *domain.PurchaseRequest) bool {
	return request.CreatorUserID == user.UserID || user.IsPrivileged()
}

func (s *requestService) GetRequestByID(ctx context.Context, requestID string, requestingUserID string) (*domain.PurchaseRequest, error) {
	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get request %s: %w", requestID, err)
	}

	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get requesting user: %w", err)
	}
	if !canView(requester, request) {
		return nil, fmt.Errorf("%w: cannot view another user's request", apperrors.ErrForbidden)
	}

	return request, nil
}

func (s *requestService) ListMyRequests(ctx context.Context, creatorUserID string) ([]domain.PurchaseRequest, error) {
	requests, err := s.requestRepo.ListRequestsByCreator(ctx, creatorUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	if requests == nil {
		return []domain.PurchaseRequest{}, nil
	}
	return requests, nil
}

func (s *requestService) ListAllRequests(ctx context.Context, requestingUserID string) ([]domain.PurchaseRequest, error) {
	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get requesting user: %w", err)
	}
	if !requester.IsPrivileged() {
		return nil, fmt.Errorf("%w: listing all requests requires a privileged role", apperrors.ErrForbidden)
	}

	requests, err := s.requestRepo.ListAllRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	if requests == nil {
		return []domain.PurchaseRequest{}, nil
	}
	return requests, nil
}

func (s *requestService) ListPendingApprovalsFor(ctx context.Context, approverUserID string) ([]domain.PurchaseRequest, error) {
	approver, err := s.userRepo.FindUserByID(ctx, approverUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get approver: %w", err)
	}

	seen := make(map[string]bool)
	var queue []domain.PurchaseRequest

	appendUnique := func(requests []domain.PurchaseRequest) {
		for _, r := range requests {
			// Own submissions never show up in the work queue; approving them is
			// denied anyway, directors aside, and directors auto-approve on submit.
			if r.CreatorUserID == approverUserID || seen[r.RequestID] {
				continue
			}
			seen[r.RequestID] = true
			queue = append(queue, r)
		}
	}

	// Department-manager queue: requests waiting at level 1 in departments this user
	// manages.
	managed, err := s.requestRepo.ListPendingByDepartmentManager(ctx, approverUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list department queue: %w", err)
	}
	appendUnique(managed)

	var levels []int
	if approver.HasRole(domain.RoleProcurementManager) {
		levels = append(levels, domain.LevelProcurementManager)
	}
	if approver.HasRole(domain.RoleDirector) {
		levels = append(levels, domain.LevelDirector)
	}
	if len(levels) > 0 {
		byLevel, err := s.requestRepo.ListPendingByLevels(ctx, levels)
		if err != nil {
			return nil, fmt.Errorf("failed to list role queue: %w", err)
		}
		appendUnique(byLevel)
	}

	if queue == nil {
		return []domain.PurchaseRequest{}, nil
	}
	return queue, nil
}

func (s *requestService) SearchRequests(ctx context.Context, requestingUserID string, itemName string) ([]domain.PurchaseRequest, error) {
	if itemName == "" {
		return nil, fmt.Errorf("%w: search term is required", apperrors.ErrValidation)
	}

	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get requesting user: %w", err)
	}

	matches, err := s.requestRepo.SearchByItemName(ctx, itemName)
	if err != nil {
		return nil, fmt.Errorf("failed to search requests: %w", err)
	}

	if requester.IsPrivileged() {
		if matches == nil {
			return []domain.PurchaseRequest{}, nil
		}
		return matches, nil
	}

	own := make([]domain.PurchaseRequest, 0, len(matches))
	for _, r := range matches {
		if r.CreatorUserID == requestingUserID {
			own = append(own, r)
		}
	}
	return own, nil
}

func (s *requestService) GetRequestApprovals(ctx context.Context, requestID string, requestingUserID string) ([]domain.Approval, error) {
	// Reuses the read path so the visibility rules stay in one place.
	if _, err := s.GetRequestByID(ctx, requestID, requestingUserID); err != nil {
		return nil, err
	}

	approvals, err := s.approvalRepo.ListApprovalsByRequestID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approvals for request %s: %w", requestID, err)
	}
	if approvals == nil {
		return []domain.Approval{}, nil
	}
	return approvals, nil
}
