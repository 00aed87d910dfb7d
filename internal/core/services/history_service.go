package services

import (
	"context"
	"fmt"
	"time"

	"github.com/candenizkocak/procurementsystem/internal/apperrors"
	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	portsrepo "github.com/candenizkocak/procurementsystem/internal/core/ports/repositories"
	portssvc "github.com/candenizkocak/procurementsystem/internal/core/ports/services"
	"github.com/google/uuid"
)

// historyService records and reads the per-request audit trail.
type historyService struct {
	historyRepo portsrepo.RequestHistoryRepositoryFacade
	requestRepo portsrepo.RequestReader
	userRepo    portsrepo.UserReader
}

// NewHistoryService creates a new HistorySvc.
func NewHistoryService(historyRepo portsrepo.RequestHistoryRepositoryFacade, requestRepo portsrepo.RequestReader, userRepo portsrepo.UserReader) portssvc.HistorySvc {
	return &historyService{historyRepo: historyRepo, requestRepo: requestRepo, userRepo: userRepo}
}

var _ portssvc.HistorySvc = (*historyService)(nil)

func (s *historyService) LogAction(ctx context.Context, requestID string, userID string, action string, details *string) error {
	entry := domain.RequestHistory{
		HistoryID: uuid.NewString(),
		RequestID: requestID,
		UserID:    userID,
		Action:    action,
		Details:   details,
		EventDate: time.Now(),
	}

	if err := s.historyRepo.SaveRequestHistory(ctx, entry); err != nil {
		return fmt.Errorf("failed to log request action: %w", err)
	}
	return nil
}

func (s *historyService) ListHistory(ctx context.Context, requestID string, requestingUserID string) ([]domain.RequestHistory, error) {
	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get request %s: %w", requestID, err)
	}

	requester, err := s.userRepo.FindUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get requesting user: %w", err)
	}

	if request.CreatorUserID != requestingUserID && !requester.IsPrivileged() {
		return nil, fmt.Errorf("%w: cannot view history of another user's request", apperrors.ErrForbidden)
	}

	entries, err := s.historyRepo.ListHistoryByRequestID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list history for request %s: %w", requestID, err)
	}
	if entries == nil {
		return []domain.RequestHistory{}, nil
	}
	return entries, nil
}
