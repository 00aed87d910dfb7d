package services_test

import (
	"context"
	"testing"

	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	portsrepo "github.com/candenizkocak/procurementsystem/internal/core/ports/repositories"
	portssvc "github.com/candenizkocak/procurementsystem/internal/core/ports/services"
	"github.com/candenizkocak/procurementsystem/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock NotificationRepository ---
type MockNotificationRepository struct {
	mock.Mock
}

var _ portsrepo.NotificationRepositoryFacade = (*MockNotificationRepository)(nil)

func (m *MockNotificationRepository) SaveNotifications(ctx context.Context, notifications []domain.Notification) error {
	args := m.Called(ctx, notifications)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkNotificationRead(ctx context.Context, notificationID string, userID string) error {
	args := m.Called(ctx, notificationID, userID)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListNotificationsByUser(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnreadNotifications(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Test Suite Setup ---
type NotificationServiceTestSuite struct {
	suite.Suite
	mockNotificationRepo *MockNotificationRepository
	mockUserRepo         *MockUserRepository
	notifier             portssvc.NotifierSvc
	feed                 portssvc.NotificationSvcFacade

	departmentID string
	creatorID    string
}

func (suite *NotificationServiceTestSuite) SetupTest() {
	suite.mockNotificationRepo = new(MockNotificationRepository)
	suite.mockUserRepo = new(MockUserRepository)

	svc := services.NewNotificationService(suite.mockNotificationRepo, suite.mockUserRepo)
	suite.notifier = svc
	suite.feed = svc

	suite.departmentID = uuid.NewString()
	suite.creatorID = uuid.NewString()
}

func (suite *NotificationServiceTestSuite) requestAtLevel(level int) *domain.PurchaseRequest {
	return &domain.PurchaseRequest{
		RequestID:     uuid.NewString(),
		CreatorUserID: suite.creatorID,
		DepartmentID:  suite.departmentID,
		CurrencyCode:  domain.HomeCurrencyCode,
		GrossAmount:   decimal.NewFromInt(1200),
		Status:        domain.StatusPending,
		CurrentLevel:  level,
	}
}

func (suite *NotificationServiceTestSuite) TestNotifySubmissionPending_LevelOneGoesToDepartmentManager() {
	ctx := context.Background()
	request := suite.requestAtLevel(domain.LevelDepartmentManager)
	managerID := uuid.NewString()
	dept := &domain.Department{DepartmentID: suite.departmentID, ManagerUserID: &managerID}

	suite.mockUserRepo.On("FindDepartmentByID", ctx, suite.departmentID).Return(dept, nil).Once()
	suite.mockNotificationRepo.On("SaveNotifications", ctx,
		mock.MatchedBy(func(ns []domain.Notification) bool {
			return len(ns) == 1 &&
				ns[0].UserID == managerID &&
				ns[0].Kind == domain.NotifySubmissionPendingApproval &&
				ns[0].Link == "/requests/"+request.RequestID
		})).Return(nil).Once()

	err := suite.notifier.NotifySubmissionPending(ctx, request)

	suite.Require().NoError(err)
	suite.mockNotificationRepo.AssertExpectations(suite.T())
}

func (suite *NotificationServiceTestSuite) TestNotifyStepAdvanced_LevelTwoGoesToProcurementManagers() {
	ctx := context.Background()
	request := suite.requestAtLevel(domain.LevelProcurementManager)
	pms := []domain.User{
		{UserID: uuid.NewString()},
		{UserID: uuid.NewString()},
	}

	suite.mockUserRepo.On("FindUsersByRole", ctx, domain.RoleProcurementManager).Return(pms, nil).Once()
	suite.mockNotificationRepo.On("SaveNotifications", ctx,
		mock.MatchedBy(func(ns []domain.Notification) bool {
			return len(ns) == 2 && ns[0].Kind == domain.NotifyStepAdvanced
		})).Return(nil).Once()

	err := suite.notifier.NotifyStepAdvanced(ctx, request)

	suite.Require().NoError(err)
}

func (suite *NotificationServiceTestSuite) TestNotifyStepAdvanced_CreatorNeverNotifiedOfOwnRequest() {
	ctx := context.Background()
	request := suite.requestAtLevel(domain.LevelDirector)
	otherDirector := uuid.NewString()
	directors := []domain.User{
		{UserID: suite.creatorID}, // also holds the director role
		{UserID: otherDirector},
	}

	suite.mockUserRepo.On("FindUsersByRole", ctx, domain.RoleDirector).Return(directors, nil).Once()
	suite.mockNotificationRepo.On("SaveNotifications", ctx,
		mock.MatchedBy(func(ns []domain.Notification) bool {
			return len(ns) == 1 && ns[0].UserID == otherDirector
		})).Return(nil).Once()

	err := suite.notifier.NotifyStepAdvanced(ctx, request)

	suite.Require().NoError(err)
	suite.mockNotificationRepo.AssertExpectations(suite.T())
}

func (suite *NotificationServiceTestSuite) TestNotifySubmissionPending_NoManagerDesignatedIsNotAnError() {
	ctx := context.Background()
	request := suite.requestAtLevel(domain.LevelDepartmentManager)
	dept := &domain.Department{DepartmentID: suite.departmentID}

	suite.mockUserRepo.On("FindDepartmentByID", ctx, suite.departmentID).Return(dept, nil).Once()

	err := suite.notifier.NotifySubmissionPending(ctx, request)

	suite.NoError(err)
	suite.mockNotificationRepo.AssertNotCalled(suite.T(), "SaveNotifications", mock.Anything, mock.Anything)
}

func (suite *NotificationServiceTestSuite) TestNotifyRejected_MessageCarriesReason() {
	ctx := context.Background()
	request := suite.requestAtLevel(domain.LevelResolved)
	reason := "duplicate of an approved request"

	suite.mockNotificationRepo.On("SaveNotifications", ctx,
		mock.MatchedBy(func(ns []domain.Notification) bool {
			return len(ns) == 1 &&
				ns[0].UserID == suite.creatorID &&
				ns[0].Kind == domain.NotifyRejected &&
				ns[0].Message == "Your purchase request has been rejected: "+reason
		})).Return(nil).Once()

	err := suite.notifier.NotifyRejected(ctx, request, &reason)

	suite.Require().NoError(err)
}

func (suite *NotificationServiceTestSuite) TestNotifyFinalApproved_GoesToCreator() {
	ctx := context.Background()
	request := suite.requestAtLevel(domain.LevelResolved)

	suite.mockNotificationRepo.On("SaveNotifications", ctx,
		mock.MatchedBy(func(ns []domain.Notification) bool {
			return len(ns) == 1 &&
				ns[0].UserID == suite.creatorID &&
				ns[0].Kind == domain.NotifyFinalApproved
		})).Return(nil).Once()

	err := suite.notifier.NotifyFinalApproved(ctx, request)

	suite.Require().NoError(err)
}

func (suite *NotificationServiceTestSuite) TestListMyNotifications_DefaultsLimit() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockNotificationRepo.On("ListNotificationsByUser", ctx, userID, 50).
		Return([]domain.Notification{}, nil).Once()

	notifications, err := suite.feed.ListMyNotifications(ctx, userID, 0)

	suite.Require().NoError(err)
	suite.NotNil(notifications)
	suite.mockNotificationRepo.AssertExpectations(suite.T())
}

func (suite *NotificationServiceTestSuite) TestMarkRead_DelegatesWithOwnerGuard() {
	ctx := context.Background()
	notificationID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockNotificationRepo.On("MarkNotificationRead", ctx, notificationID, userID).Return(nil).Once()

	suite.NoError(suite.feed.MarkRead(ctx, notificationID, userID))
	suite.mockNotificationRepo.AssertExpectations(suite.T())
}

func TestNotificationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationServiceTestSuite))
}
