package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/candenizkocak/procurementsystem/internal/apperrors"
	"github.com/candenizkocak/procurementsystem/internal/core/domain"
	portssvc "github.com/candenizkocak/procurementsystem/internal/core/ports/services"
	"github.com/candenizkocak/procurementsystem/internal/core/services"
	"github.com/candenizkocak/procurementsystem/internal/dto"
	"github.com/candenizkocak/procurementsystem/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "test-secret"

// --- Test Suite Setup ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo, testJWTSecret, time.Hour)
}

// --- CreateUser ---

func (suite *UserServiceTestSuite) TestCreateUser_ProcurementManagerDerivedFromDepartment() {
	ctx := context.Background()
	deptID := uuid.NewString()
	procurement := &domain.Department{DepartmentID: deptID, Name: domain.ProcurementDepartmentName}
	req := dto.CreateUserRequest{
		FirstName:    "Ayse",
		LastName:     "Yilmaz",
		Email:        "ayse@example.com",
		Password:     "correct horse",
		DepartmentID: &deptID,
		Roles:        []domain.Role{domain.RoleManager},
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, req.Email).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindDepartmentByID", ctx, deptID).Return(procurement, nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return len(u.Roles) == 1 && u.Roles[0] == domain.RoleProcurementManager
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal([]domain.Role{domain.RoleProcurementManager}, user.Roles)
	suite.NotEqual(req.Password, user.PasswordHash, "password is stored hashed")
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Email: "taken@example.com", Password: "irrelevant"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, req.Email).Return(&domain.User{UserID: uuid.NewString()}, nil).Once()

	_, err := suite.service.CreateUser(ctx, req, uuid.NewString())

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_UnknownRole() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Email:    "new@example.com",
		Password: "irrelevant",
		Roles:    []domain.Role{"SUPERVISOR"},
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, req.Email).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateUser(ctx, req, uuid.NewString())

	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- UpdateUser ---

func (suite *UserServiceTestSuite) TestUpdateUser_DepartmentMoveRederivesRoles() {
	ctx := context.Background()
	oldDeptID := uuid.NewString()
	newDeptID := uuid.NewString()
	user := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "manager@example.com",
		DepartmentID: &oldDeptID,
		Roles:        []domain.Role{domain.RoleManager},
	}
	procurement := &domain.Department{DepartmentID: newDeptID, Name: domain.ProcurementDepartmentName}

	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()
	suite.mockUserRepo.On("FindDepartmentByID", ctx, newDeptID).Return(procurement, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return len(u.Roles) == 1 && u.Roles[0] == domain.RoleProcurementManager
	})).Return(nil).Once()

	updated, err := suite.service.UpdateUser(ctx, user.UserID, dto.UpdateUserRequest{DepartmentID: &newDeptID}, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal([]domain.Role{domain.RoleProcurementManager}, updated.Roles)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_MarkFormer() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), Email: "leaver@example.com", Roles: []domain.Role{domain.RoleEmployee}}
	isFormer := true

	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.IsFormer
	})).Return(nil).Once()

	updated, err := suite.service.UpdateUser(ctx, user.UserID, dto.UpdateUserRequest{IsFormer: &isFormer}, uuid.NewString())

	suite.Require().NoError(err)
	suite.True(updated.IsFormer)
}

// --- Login ---

func (suite *UserServiceTestSuite) activeUser(password string) *domain.User {
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)
	return &domain.User{
		UserID:       uuid.NewString(),
		Email:        "user@example.com",
		PasswordHash: hash,
		Roles:        []domain.Role{domain.RoleEmployee},
	}
}

func (suite *UserServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	user := suite.activeUser("hunter2hunter2")

	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Email: user.Email, Password: "hunter2hunter2"})

	suite.Require().NoError(err)
	suite.Equal(user.UserID, resp.User.UserID)

	// The token must carry the user ID as subject and verify against the secret.
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(resp.AccessToken, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	suite.Require().NoError(err)
	suite.True(parsed.Valid)
	suite.Equal(user.UserID, claims.Subject)
}

func (suite *UserServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()
	user := suite.activeUser("hunter2hunter2")

	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	_, err := suite.service.Login(ctx, dto.LoginRequest{Email: user.Email, Password: "wrong"})

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestLogin_UnknownEmailLooksLikeBadCredentials() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"})

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.NotErrorIs(err, apperrors.ErrNotFound, "must not reveal whether the email exists")
}

func (suite *UserServiceTestSuite) TestLogin_FormerEmployeeDenied() {
	ctx := context.Background()
	user := suite.activeUser("hunter2hunter2")
	user.IsFormer = true

	suite.mockUserRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	_, err := suite.service.Login(ctx, dto.LoginRequest{Email: user.Email, Password: "hunter2hunter2"})

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
