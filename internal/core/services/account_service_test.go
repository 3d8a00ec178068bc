package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/gasdepot/cylinder_ledger_app/internal/apperrors"
	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
	portssvc "github.com/gasdepot/cylinder_ledger_app/internal/core/ports/services"
	"github.com/gasdepot/cylinder_ledger_app/internal/core/services"
	"github.com/gasdepot/cylinder_ledger_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, workspaceID, divisionID, code string) (*domain.Account, error) {
	args := m.Called(ctx, workspaceID, divisionID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, workspaceID, divisionID string) ([]domain.Account, error) {
	args := m.Called(ctx, workspaceID, divisionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade

	workspaceID string
	divisionID  string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)

	suite.workspaceID = uuid.NewString()
	suite.divisionID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) cashAccount(workspaceID, divisionID string) *domain.Account {
	return &domain.Account{
		AccountID:   uuid.NewString(),
		WorkspaceID: workspaceID,
		DivisionID:  divisionID,
		Code:        "CASH",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestGetAccount_InScope() {
	ctx := context.Background()
	account := suite.cashAccount(suite.workspaceID, suite.divisionID)

	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	found, err := suite.service.GetAccount(ctx, suite.workspaceID, suite.divisionID, account.AccountID)

	suite.Require().NoError(err)
	suite.Equal(account.AccountID, found.AccountID)
}

func (suite *AccountServiceTestSuite) TestGetAccount_OtherScopeHidden() {
	ctx := context.Background()
	account := suite.cashAccount(uuid.NewString(), uuid.NewString())

	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	_, err := suite.service.GetAccount(ctx, suite.workspaceID, suite.divisionID, account.AccountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_InScope() {
	ctx := context.Background()
	account := suite.cashAccount(suite.workspaceID, suite.divisionID)
	newName := "Cash drawer"

	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountID == account.AccountID && a.Name == newName
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, suite.workspaceID, suite.divisionID, account.AccountID, dto.UpdateAccountRequest{Name: &newName}, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_OtherScopeHidden() {
	ctx := context.Background()
	account := suite.cashAccount(uuid.NewString(), uuid.NewString())
	newName := "hijacked"

	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, suite.workspaceID, suite.divisionID, account.AccountID, dto.UpdateAccountRequest{Name: &newName}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_OtherScopeHidden() {
	ctx := context.Background()
	account := suite.cashAccount(uuid.NewString(), suite.divisionID)

	suite.mockRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.workspaceID, suite.divisionID, account.AccountID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
