package services_test

import (
	"context"
	"testing"

	"github.com/gasdepot/cylinder_ledger_app/internal/apperrors"
	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
	portssvc "github.com/gasdepot/cylinder_ledger_app/internal/core/ports/services"
	"github.com/gasdepot/cylinder_ledger_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockDivisionRepository is a mock type for the DivisionRepositoryWithTx interface
type MockDivisionRepository struct {
	mock.Mock
}

func (m *MockDivisionRepository) FindDivisionByID(ctx context.Context, divisionID string) (*domain.Division, error) {
	args := m.Called(ctx, divisionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Division), args.Error(1)
}

func (m *MockDivisionRepository) ListDivisionsByWorkspace(ctx context.Context, workspaceID string) ([]domain.Division, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Division), args.Error(1)
}

func (m *MockDivisionRepository) SaveDivision(ctx context.Context, division domain.Division) error {
	args := m.Called(ctx, division)
	return args.Error(0)
}

func (m *MockDivisionRepository) UpdateDivision(ctx context.Context, division domain.Division) error {
	args := m.Called(ctx, division)
	return args.Error(0)
}

func (m *MockDivisionRepository) SaveDivisionMembership(ctx context.Context, tx pgx.Tx, membership domain.DivisionMembership) error {
	args := m.Called(ctx, tx, membership)
	return args.Error(0)
}

func (m *MockDivisionRepository) FindDivisionMembership(ctx context.Context, userID, divisionID string) (*domain.DivisionMembership, error) {
	args := m.Called(ctx, userID, divisionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DivisionMembership), args.Error(1)
}

func (m *MockDivisionRepository) ListDivisionMemberships(ctx context.Context, divisionID string) ([]domain.DivisionMembership, error) {
	args := m.Called(ctx, divisionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DivisionMembership), args.Error(1)
}

func (m *MockDivisionRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockDivisionRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockDivisionRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockDivisionRepository) RunInTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(nil)
}

// --- Test Suite Setup ---

type DivisionServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockDivisionRepository
	mockUserReader *MockUserReader
	service        portssvc.DivisionSvcFacade
}

func (suite *DivisionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockDivisionRepository)
	suite.mockUserReader = new(MockUserReader)
	suite.service = services.NewDivisionService(suite.mockRepo, suite.mockUserReader)
}

func divisionIn(workspaceID string) *domain.Division {
	return &domain.Division{
		DivisionID:  uuid.NewString(),
		WorkspaceID: workspaceID,
		Name:        "North Route",
		IsActive:    true,
	}
}

// --- Test Cases ---

func (suite *DivisionServiceTestSuite) TestFindDivisionInWorkspace_CrossTenantRejected() {
	ctx := context.Background()
	division := divisionIn(uuid.NewString())
	otherWorkspaceID := uuid.NewString()

	suite.mockRepo.On("FindDivisionByID", ctx, division.DivisionID).Return(division, nil).Once()

	_, err := suite.service.FindDivisionInWorkspace(ctx, otherWorkspaceID, division.DivisionID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DivisionServiceTestSuite) TestFindDivisionInWorkspace_Match() {
	ctx := context.Background()
	workspaceID := uuid.NewString()
	division := divisionIn(workspaceID)

	suite.mockRepo.On("FindDivisionByID", ctx, division.DivisionID).Return(division, nil).Once()

	found, err := suite.service.FindDivisionInWorkspace(ctx, workspaceID, division.DivisionID)

	suite.Require().NoError(err)
	suite.Equal(division.DivisionID, found.DivisionID)
}

func (suite *DivisionServiceTestSuite) TestAddDivisionMember_SavesInTxWithDedupedRoles() {
	ctx := context.Background()
	workspaceID := uuid.NewString()
	division := divisionIn(workspaceID)
	targetID := uuid.NewString()
	adderID := uuid.NewString()

	suite.mockRepo.On("FindDivisionByID", ctx, division.DivisionID).Return(division, nil).Once()
	suite.mockUserReader.On("FindUserByID", ctx, targetID).Return(&domain.User{UserID: targetID}, nil).Once()
	suite.mockRepo.On("RunInTx", ctx, mock.AnythingOfType("func(pgx.Tx) error")).Return(nil).Once()
	suite.mockRepo.On("SaveDivisionMembership", ctx, nil, mock.MatchedBy(func(m domain.DivisionMembership) bool {
		return m.UserID == targetID &&
			m.DivisionID == division.DivisionID &&
			m.Status == domain.DivisionMembershipStatusActive &&
			len(m.Roles) == 2 && m.Roles[0] == "driver" && m.Roles[1] == "manager"
	})).Return(nil).Once()
	saved := &domain.DivisionMembership{UserID: targetID, DivisionID: division.DivisionID, Roles: []string{"driver", "manager"}, Status: domain.DivisionMembershipStatusActive}
	suite.mockRepo.On("FindDivisionMembership", ctx, targetID, division.DivisionID).Return(saved, nil).Once()

	membership, err := suite.service.AddDivisionMember(ctx, workspaceID, division.DivisionID, targetID, []string{"manager", "driver", "manager"}, adderID)

	suite.Require().NoError(err)
	suite.Equal([]string{"driver", "manager"}, membership.Roles)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *DivisionServiceTestSuite) TestAddDivisionMember_NoRoles() {
	ctx := context.Background()
	workspaceID := uuid.NewString()
	division := divisionIn(workspaceID)
	targetID := uuid.NewString()

	suite.mockRepo.On("FindDivisionByID", ctx, division.DivisionID).Return(division, nil).Once()
	suite.mockUserReader.On("FindUserByID", ctx, targetID).Return(&domain.User{UserID: targetID}, nil).Once()

	_, err := suite.service.AddDivisionMember(ctx, workspaceID, division.DivisionID, targetID, []string{"", "  "}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "RunInTx", mock.Anything, mock.Anything)
}

func (suite *DivisionServiceTestSuite) TestRemoveDivisionMember_MarksRemoved() {
	ctx := context.Background()
	workspaceID := uuid.NewString()
	division := divisionIn(workspaceID)
	targetID := uuid.NewString()
	removerID := uuid.NewString()
	existing := &domain.DivisionMembership{
		DivisionMembershipID: uuid.NewString(),
		UserID:               targetID,
		DivisionID:           division.DivisionID,
		WorkspaceID:          workspaceID,
		Roles:                []string{"driver"},
		Status:               domain.DivisionMembershipStatusActive,
	}

	suite.mockRepo.On("FindDivisionByID", ctx, division.DivisionID).Return(division, nil).Once()
	suite.mockRepo.On("FindDivisionMembership", ctx, targetID, division.DivisionID).Return(existing, nil).Once()
	suite.mockRepo.On("RunInTx", ctx, mock.AnythingOfType("func(pgx.Tx) error")).Return(nil).Once()
	suite.mockRepo.On("SaveDivisionMembership", ctx, nil, mock.MatchedBy(func(m domain.DivisionMembership) bool {
		return m.Status == domain.DivisionMembershipStatusRemoved &&
			m.RemovedBy != nil && *m.RemovedBy == removerID
	})).Return(nil).Once()

	err := suite.service.RemoveDivisionMember(ctx, workspaceID, division.DivisionID, targetID, removerID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestDivisionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DivisionServiceTestSuite))
}
