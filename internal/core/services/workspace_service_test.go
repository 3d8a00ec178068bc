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
	"github.com/gasdepot/cylinder_ledger_app/internal/platform/config"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockWorkspaceRepository is a mock type for the WorkspaceRepositoryWithTx interface
type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) ListWorkspacesByUserID(ctx context.Context, userID string) ([]domain.Workspace, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) SaveWorkspace(ctx context.Context, workspace domain.Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) UpdateWorkspace(ctx context.Context, workspace domain.Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) SaveMembership(ctx context.Context, membership domain.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) FindMembership(ctx context.Context, userID, workspaceID string) (*domain.Membership, error) {
	args := m.Called(ctx, userID, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockWorkspaceRepository) ListMemberships(ctx context.Context, workspaceID string) ([]domain.Membership, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Membership), args.Error(1)
}

func (m *MockWorkspaceRepository) DeleteMembership(ctx context.Context, userID, workspaceID string) error {
	args := m.Called(ctx, userID, workspaceID)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockWorkspaceRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) RunInTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(nil)
}

// MockUserReader is a mock type for the UserReader interface
type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserReader) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserReader) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserReader) FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserReader) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockInviteRepository is a mock type for the InviteRepositoryFacade interface
type MockInviteRepository struct {
	mock.Mock
}

func (m *MockInviteRepository) FindInviteByToken(ctx context.Context, token string) (*domain.Invite, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invite), args.Error(1)
}

func (m *MockInviteRepository) ListInvitesByWorkspace(ctx context.Context, workspaceID string) ([]domain.Invite, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invite), args.Error(1)
}

func (m *MockInviteRepository) SaveInvite(ctx context.Context, invite domain.Invite) error {
	args := m.Called(ctx, invite)
	return args.Error(0)
}

func (m *MockInviteRepository) UpdateInviteStatus(ctx context.Context, inviteID string, status domain.InviteStatus, updatedBy string) error {
	args := m.Called(ctx, inviteID, status, updatedBy)
	return args.Error(0)
}

// --- Test Suite Setup ---

type WorkspaceServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockWorkspaceRepository
	mockUserReader *MockUserReader
	mockInviteRepo *MockInviteRepository
	service        portssvc.WorkspaceSvcFacade
}

func (suite *WorkspaceServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockWorkspaceRepository)
	suite.mockUserReader = new(MockUserReader)
	suite.mockInviteRepo = new(MockInviteRepository)
	cfg := &config.Config{InviteExpiryDuration: 72 * time.Hour}
	suite.service = services.NewWorkspaceService(suite.mockRepo, suite.mockUserReader, suite.mockInviteRepo, cfg)
}

func activeWorkspace() *domain.Workspace {
	return &domain.Workspace{
		WorkspaceID:  uuid.NewString(),
		Name:         "South Depot",
		AllowedRoles: []string{"admin", "manager", "user"},
		IsActive:     true,
	}
}

// --- Test Cases ---

func (suite *WorkspaceServiceTestSuite) TestCreateWorkspace_CreatorBecomesAdmin() {
	ctx := context.Background()
	creatorID := uuid.NewString()

	suite.mockRepo.On("SaveWorkspace", ctx, mock.AnythingOfType("domain.Workspace")).Return(nil).Once()
	suite.mockRepo.On("SaveMembership", ctx, mock.MatchedBy(func(m domain.Membership) bool {
		return m.UserID == creatorID &&
			m.Status == domain.MembershipStatusActive &&
			len(m.Roles) == 1 && m.Roles[0] == domain.WorkspaceRoleAdmin
	})).Return(nil).Once()

	workspace, err := suite.service.CreateWorkspace(ctx, dto.CreateWorkspaceRequest{Name: "South Depot"}, creatorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(workspace)
	suite.Equal([]string{"admin", "manager", "user"}, workspace.AllowedRoles)
	suite.Equal(creatorID, workspace.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *WorkspaceServiceTestSuite) TestAddMember_DeduplicatesRoles() {
	ctx := context.Background()
	workspace := activeWorkspace()
	targetID := uuid.NewString()
	adderID := uuid.NewString()

	suite.mockRepo.On("FindWorkspaceByID", ctx, workspace.WorkspaceID).Return(workspace, nil).Once()
	suite.mockUserReader.On("FindUserByID", ctx, targetID).Return(&domain.User{UserID: targetID}, nil).Once()
	suite.mockRepo.On("SaveMembership", ctx, mock.MatchedBy(func(m domain.Membership) bool {
		return len(m.Roles) == 2 && m.Roles[0] == "admin" && m.Roles[1] == "user"
	})).Return(nil).Once()
	saved := &domain.Membership{UserID: targetID, WorkspaceID: workspace.WorkspaceID, Roles: []string{"admin", "user"}, Status: domain.MembershipStatusActive}
	suite.mockRepo.On("FindMembership", ctx, targetID, workspace.WorkspaceID).Return(saved, nil).Once()

	membership, err := suite.service.AddMember(ctx, workspace.WorkspaceID, targetID, []string{"admin", "admin", "user"}, adderID)

	suite.Require().NoError(err)
	suite.Equal([]string{"admin", "user"}, membership.Roles)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *WorkspaceServiceTestSuite) TestAddMember_RoleNotAllowed() {
	ctx := context.Background()
	workspace := activeWorkspace()
	targetID := uuid.NewString()

	suite.mockRepo.On("FindWorkspaceByID", ctx, workspace.WorkspaceID).Return(workspace, nil).Once()
	suite.mockUserReader.On("FindUserByID", ctx, targetID).Return(&domain.User{UserID: targetID}, nil).Once()

	_, err := suite.service.AddMember(ctx, workspace.WorkspaceID, targetID, []string{"owner"}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveMembership", mock.Anything, mock.Anything)
}

func (suite *WorkspaceServiceTestSuite) TestRemoveMember_SelfRemovalRejected() {
	ctx := context.Background()
	userID := uuid.NewString()

	err := suite.service.RemoveMember(ctx, uuid.NewString(), userID, userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteMembership", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *WorkspaceServiceTestSuite) TestAcceptInvite_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	inviterID := uuid.NewString()
	invite := &domain.Invite{
		InviteID:    uuid.NewString(),
		WorkspaceID: uuid.NewString(),
		Email:       "driver@example.com",
		Token:       "tok",
		Roles:       []string{"user"},
		Status:      domain.InviteStatusPending,
		InvitedBy:   inviterID,
		ExpiresAt:   time.Now().Add(time.Hour),
	}

	suite.mockInviteRepo.On("FindInviteByToken", ctx, "tok").Return(invite, nil).Once()
	suite.mockUserReader.On("FindUserByID", ctx, userID).Return(&domain.User{UserID: userID, Email: "Driver@Example.com"}, nil).Once()
	suite.mockRepo.On("SaveMembership", ctx, mock.MatchedBy(func(m domain.Membership) bool {
		return m.UserID == userID && m.WorkspaceID == invite.WorkspaceID && m.Status == domain.MembershipStatusActive
	})).Return(nil).Once()
	suite.mockInviteRepo.On("UpdateInviteStatus", ctx, invite.InviteID, domain.InviteStatusAccepted, userID).Return(nil).Once()
	saved := &domain.Membership{UserID: userID, WorkspaceID: invite.WorkspaceID, Roles: []string{"user"}, Status: domain.MembershipStatusActive}
	suite.mockRepo.On("FindMembership", ctx, userID, invite.WorkspaceID).Return(saved, nil).Once()

	membership, err := suite.service.AcceptInvite(ctx, "tok", userID)

	suite.Require().NoError(err)
	suite.Equal(invite.WorkspaceID, membership.WorkspaceID)
	suite.mockInviteRepo.AssertExpectations(suite.T())
}

func (suite *WorkspaceServiceTestSuite) TestAcceptInvite_EmailMismatch() {
	ctx := context.Background()
	userID := uuid.NewString()
	invite := &domain.Invite{
		InviteID:  uuid.NewString(),
		Email:     "driver@example.com",
		Status:    domain.InviteStatusPending,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	suite.mockInviteRepo.On("FindInviteByToken", ctx, "tok").Return(invite, nil).Once()
	suite.mockUserReader.On("FindUserByID", ctx, userID).Return(&domain.User{UserID: userID, Email: "other@example.com"}, nil).Once()

	_, err := suite.service.AcceptInvite(ctx, "tok", userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveMembership", mock.Anything, mock.Anything)
}

func (suite *WorkspaceServiceTestSuite) TestAcceptInvite_Expired() {
	ctx := context.Background()
	invite := &domain.Invite{
		InviteID:  uuid.NewString(),
		Status:    domain.InviteStatusPending,
		ExpiresAt: time.Now().Add(-time.Hour),
	}

	suite.mockInviteRepo.On("FindInviteByToken", ctx, "tok").Return(invite, nil).Once()

	_, err := suite.service.AcceptInvite(ctx, "tok", uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *WorkspaceServiceTestSuite) TestAcceptInvite_AlreadyResponded() {
	ctx := context.Background()
	invite := &domain.Invite{
		InviteID:  uuid.NewString(),
		Status:    domain.InviteStatusAccepted,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	suite.mockInviteRepo.On("FindInviteByToken", ctx, "tok").Return(invite, nil).Once()

	_, err := suite.service.AcceptInvite(ctx, "tok", uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func TestWorkspaceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WorkspaceServiceTestSuite))
}
