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
	"github.com/gasdepot/cylinder_ledger_app/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockUserService is a mock type for the UserSvcFacade interface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) CreateOAuthUser(ctx context.Context, name, email, provider, providerUserID string, emailVerified bool) (*domain.User, error) {
	args := m.Called(ctx, name, email, provider, providerUserID, emailVerified)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error) {
	args := m.Called(ctx, userID, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, targetUserID, actingUserID string, actingRole domain.GlobalRole) error {
	args := m.Called(ctx, targetUserID, actingUserID, actingRole)
	return args.Error(0)
}

func (m *MockUserService) StoreRefreshTokenHash(ctx context.Context, userID, tokenHash string, expiresAt *time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

// --- Test Suite Setup ---

type TokenServiceTestSuite struct {
	suite.Suite
	mockUserService *MockUserService
	cfg             *config.Config
	service         portssvc.TokenSvcFacade
}

func (suite *TokenServiceTestSuite) SetupTest() {
	suite.mockUserService = new(MockUserService)
	suite.cfg = &config.Config{
		JWTSecret:                  "access-secret-for-tests",
		JWTExpiryDuration:          15 * time.Minute,
		JWTIssuer:                  "cylinder-ledger-test",
		RefreshTokenSecret:         "refresh-secret-for-tests",
		RefreshTokenExpiryDuration: 24 * time.Hour,
	}
	suite.service = services.NewTokenService(suite.cfg, suite.mockUserService)
}

// --- Test Cases ---

func (suite *TokenServiceTestSuite) TestAccessToken_RoundTrip() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), Role: domain.GlobalRoleStaff}

	token, expiry, err := suite.service.GenerateAccessToken(ctx, user)
	suite.Require().NoError(err)
	suite.NotEmpty(token)
	suite.True(expiry.After(time.Now()))

	userID, role, err := suite.service.VerifyAccessToken(ctx, token)
	suite.Require().NoError(err)
	suite.Equal(user.UserID, userID)
	suite.Equal(domain.GlobalRoleStaff, role)
}

func (suite *TokenServiceTestSuite) TestVerifyAccessToken_Tampered() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), Role: domain.GlobalRoleUser}

	token, _, err := suite.service.GenerateAccessToken(ctx, user)
	suite.Require().NoError(err)

	_, _, err = suite.service.VerifyAccessToken(ctx, token+"x")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthenticated)
}

func (suite *TokenServiceTestSuite) TestVerifyAccessToken_WrongSecret() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), Role: domain.GlobalRoleUser}

	otherCfg := &config.Config{
		JWTSecret:         "a-completely-different-secret",
		JWTExpiryDuration: 15 * time.Minute,
		JWTIssuer:         suite.cfg.JWTIssuer,
	}
	otherService := services.NewTokenService(otherCfg, suite.mockUserService)

	token, _, err := otherService.GenerateAccessToken(ctx, user)
	suite.Require().NoError(err)

	_, _, err = suite.service.VerifyAccessToken(ctx, token)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthenticated)
}

func (suite *TokenServiceTestSuite) TestVerifyAccessToken_RefreshTokenRejected() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), Role: domain.GlobalRoleUser}

	refreshToken, _, err := suite.service.GenerateRefreshToken(ctx, user)
	suite.Require().NoError(err)

	_, _, err = suite.service.VerifyAccessToken(ctx, refreshToken)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthenticated)
}

func (suite *TokenServiceTestSuite) TestValidateAndParseRefreshToken_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, Role: domain.GlobalRoleUser}

	refreshToken, expiry, err := suite.service.GenerateRefreshToken(ctx, user)
	suite.Require().NoError(err)

	user.RefreshTokenHash = utils.HashRefreshToken(refreshToken)
	user.RefreshTokenExpiryTime = &expiry
	suite.mockUserService.On("GetUserByID", ctx, userID).Return(user, nil).Once()

	parsed, err := suite.service.ValidateAndParseRefreshToken(ctx, refreshToken)

	suite.Require().NoError(err)
	suite.Equal(userID, parsed.UserID)
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *TokenServiceTestSuite) TestValidateAndParseRefreshToken_RotatedOut() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, Role: domain.GlobalRoleUser}

	oldToken, expiry, err := suite.service.GenerateRefreshToken(ctx, user)
	suite.Require().NoError(err)

	// The stored hash belongs to a newer token, so the old one is revoked.
	user.RefreshTokenHash = utils.HashRefreshToken("a-newer-rotated-token")
	user.RefreshTokenExpiryTime = &expiry
	suite.mockUserService.On("GetUserByID", ctx, userID).Return(user, nil).Once()

	_, err = suite.service.ValidateAndParseRefreshToken(ctx, oldToken)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthenticated)
}

func (suite *TokenServiceTestSuite) TestValidateAndParseRefreshToken_NoStoredHash() {
	ctx := context.Background()
	userID := uuid.NewString()
	user := &domain.User{UserID: userID, Role: domain.GlobalRoleUser}

	refreshToken, _, err := suite.service.GenerateRefreshToken(ctx, user)
	suite.Require().NoError(err)

	suite.mockUserService.On("GetUserByID", ctx, userID).Return(user, nil).Once()

	_, err = suite.service.ValidateAndParseRefreshToken(ctx, refreshToken)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthenticated)
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
