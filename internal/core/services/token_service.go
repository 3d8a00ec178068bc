package services

import (
	"context"
	"errors"
	"time"

	"github.com/gasdepot/cylinder_ledger_app/internal/apperrors"
	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
	portssvc "github.com/gasdepot/cylinder_ledger_app/internal/core/ports/services"
	"github.com/gasdepot/cylinder_ledger_app/internal/platform/config"
	"github.com/gasdepot/cylinder_ledger_app/internal/utils"
)

// tokenService implements TokenSvcFacade. Access and refresh tokens are both
// JWTs but are signed with distinct secrets, so neither can stand in for the
// other.
type tokenService struct {
	cfg         *config.Config
	userService portssvc.UserSvcFacade
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, userService portssvc.UserSvcFacade) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:         cfg,
		userService: userService,
	}
}

// GenerateAccessToken creates a new JWT access token carrying the user's ID
// and global role.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateAccessJWT(user.UserID, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}

// GenerateRefreshToken creates a new refresh token JWT signed with the
// refresh secret. The caller is responsible for persisting its hash.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.RefreshTokenExpiryDuration)

	refreshToken, err := utils.GenerateRefreshJWT(user.UserID, s.cfg.RefreshTokenSecret, s.cfg.RefreshTokenExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, err
	}
	return refreshToken, expiryTime, nil
}

// VerifyAccessToken validates an access token and returns the identity it
// carries. Every failure mode maps to the same unauthenticated error so
// callers can't distinguish a forged token from an expired one.
func (s *tokenService) VerifyAccessToken(ctx context.Context, tokenString string) (string, domain.GlobalRole, error) {
	claims, err := utils.ParseAndValidateAccessJWT(tokenString, s.cfg.JWTSecret)
	if err != nil {
		return "", "", apperrors.ErrUnauthenticated
	}
	if claims.Subject == "" {
		return "", "", apperrors.ErrUnauthenticated
	}
	role := domain.GlobalRole(claims.Role)
	if !role.IsValid() {
		return "", "", apperrors.ErrUnauthenticated
	}
	return claims.Subject, role, nil
}

// ValidateAndParseRefreshToken validates a refresh token against both its
// signature and the hash stored on the user row.
func (s *tokenService) ValidateAndParseRefreshToken(ctx context.Context, refreshTokenString string) (*domain.User, error) {
	claims, err := utils.ParseAndValidateRefreshJWT(refreshTokenString, s.cfg.RefreshTokenSecret)
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if claims.Subject == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	user, err := s.userService.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, err
	}

	// The stored hash is the rotation anchor: a token that validates
	// cryptographically but doesn't match the current hash was already
	// rotated out (or revoked) and must not mint new sessions.
	if user.RefreshTokenHash == "" || user.RefreshTokenExpiryTime == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	if time.Now().After(*user.RefreshTokenExpiryTime) {
		return nil, apperrors.ErrUnauthenticated
	}
	if !utils.CompareRefreshTokenHash(refreshTokenString, user.RefreshTokenHash) {
		return nil, apperrors.ErrUnauthenticated
	}

	return user, nil
}
