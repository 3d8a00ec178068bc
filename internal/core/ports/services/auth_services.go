package services

import (
	"context"
	"time"

	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade issues and verifies session credentials. Verification is a
// pure function over the signing secrets and the clock; every failure mode
// collapses to apperrors.ErrUnauthenticated.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a short-lived JWT carrying the user ID and
	// global role.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// GenerateRefreshToken creates a long-lived JWT signed with the refresh
	// secret and returns it with its expiry. The caller persists its hash.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// VerifyAccessToken validates an access token and returns the identity
	// it carries.
	VerifyAccessToken(ctx context.Context, tokenString string) (userID string, role domain.GlobalRole, err error)

	// ValidateAndParseRefreshToken validates a refresh token against both
	// its signature and the hash stored on the user row, returning the user.
	ValidateAndParseRefreshToken(ctx context.Context, refreshTokenString string) (*domain.User, error)
}

// GoogleOAuthHandlerSvcFacade wraps the Google OAuth code-exchange flow.
type GoogleOAuthHandlerSvcFacade interface {
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)

	// ValidateGoogleIDToken validates an ID token received from Google and
	// returns the payload if valid.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
