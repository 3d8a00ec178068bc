package services

import (
	"context"
	"time"

	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
	"github.com/gasdepot/cylinder_ledger_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByUsername retrieves a user by unique username.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// ListUsers retrieves users with pagination. Restricted to staff and
	// super callers at the handler layer.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser registers a new local user with a hashed password.
	CreateUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// CreateOAuthUser creates or retrieves a user authenticated by an
	// external provider.
	CreateOAuthUser(ctx context.Context, name, email, provider, providerUserID string, emailVerified bool) (*domain.User, error)

	// UpdateUser updates a user's own profile fields.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error)

	// DeleteUser soft deletes a user. Admin-only; users cannot delete
	// themselves.
	DeleteUser(ctx context.Context, targetUserID, actingUserID string, actingRole domain.GlobalRole) error

	// StoreRefreshTokenHash persists the rotated refresh token hash.
	StoreRefreshTokenHash(ctx context.Context, userID, tokenHash string, expiresAt *time.Time) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
