package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gasdepot/cylinder_ledger_app/internal/apperrors"
	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
	portsrepo "github.com/gasdepot/cylinder_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/gasdepot/cylinder_ledger_app/internal/core/ports/services"
	"github.com/gasdepot/cylinder_ledger_app/internal/dto"
	"github.com/gasdepot/cylinder_ledger_app/internal/middleware"
	"github.com/gasdepot/cylinder_ledger_app/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.FindUserByUsername(ctx, username)
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.userRepo.ListUsers(ctx, limit, offset)
}

// CreateUser registers a new local user. New registrations always get the
// base global role; elevation is a separate admin action.
func (s *userService) CreateUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewInternalServerError("failed to hash password", err)
	}

	now := time.Now()
	userID := uuid.NewString()
	user := domain.User{
		UserID:       userID,
		Name:         req.Name,
		Username:     strings.ToLower(strings.TrimSpace(req.Username)),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         domain.GlobalRoleUser,
		AuthProvider: domain.ProviderLocal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	logger.Info("User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

// CreateOAuthUser creates or retrieves a user authenticated by an external
// provider. Matching happens on the provider reference first, then on the
// verified email for linking an existing local account.
func (s *userService) CreateOAuthUser(ctx context.Context, name, email, provider, providerUserID string, emailVerified bool) (*domain.User, error) {
	authProvider := domain.AuthProvider(provider)

	existing, err := s.userRepo.FindUserByProviderID(ctx, authProvider, providerUserID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if emailVerified {
		if byEmail, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
			return byEmail, nil
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	now := time.Now()
	userID := uuid.NewString()
	user := domain.User{
		UserID:         userID,
		Name:           name,
		Username:       email,
		Email:          email,
		Role:           domain.GlobalRoleUser,
		AuthProvider:   authProvider,
		ProviderUserID: &providerUserID,
		EmailVerified:  emailVerified,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = updaterUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser soft deletes a user. Only staff and super callers may delete,
// and never themselves.
func (s *userService) DeleteUser(ctx context.Context, targetUserID, actingUserID string, actingRole domain.GlobalRole) error {
	if !actingRole.AtLeast(domain.GlobalRoleStaff) {
		return apperrors.NewForbiddenError("only staff may delete users", nil)
	}
	if targetUserID == actingUserID {
		return apperrors.NewBadRequestError("cannot delete your own account", nil)
	}
	return s.userRepo.MarkUserDeleted(ctx, targetUserID, actingUserID, time.Now())
}

func (s *userService) StoreRefreshTokenHash(ctx context.Context, userID, tokenHash string, expiresAt *time.Time) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, tokenHash, expiresAt)
}
