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
	"github.com/gasdepot/cylinder_ledger_app/internal/platform/config"
	"github.com/gasdepot/cylinder_ledger_app/internal/utils"
	"github.com/google/uuid"
)

type workspaceService struct {
	workspaceRepo portsrepo.WorkspaceRepositoryWithTx
	userRepo      portsrepo.UserReader
	inviteRepo    portsrepo.InviteRepositoryFacade
	cfg           *config.Config
}

// NewWorkspaceService creates a new workspace service.
func NewWorkspaceService(workspaceRepo portsrepo.WorkspaceRepositoryWithTx, userRepo portsrepo.UserReader, inviteRepo portsrepo.InviteRepositoryFacade, cfg *config.Config) portssvc.WorkspaceSvcFacade {
	return &workspaceService{
		workspaceRepo: workspaceRepo,
		userRepo:      userRepo,
		inviteRepo:    inviteRepo,
		cfg:           cfg,
	}
}

var _ portssvc.WorkspaceSvcFacade = (*workspaceService)(nil)

func (s *workspaceService) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	return s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
}

func (s *workspaceService) ListUserWorkspaces(ctx context.Context, userID string) ([]domain.Workspace, error) {
	return s.workspaceRepo.ListWorkspacesByUserID(ctx, userID)
}

func (s *workspaceService) ListWorkspaceMembers(ctx context.Context, workspaceID string) ([]domain.Membership, error) {
	return s.workspaceRepo.ListMemberships(ctx, workspaceID)
}

// CreateWorkspace persists a new workspace and makes the creator its first
// admin member in the same breath.
func (s *workspaceService) CreateWorkspace(ctx context.Context, req dto.CreateWorkspaceRequest, creatorUserID string) (*domain.Workspace, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	allowedRoles := domain.NormalizeRoleNames(req.AllowedRoles)
	if len(allowedRoles) == 0 {
		allowedRoles = []string{domain.WorkspaceRoleAdmin, domain.WorkspaceRoleManager, domain.WorkspaceRoleUser}
	}

	workspace := domain.Workspace{
		WorkspaceID:  uuid.NewString(),
		Name:         req.Name,
		Description:  req.Description,
		AllowedRoles: allowedRoles,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.workspaceRepo.SaveWorkspace(ctx, workspace); err != nil {
		return nil, err
	}

	membership := domain.Membership{
		MembershipID: uuid.NewString(),
		UserID:       creatorUserID,
		WorkspaceID:  workspace.WorkspaceID,
		Roles:        []string{domain.WorkspaceRoleAdmin},
		Status:       domain.MembershipStatusActive,
		JoinedAt:     now,
	}
	if err := s.workspaceRepo.SaveMembership(ctx, membership); err != nil {
		return nil, err
	}

	logger.Info("Workspace created", slog.String("workspace_id", workspace.WorkspaceID), slog.String("created_by", creatorUserID))
	return &workspace, nil
}

func (s *workspaceService) UpdateWorkspace(ctx context.Context, workspaceID string, req dto.UpdateWorkspaceRequest, updaterUserID string) (*domain.Workspace, error) {
	workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		workspace.Name = *req.Name
	}
	if req.Description != nil {
		workspace.Description = *req.Description
	}
	if req.AllowedRoles != nil {
		workspace.AllowedRoles = domain.NormalizeRoleNames(req.AllowedRoles)
	}
	workspace.LastUpdatedAt = time.Now()
	workspace.LastUpdatedBy = updaterUserID

	if err := s.workspaceRepo.UpdateWorkspace(ctx, *workspace); err != nil {
		return nil, err
	}
	return workspace, nil
}

// ResolveMembership returns the user's active membership. Invited rows are
// invisible here; an invite grants nothing until accepted.
func (s *workspaceService) ResolveMembership(ctx context.Context, userID, workspaceID string) (*domain.Membership, error) {
	return s.workspaceRepo.FindMembership(ctx, userID, workspaceID)
}

// validateRoles checks the requested role names against the workspace's
// allowed set and returns the deduplicated result.
func (s *workspaceService) validateRoles(workspace *domain.Workspace, roles []string) ([]string, error) {
	normalized := domain.NormalizeRoleNames(roles)
	if len(normalized) == 0 {
		return nil, apperrors.NewValidationFailedError("at least one role is required")
	}
	allowed := make(map[string]struct{}, len(workspace.AllowedRoles))
	for _, r := range workspace.AllowedRoles {
		allowed[r] = struct{}{}
	}
	for _, r := range normalized {
		if _, ok := allowed[r]; !ok {
			return nil, apperrors.NewValidationFailedError("role " + r + " is not allowed in this workspace")
		}
	}
	return normalized, nil
}

// AddMember adds a user to a workspace. The membership upsert converges on
// the existing row, so adding an existing member updates the role set
// instead of creating a second row.
func (s *workspaceService) AddMember(ctx context.Context, workspaceID, targetUserID string, roles []string, addedBy string) (*domain.Membership, error) {
	workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindUserByID(ctx, targetUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("user not found", err)
		}
		return nil, err
	}

	normalized, err := s.validateRoles(workspace, roles)
	if err != nil {
		return nil, err
	}

	membership := domain.Membership{
		MembershipID: uuid.NewString(),
		UserID:       targetUserID,
		WorkspaceID:  workspaceID,
		Roles:        normalized,
		Status:       domain.MembershipStatusActive,
		InvitedBy:    &addedBy,
		JoinedAt:     time.Now(),
	}
	if err := s.workspaceRepo.SaveMembership(ctx, membership); err != nil {
		return nil, err
	}
	return s.workspaceRepo.FindMembership(ctx, targetUserID, workspaceID)
}

func (s *workspaceService) UpdateMemberRoles(ctx context.Context, workspaceID, targetUserID string, roles []string, updatedBy string) (*domain.Membership, error) {
	workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	membership, err := s.workspaceRepo.FindMembership(ctx, targetUserID, workspaceID)
	if err != nil {
		return nil, err
	}

	normalized, err := s.validateRoles(workspace, roles)
	if err != nil {
		return nil, err
	}

	membership.Roles = normalized
	if err := s.workspaceRepo.SaveMembership(ctx, *membership); err != nil {
		return nil, err
	}
	return membership, nil
}

func (s *workspaceService) RemoveMember(ctx context.Context, workspaceID, targetUserID, removedBy string) error {
	if targetUserID == removedBy {
		return apperrors.NewBadRequestError("cannot remove yourself from a workspace", nil)
	}
	return s.workspaceRepo.DeleteMembership(ctx, targetUserID, workspaceID)
}

// CreateInvite issues a token-bearing invite. The token is an opaque random
// secret delivered out of band; only its creation response carries it.
func (s *workspaceService) CreateInvite(ctx context.Context, workspaceID string, req dto.CreateInviteRequest, invitedBy string) (*domain.Invite, error) {
	workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	normalized, err := s.validateRoles(workspace, req.Roles)
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, apperrors.NewInternalServerError("failed to generate invite token", err)
	}

	now := time.Now()
	invite := domain.Invite{
		InviteID:    uuid.NewString(),
		WorkspaceID: workspaceID,
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Token:       token,
		Roles:       normalized,
		Status:      domain.InviteStatusPending,
		InvitedBy:   invitedBy,
		ExpiresAt:   now.Add(s.cfg.InviteExpiryDuration),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     invitedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: invitedBy,
		},
	}
	if err := s.inviteRepo.SaveInvite(ctx, invite); err != nil {
		return nil, err
	}
	return &invite, nil
}

// AcceptInvite turns an open, unexpired invite into an active membership for
// the accepting user. The accepting user's email must match the invite.
func (s *workspaceService) AcceptInvite(ctx context.Context, token string, acceptingUserID string) (*domain.Membership, error) {
	invite, err := s.inviteRepo.FindInviteByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if !invite.IsOpen() {
		return nil, apperrors.NewConflictError("invite has already been responded to")
	}
	if invite.IsExpired(time.Now()) {
		return nil, apperrors.NewBadRequestError("invite has expired", nil)
	}

	user, err := s.userRepo.FindUserByID(ctx, acceptingUserID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(user.Email, invite.Email) {
		return nil, apperrors.NewForbiddenError("invite was issued for a different email address", nil)
	}

	membership := domain.Membership{
		MembershipID: uuid.NewString(),
		UserID:       acceptingUserID,
		WorkspaceID:  invite.WorkspaceID,
		Roles:        domain.NormalizeRoleNames(invite.Roles),
		Status:       domain.MembershipStatusActive,
		InvitedBy:    &invite.InvitedBy,
		JoinedAt:     time.Now(),
	}
	if err := s.workspaceRepo.SaveMembership(ctx, membership); err != nil {
		return nil, err
	}
	if err := s.inviteRepo.UpdateInviteStatus(ctx, invite.InviteID, domain.InviteStatusAccepted, acceptingUserID); err != nil {
		return nil, err
	}
	return s.workspaceRepo.FindMembership(ctx, acceptingUserID, invite.WorkspaceID)
}

func (s *workspaceService) DeclineInvite(ctx context.Context, token string, decliningUserID string) error {
	invite, err := s.inviteRepo.FindInviteByToken(ctx, token)
	if err != nil {
		return err
	}
	if !invite.IsOpen() {
		return apperrors.NewConflictError("invite has already been responded to")
	}
	return s.inviteRepo.UpdateInviteStatus(ctx, invite.InviteID, domain.InviteStatusDeclined, decliningUserID)
}

func (s *workspaceService) ListInvites(ctx context.Context, workspaceID string) ([]domain.Invite, error) {
	return s.inviteRepo.ListInvitesByWorkspace(ctx, workspaceID)
}
