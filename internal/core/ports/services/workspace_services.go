package services

import (
	"context"

	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
	"github.com/gasdepot/cylinder_ledger_app/internal/dto"
)

// WorkspaceReaderSvc defines read operations for workspace data
type WorkspaceReaderSvc interface {
	// FindWorkspaceByID retrieves a specific workspace by its ID.
	FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error)

	// ListUserWorkspaces retrieves workspaces the user is an active member of.
	ListUserWorkspaces(ctx context.Context, userID string) ([]domain.Workspace, error)

	// ListWorkspaceMembers retrieves all memberships of a workspace.
	ListWorkspaceMembers(ctx context.Context, workspaceID string) ([]domain.Membership, error)
}

// WorkspaceWriterSvc defines write operations for workspace data
type WorkspaceWriterSvc interface {
	// CreateWorkspace persists a new workspace; the creator becomes its
	// first admin member.
	CreateWorkspace(ctx context.Context, req dto.CreateWorkspaceRequest, creatorUserID string) (*domain.Workspace, error)

	// UpdateWorkspace updates name/description/allowed roles.
	UpdateWorkspace(ctx context.Context, workspaceID string, req dto.UpdateWorkspaceRequest, updaterUserID string) (*domain.Workspace, error)
}

// MembershipResolverSvc resolves memberships for authorization. Resolution
// is read-only and never creates or repairs records.
type MembershipResolverSvc interface {
	// ResolveMembership returns the user's active workspace membership, or
	// ErrNotFound when absent or merely invited.
	ResolveMembership(ctx context.Context, userID, workspaceID string) (*domain.Membership, error)
}

// WorkspaceMembershipSvc defines operations for managing workspace membership
type WorkspaceMembershipSvc interface {
	// AddMember adds a user to a workspace with a deduplicated role set.
	AddMember(ctx context.Context, workspaceID, targetUserID string, roles []string, addedBy string) (*domain.Membership, error)

	// UpdateMemberRoles replaces a member's role set (deduplicated).
	UpdateMemberRoles(ctx context.Context, workspaceID, targetUserID string, roles []string, updatedBy string) (*domain.Membership, error)

	// RemoveMember removes a user from a workspace.
	RemoveMember(ctx context.Context, workspaceID, targetUserID, removedBy string) error
}

// WorkspaceInviteSvc defines operations for invite lifecycle
type WorkspaceInviteSvc interface {
	// CreateInvite issues a token-bearing pending membership invite.
	CreateInvite(ctx context.Context, workspaceID string, req dto.CreateInviteRequest, invitedBy string) (*domain.Invite, error)

	// AcceptInvite turns an open, unexpired invite into an active membership.
	AcceptInvite(ctx context.Context, token string, acceptingUserID string) (*domain.Membership, error)

	// DeclineInvite marks an open invite declined.
	DeclineInvite(ctx context.Context, token string, decliningUserID string) error

	// ListInvites retrieves all invites of a workspace.
	ListInvites(ctx context.Context, workspaceID string) ([]domain.Invite, error)
}

// WorkspaceSvcFacade combines all workspace-related service interfaces
type WorkspaceSvcFacade interface {
	WorkspaceReaderSvc
	WorkspaceWriterSvc
	MembershipResolverSvc
	WorkspaceMembershipSvc
	WorkspaceInviteSvc
}
