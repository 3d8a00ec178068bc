package repositories

import (
	"context"

	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
)

// InviteReader defines read operations for invites
type InviteReader interface {
	// FindInviteByToken retrieves an invite by its opaque token.
	FindInviteByToken(ctx context.Context, token string) (*domain.Invite, error)

	// ListInvitesByWorkspace retrieves all invites issued for a workspace.
	ListInvitesByWorkspace(ctx context.Context, workspaceID string) ([]domain.Invite, error)
}

// InviteWriter defines write operations for invites
type InviteWriter interface {
	// SaveInvite persists a new invite.
	SaveInvite(ctx context.Context, invite domain.Invite) error

	// UpdateInviteStatus transitions an invite's status.
	UpdateInviteStatus(ctx context.Context, inviteID string, status domain.InviteStatus, updatedBy string) error
}

// InviteRepositoryFacade combines all invite-related repository interfaces
type InviteRepositoryFacade interface {
	InviteReader
	InviteWriter
}
