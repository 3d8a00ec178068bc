package repositories

import (
	"context"

	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
)

// WorkspaceReader defines read operations for workspace data
type WorkspaceReader interface {
	// FindWorkspaceByID retrieves a specific workspace by its ID.
	FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error)

	// ListWorkspacesByUserID retrieves all workspaces a user is an active member of.
	ListWorkspacesByUserID(ctx context.Context, userID string) ([]domain.Workspace, error)
}

// WorkspaceWriter defines write operations for workspace data
type WorkspaceWriter interface {
	// SaveWorkspace persists a new workspace.
	SaveWorkspace(ctx context.Context, workspace domain.Workspace) error

	// UpdateWorkspace persists changes to an existing workspace.
	UpdateWorkspace(ctx context.Context, workspace domain.Workspace) error
}

// MembershipManager defines operations for managing workspace memberships
type MembershipManager interface {
	// SaveMembership inserts or updates the single membership row for the
	// membership's (user, workspace) pair. Role sets must already be
	// deduplicated by the caller.
	SaveMembership(ctx context.Context, membership domain.Membership) error

	// FindMembership retrieves the active membership of a user in a
	// workspace. Invited rows are treated as absent and yield ErrNotFound.
	FindMembership(ctx context.Context, userID, workspaceID string) (*domain.Membership, error)

	// ListMemberships retrieves all memberships of a workspace, any status.
	ListMemberships(ctx context.Context, workspaceID string) ([]domain.Membership, error)

	// DeleteMembership removes a user's membership row.
	DeleteMembership(ctx context.Context, userID, workspaceID string) error
}

// WorkspaceRepositoryFacade combines all workspace-related repository interfaces
type WorkspaceRepositoryFacade interface {
	WorkspaceReader
	WorkspaceWriter
	MembershipManager
}

// WorkspaceRepositoryWithTx extends WorkspaceRepositoryFacade with transaction capabilities
type WorkspaceRepositoryWithTx interface {
	WorkspaceRepositoryFacade
	TransactionManager
}
