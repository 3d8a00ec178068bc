package services

import (
	"context"

	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
	"github.com/gasdepot/cylinder_ledger_app/internal/dto"
)

// DivisionReaderSvc defines read operations for division data
type DivisionReaderSvc interface {
	// FindDivisionByID retrieves a specific division by its ID.
	FindDivisionByID(ctx context.Context, divisionID string) (*domain.Division, error)

	// FindDivisionInWorkspace retrieves a division and enforces the
	// cross-tenant guard: a division whose stored workspace reference does
	// not match workspaceID yields ErrValidation, not the division.
	FindDivisionInWorkspace(ctx context.Context, workspaceID, divisionID string) (*domain.Division, error)

	// ListDivisions retrieves all divisions of a workspace.
	ListDivisions(ctx context.Context, workspaceID string) ([]domain.Division, error)
}

// DivisionWriterSvc defines write operations for division data
type DivisionWriterSvc interface {
	// CreateDivision persists a new division under a workspace.
	CreateDivision(ctx context.Context, workspaceID string, req dto.CreateDivisionRequest, creatorUserID string) (*domain.Division, error)

	// UpdateDivision updates name/description.
	UpdateDivision(ctx context.Context, workspaceID, divisionID string, req dto.UpdateDivisionRequest, updaterUserID string) (*domain.Division, error)
}

// DivisionMembershipResolverSvc resolves division memberships for
// authorization. Read-only.
type DivisionMembershipResolverSvc interface {
	// ResolveDivisionMembership returns the user's active division
	// membership, or ErrNotFound when absent or removed.
	ResolveDivisionMembership(ctx context.Context, userID, divisionID string) (*domain.DivisionMembership, error)
}

// DivisionMembershipSvc defines operations for managing division membership
type DivisionMembershipSvc interface {
	// ListDivisionMembers retrieves all memberships of a division, any status.
	ListDivisionMembers(ctx context.Context, divisionID string) ([]domain.DivisionMembership, error)

	// AddDivisionMember adds a user to a division with a deduplicated role
	// set. Runs inside a scoped transaction.
	AddDivisionMember(ctx context.Context, workspaceID, divisionID, targetUserID string, roles []string, addedBy string) (*domain.DivisionMembership, error)

	// UpdateDivisionMemberRoles replaces a member's role set (deduplicated).
	UpdateDivisionMemberRoles(ctx context.Context, workspaceID, divisionID, targetUserID string, roles []string, updatedBy string) (*domain.DivisionMembership, error)

	// RemoveDivisionMember flips the membership status to removed.
	RemoveDivisionMember(ctx context.Context, workspaceID, divisionID, targetUserID, removedBy string) error
}

// DivisionSvcFacade combines all division-related service interfaces
type DivisionSvcFacade interface {
	DivisionReaderSvc
	DivisionWriterSvc
	DivisionMembershipResolverSvc
	DivisionMembershipSvc
}
