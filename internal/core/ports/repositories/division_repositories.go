package repositories

import (
	"context"

	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// DivisionReader defines read operations for division data
type DivisionReader interface {
	// FindDivisionByID retrieves a specific division by its ID.
	FindDivisionByID(ctx context.Context, divisionID string) (*domain.Division, error)

	// ListDivisionsByWorkspace retrieves all divisions owned by a workspace.
	ListDivisionsByWorkspace(ctx context.Context, workspaceID string) ([]domain.Division, error)
}

// DivisionWriter defines write operations for division data
type DivisionWriter interface {
	// SaveDivision persists a new division.
	SaveDivision(ctx context.Context, division domain.Division) error

	// UpdateDivision persists changes to an existing division.
	UpdateDivision(ctx context.Context, division domain.Division) error
}

// DivisionMembershipManager defines operations for managing division memberships
type DivisionMembershipManager interface {
	// SaveDivisionMembership inserts or updates the membership row for the
	// membership's (user, division) pair, within an existing transaction.
	SaveDivisionMembership(ctx context.Context, tx pgx.Tx, membership domain.DivisionMembership) error

	// FindDivisionMembership retrieves the active membership of a user in a
	// division. Removed rows are treated as absent and yield ErrNotFound.
	FindDivisionMembership(ctx context.Context, userID, divisionID string) (*domain.DivisionMembership, error)

	// ListDivisionMemberships retrieves all memberships of a division, any status.
	ListDivisionMemberships(ctx context.Context, divisionID string) ([]domain.DivisionMembership, error)
}

// DivisionRepositoryFacade combines all division-related repository interfaces
type DivisionRepositoryFacade interface {
	DivisionReader
	DivisionWriter
	DivisionMembershipManager
}

// DivisionRepositoryWithTx extends DivisionRepositoryFacade with transaction capabilities
type DivisionRepositoryWithTx interface {
	DivisionRepositoryFacade
	TransactionManager
}
