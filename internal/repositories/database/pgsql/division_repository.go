package pgsql

import (
	"context"
	"errors"

	"github.com/gasdepot/cylinder_ledger_app/internal/apperrors"
	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
	portsrepo "github.com/gasdepot/cylinder_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDivisionRepository struct {
	BaseRepository
}

// newPgxDivisionRepository creates a new repository for division data.
func newPgxDivisionRepository(pool *pgxpool.Pool) portsrepo.DivisionRepositoryWithTx {
	return &PgxDivisionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxDivisionRepository implements portsrepo.DivisionRepositoryWithTx
var _ portsrepo.DivisionRepositoryWithTx = (*PgxDivisionRepository)(nil)

var FULL_DIVISION_SELECT_QUERY = `
SELECT
	d.division_id, d.workspace_id, d.name, d.description, d.is_active,
	d.created_at, d.created_by, d.last_updated_at, d.last_updated_by
FROM divisions d
`

func (r *PgxDivisionRepository) getDivisions(ctx context.Context, filterQuery string, args ...any) ([]domain.Division, error) {
	query := FULL_DIVISION_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query divisions", err)
	}
	defer rows.Close()
	divisions, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Division])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Division{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect division rows", err)
	}
	return divisions, nil
}

func (r *PgxDivisionRepository) FindDivisionByID(ctx context.Context, divisionID string) (*domain.Division, error) {
	divisions, err := r.getDivisions(ctx, `WHERE d.division_id = $1`, divisionID)
	if err != nil {
		return nil, err
	}
	if len(divisions) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &divisions[0], nil
}

func (r *PgxDivisionRepository) ListDivisionsByWorkspace(ctx context.Context, workspaceID string) ([]domain.Division, error) {
	return r.getDivisions(ctx, `WHERE d.workspace_id = $1 ORDER BY d.name;`, workspaceID)
}

func (r *PgxDivisionRepository) SaveDivision(ctx context.Context, division domain.Division) error {
	query := `
		INSERT INTO divisions (
			division_id, workspace_id, name, description, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		division.DivisionID,
		division.WorkspaceID,
		division.Name,
		division.Description,
		division.IsActive,
		division.CreatedAt,
		division.CreatedBy,
		division.LastUpdatedAt,
		division.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("division ID " + division.DivisionID + " already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("workspace does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save division "+division.DivisionID, err)
	}
	return nil
}

func (r *PgxDivisionRepository) UpdateDivision(ctx context.Context, division domain.Division) error {
	query := `
		UPDATE divisions
		SET name = $1, description = $2, is_active = $3,
			last_updated_at = $4, last_updated_by = $5
		WHERE division_id = $6;
	`
	result, err := r.Pool.Exec(ctx, query,
		division.Name,
		division.Description,
		division.IsActive,
		division.LastUpdatedAt,
		division.LastUpdatedBy,
		division.DivisionID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update division "+division.DivisionID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveDivisionMembership upserts the one membership row per (user, division)
// inside the caller's transaction. Membership writes travel with the parent
// checks that authorized them.
func (r *PgxDivisionRepository) SaveDivisionMembership(ctx context.Context, tx pgx.Tx, membership domain.DivisionMembership) error {
	query := `
		INSERT INTO division_memberships (
			division_membership_id, user_id, division_id, workspace_id,
			roles, status, added_by, removed_by, joined_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, division_id)
		DO UPDATE SET roles = EXCLUDED.roles, status = EXCLUDED.status,
			added_by = EXCLUDED.added_by, removed_by = EXCLUDED.removed_by;
	`
	_, err := tx.Exec(ctx, query,
		membership.DivisionMembershipID,
		membership.UserID,
		membership.DivisionID,
		membership.WorkspaceID,
		membership.Roles,
		membership.Status,
		membership.AddedBy,
		membership.RemovedBy,
		membership.JoinedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return apperrors.NewValidationFailedError("user or division does not exist")
		}
		return apperrors.NewAppError(500, "failed to save division membership for user "+membership.UserID+" in division "+membership.DivisionID, err)
	}
	return nil
}

// FindDivisionMembership returns the active membership only. Removed rows
// stay in storage for audit but are invisible to authorization.
func (r *PgxDivisionRepository) FindDivisionMembership(ctx context.Context, userID, divisionID string) (*domain.DivisionMembership, error) {
	query := `
		SELECT division_membership_id, user_id, division_id, workspace_id,
			roles, status, added_by, removed_by, joined_at
		FROM division_memberships
		WHERE user_id = $1 AND division_id = $2 AND status = $3;
	`
	rows, err := r.Pool.Query(ctx, query, userID, divisionID, domain.DivisionMembershipStatusActive)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query division membership", err)
	}
	defer rows.Close()
	membership, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.DivisionMembership])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to collect division membership row", err)
	}
	return &membership, nil
}

func (r *PgxDivisionRepository) ListDivisionMemberships(ctx context.Context, divisionID string) ([]domain.DivisionMembership, error) {
	query := `
		SELECT division_membership_id, user_id, division_id, workspace_id,
			roles, status, added_by, removed_by, joined_at
		FROM division_memberships
		WHERE division_id = $1
		ORDER BY joined_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, divisionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query division memberships for "+divisionID, err)
	}
	defer rows.Close()
	memberships, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.DivisionMembership])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.DivisionMembership{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect division membership rows", err)
	}
	return memberships, nil
}
