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

type PgxWorkspaceRepository struct {
	BaseRepository
}

// newPgxWorkspaceRepository creates a new repository for workspace data.
func newPgxWorkspaceRepository(pool *pgxpool.Pool) portsrepo.WorkspaceRepositoryWithTx {
	return &PgxWorkspaceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxWorkspaceRepository implements portsrepo.WorkspaceRepositoryWithTx
var _ portsrepo.WorkspaceRepositoryWithTx = (*PgxWorkspaceRepository)(nil)

var FULL_WORKSPACE_SELECT_QUERY = `
SELECT
	w.workspace_id, w.name, w.description, w.allowed_roles, w.is_active,
	w.created_at, w.created_by, w.last_updated_at, w.last_updated_by
FROM workspaces w
`

// getWorkspaces private func to get workspaces from the select query filters
func (r *PgxWorkspaceRepository) getWorkspaces(ctx context.Context, filterQuery string, args ...any) ([]domain.Workspace, error) {
	query := FULL_WORKSPACE_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query workspaces", err)
	}
	defer rows.Close()
	workspaces, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Workspace])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Workspace{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect workspace rows", err)
	}
	return workspaces, nil
}

func (r *PgxWorkspaceRepository) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	workspaces, err := r.getWorkspaces(ctx, `WHERE w.workspace_id = $1`, workspaceID)
	if err != nil {
		return nil, err
	}
	if len(workspaces) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &workspaces[0], nil
}

func (r *PgxWorkspaceRepository) ListWorkspacesByUserID(ctx context.Context, userID string) ([]domain.Workspace, error) {
	query := `
		JOIN memberships m ON w.workspace_id = m.workspace_id
		WHERE m.user_id = $1 AND m.status = $2 AND w.is_active = true
		ORDER BY w.name;
	`
	return r.getWorkspaces(ctx, query, userID, domain.MembershipStatusActive)
}

func (r *PgxWorkspaceRepository) SaveWorkspace(ctx context.Context, workspace domain.Workspace) error {
	query := `
		INSERT INTO workspaces (
			workspace_id, name, description, allowed_roles, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		workspace.WorkspaceID,
		workspace.Name,
		workspace.Description,
		workspace.AllowedRoles,
		workspace.IsActive,
		workspace.CreatedAt,
		workspace.CreatedBy,
		workspace.LastUpdatedAt,
		workspace.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("workspace ID " + workspace.WorkspaceID + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save workspace "+workspace.WorkspaceID, err)
	}
	return nil
}

func (r *PgxWorkspaceRepository) UpdateWorkspace(ctx context.Context, workspace domain.Workspace) error {
	query := `
		UPDATE workspaces
		SET name = $1, description = $2, allowed_roles = $3, is_active = $4,
			last_updated_at = $5, last_updated_by = $6
		WHERE workspace_id = $7;
	`
	result, err := r.Pool.Exec(ctx, query,
		workspace.Name,
		workspace.Description,
		workspace.AllowedRoles,
		workspace.IsActive,
		workspace.LastUpdatedAt,
		workspace.LastUpdatedBy,
		workspace.WorkspaceID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update workspace "+workspace.WorkspaceID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveMembership upserts the one membership row per (user, workspace).
// The unique index on (user_id, workspace_id) makes a re-add converge on
// the existing row instead of inserting a duplicate.
func (r *PgxWorkspaceRepository) SaveMembership(ctx context.Context, membership domain.Membership) error {
	query := `
		INSERT INTO memberships (membership_id, user_id, workspace_id, roles, status, invited_by, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, workspace_id)
		DO UPDATE SET roles = EXCLUDED.roles, status = EXCLUDED.status;
	`
	_, err := r.Pool.Exec(ctx, query,
		membership.MembershipID,
		membership.UserID,
		membership.WorkspaceID,
		membership.Roles,
		membership.Status,
		membership.InvitedBy,
		membership.JoinedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return apperrors.NewValidationFailedError("user or workspace does not exist")
		}
		return apperrors.NewAppError(500, "failed to save membership for user "+membership.UserID+" in workspace "+membership.WorkspaceID, err)
	}
	return nil
}

// FindMembership returns the active membership only. An invited row exists
// in storage but is invisible to authorization until accepted.
func (r *PgxWorkspaceRepository) FindMembership(ctx context.Context, userID, workspaceID string) (*domain.Membership, error) {
	query := `
		SELECT membership_id, user_id, workspace_id, roles, status, invited_by, joined_at
		FROM memberships
		WHERE user_id = $1 AND workspace_id = $2 AND status = $3;
	`
	rows, err := r.Pool.Query(ctx, query, userID, workspaceID, domain.MembershipStatusActive)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query membership", err)
	}
	defer rows.Close()
	membership, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[domain.Membership])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to collect membership row", err)
	}
	return &membership, nil
}

func (r *PgxWorkspaceRepository) ListMemberships(ctx context.Context, workspaceID string) ([]domain.Membership, error) {
	query := `
		SELECT membership_id, user_id, workspace_id, roles, status, invited_by, joined_at
		FROM memberships
		WHERE workspace_id = $1
		ORDER BY joined_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query memberships for workspace "+workspaceID, err)
	}
	defer rows.Close()
	memberships, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Membership])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Membership{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect membership rows", err)
	}
	return memberships, nil
}

func (r *PgxWorkspaceRepository) DeleteMembership(ctx context.Context, userID, workspaceID string) error {
	query := `DELETE FROM memberships WHERE user_id = $1 AND workspace_id = $2;`
	result, err := r.Pool.Exec(ctx, query, userID, workspaceID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete membership for user "+userID+" in workspace "+workspaceID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
