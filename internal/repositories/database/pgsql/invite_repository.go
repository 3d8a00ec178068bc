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

type PgxInviteRepository struct {
	BaseRepository
}

// newPgxInviteRepository creates a new repository for workspace invites.
func newPgxInviteRepository(pool *pgxpool.Pool) portsrepo.InviteRepositoryFacade {
	return &PgxInviteRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxInviteRepository implements portsrepo.InviteRepositoryFacade
var _ portsrepo.InviteRepositoryFacade = (*PgxInviteRepository)(nil)

var FULL_INVITE_SELECT_QUERY = `
SELECT
	i.invite_id, i.workspace_id, i.email, i.token, i.roles, i.status,
	i.invited_by, i.expires_at,
	i.created_at, i.created_by, i.last_updated_at, i.last_updated_by
FROM invites i
`

func (r *PgxInviteRepository) getInvites(ctx context.Context, filterQuery string, args ...any) ([]domain.Invite, error) {
	query := FULL_INVITE_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invites", err)
	}
	defer rows.Close()
	invites, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Invite])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Invite{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect invite rows", err)
	}
	return invites, nil
}

func (r *PgxInviteRepository) FindInviteByToken(ctx context.Context, token string) (*domain.Invite, error) {
	invites, err := r.getInvites(ctx, `WHERE i.token = $1`, token)
	if err != nil {
		return nil, err
	}
	if len(invites) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &invites[0], nil
}

func (r *PgxInviteRepository) ListInvitesByWorkspace(ctx context.Context, workspaceID string) ([]domain.Invite, error) {
	return r.getInvites(ctx, `WHERE i.workspace_id = $1 ORDER BY i.created_at DESC;`, workspaceID)
}

func (r *PgxInviteRepository) SaveInvite(ctx context.Context, invite domain.Invite) error {
	query := `
		INSERT INTO invites (
			invite_id, workspace_id, email, token, roles, status,
			invited_by, expires_at,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		invite.InviteID,
		invite.WorkspaceID,
		invite.Email,
		invite.Token,
		invite.Roles,
		invite.Status,
		invite.InvitedBy,
		invite.ExpiresAt,
		invite.CreatedAt,
		invite.CreatedBy,
		invite.LastUpdatedAt,
		invite.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation on the token
				return apperrors.NewConflictError("invite token already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("workspace does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save invite "+invite.InviteID, err)
	}
	return nil
}

func (r *PgxInviteRepository) UpdateInviteStatus(ctx context.Context, inviteID string, status domain.InviteStatus, updatedBy string) error {
	query := `
		UPDATE invites
		SET status = $1, last_updated_at = NOW(), last_updated_by = $2
		WHERE invite_id = $3;
	`
	result, err := r.Pool.Exec(ctx, query, status, updatedBy, inviteID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update invite status "+inviteID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
