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
	"github.com/shopspring/decimal"
)

type PgxStoreRepository struct {
	BaseRepository
}

// newPgxStoreRepository creates a new repository for store data.
func newPgxStoreRepository(pool *pgxpool.Pool) portsrepo.StoreRepositoryFacade {
	return &PgxStoreRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxStoreRepository implements portsrepo.StoreRepositoryFacade
var _ portsrepo.StoreRepositoryFacade = (*PgxStoreRepository)(nil)

var FULL_STORE_SELECT_QUERY = `
SELECT
	s.store_id, s.division_id, s.workspace_id, s.name, s.location, s.balance, s.is_active,
	s.created_at, s.created_by, s.last_updated_at, s.last_updated_by
FROM stores s
`

func (r *PgxStoreRepository) getStores(ctx context.Context, filterQuery string, args ...any) ([]domain.Store, error) {
	query := FULL_STORE_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query stores", err)
	}
	defer rows.Close()
	stores, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Store])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Store{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect store rows", err)
	}
	return stores, nil
}

func (r *PgxStoreRepository) FindStoreByID(ctx context.Context, storeID string) (*domain.Store, error) {
	stores, err := r.getStores(ctx, `WHERE s.store_id = $1`, storeID)
	if err != nil {
		return nil, err
	}
	if len(stores) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &stores[0], nil
}

func (r *PgxStoreRepository) ListStoresByDivision(ctx context.Context, divisionID string) ([]domain.Store, error) {
	return r.getStores(ctx, `WHERE s.division_id = $1 ORDER BY s.name;`, divisionID)
}

func (r *PgxStoreRepository) SaveStore(ctx context.Context, store domain.Store) error {
	query := `
		INSERT INTO stores (
			store_id, division_id, workspace_id, name, location, balance, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		store.StoreID,
		store.DivisionID,
		store.WorkspaceID,
		store.Name,
		store.Location,
		store.Balance,
		store.IsActive,
		store.CreatedAt,
		store.CreatedBy,
		store.LastUpdatedAt,
		store.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("store ID " + store.StoreID + " already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("division does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save store "+store.StoreID, err)
	}
	return nil
}

func (r *PgxStoreRepository) UpdateStore(ctx context.Context, store domain.Store) error {
	query := `
		UPDATE stores
		SET name = $1, location = $2, is_active = $3,
			last_updated_at = $4, last_updated_by = $5
		WHERE store_id = $6;
	`
	result, err := r.Pool.Exec(ctx, query,
		store.Name,
		store.Location,
		store.IsActive,
		store.LastUpdatedAt,
		store.LastUpdatedBy,
		store.StoreID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update store "+store.StoreID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ApplyBalanceDelta moves the running balance atomically with the ledger
// write that justifies it; callers pass the ledger engine's transaction.
func (r *PgxStoreRepository) ApplyBalanceDelta(ctx context.Context, tx pgx.Tx, storeID string, delta decimal.Decimal, updatedBy string) error {
	query := `
		UPDATE stores
		SET balance = balance + $1, last_updated_at = NOW(), last_updated_by = $2
		WHERE store_id = $3;
	`
	result, err := tx.Exec(ctx, query, delta, updatedBy, storeID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to apply balance delta to store "+storeID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
