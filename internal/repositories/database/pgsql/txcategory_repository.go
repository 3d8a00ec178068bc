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

type PgxTxCategoryRepository struct {
	BaseRepository
}

// newPgxTxCategoryRepository creates a new repository for transaction categories.
func newPgxTxCategoryRepository(pool *pgxpool.Pool) portsrepo.TxCategoryRepositoryFacade {
	return &PgxTxCategoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTxCategoryRepository implements portsrepo.TxCategoryRepositoryFacade
var _ portsrepo.TxCategoryRepositoryFacade = (*PgxTxCategoryRepository)(nil)

var FULL_TX_CATEGORY_SELECT_QUERY = `
SELECT
	c.tx_category_id, c.workspace_id, c.division_id, c.code, c.name,
	c.debit_account_code, c.credit_account_code, c.description_template, c.is_active,
	c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
FROM tx_categories c
`

func (r *PgxTxCategoryRepository) getCategories(ctx context.Context, filterQuery string, args ...any) ([]domain.TxCategory, error) {
	query := FULL_TX_CATEGORY_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tx categories", err)
	}
	defer rows.Close()
	categories, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.TxCategory])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.TxCategory{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect tx category rows", err)
	}
	return categories, nil
}

func (r *PgxTxCategoryRepository) FindCategoryByCode(ctx context.Context, workspaceID, divisionID, code string) (*domain.TxCategory, error) {
	categories, err := r.getCategories(ctx, `WHERE c.workspace_id = $1 AND c.division_id = $2 AND c.code = $3 AND c.is_active = true`, workspaceID, divisionID, code)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &categories[0], nil
}

func (r *PgxTxCategoryRepository) ListCategories(ctx context.Context, workspaceID, divisionID string) ([]domain.TxCategory, error) {
	return r.getCategories(ctx, `WHERE c.workspace_id = $1 AND c.division_id = $2 ORDER BY c.code;`, workspaceID, divisionID)
}

func (r *PgxTxCategoryRepository) SaveCategory(ctx context.Context, category domain.TxCategory) error {
	query := `
		INSERT INTO tx_categories (
			tx_category_id, workspace_id, division_id, code, name,
			debit_account_code, credit_account_code, description_template, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		category.TxCategoryID,
		category.WorkspaceID,
		category.DivisionID,
		category.Code,
		category.Name,
		category.DebitAccountCode,
		category.CreditAccountCode,
		category.DescriptionTemplate,
		category.IsActive,
		category.CreatedAt,
		category.CreatedBy,
		category.LastUpdatedAt,
		category.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("category code " + category.Code + " already exists in this division")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("workspace or division does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save tx category "+category.TxCategoryID, err)
	}
	return nil
}

func (r *PgxTxCategoryRepository) UpdateCategory(ctx context.Context, category domain.TxCategory) error {
	query := `
		UPDATE tx_categories
		SET name = $1, debit_account_code = $2, credit_account_code = $3,
			description_template = $4, is_active = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE tx_category_id = $8;
	`
	result, err := r.Pool.Exec(ctx, query,
		category.Name,
		category.DebitAccountCode,
		category.CreditAccountCode,
		category.DescriptionTemplate,
		category.IsActive,
		category.LastUpdatedAt,
		category.LastUpdatedBy,
		category.TxCategoryID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update tx category "+category.TxCategoryID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
