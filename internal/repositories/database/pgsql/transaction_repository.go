package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/gasdepot/cylinder_ledger_app/internal/apperrors"
	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
	portsrepo "github.com/gasdepot/cylinder_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountReader
}

// newPgxTransactionRepository creates a new repository for ledger transactions.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountReader) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

// transactionRow is the flat database shape. Account refs are plain ids in
// storage; the domain shape carries them as Ref values.
type transactionRow struct {
	TransactionID    string                  `db:"transaction_id"`
	WorkspaceID      string                  `db:"workspace_id"`
	DivisionID       string                  `db:"division_id"`
	DebitAccountID   string                  `db:"debit_account_id"`
	CreditAccountID  string                  `db:"credit_account_id"`
	Amount           decimal.Decimal         `db:"amount"`
	CategoryCode     string                  `db:"category_code"`
	PaymentMethod    domain.PaymentMethod    `db:"payment_method"`
	CounterpartyType domain.CounterpartyType `db:"counterparty_type"`
	CounterpartyID   string                  `db:"counterparty_id"`
	Ref              string                  `db:"ref"`
	Details          map[string]any          `db:"details"`
	CreatedAt        time.Time               `db:"created_at"`
	CreatedBy        string                  `db:"created_by"`
	LastUpdatedAt    time.Time               `db:"last_updated_at"`
	LastUpdatedBy    string                  `db:"last_updated_by"`
}

func (row transactionRow) toDomain() domain.Transaction {
	return domain.Transaction{
		TransactionID:    row.TransactionID,
		WorkspaceID:      row.WorkspaceID,
		DivisionID:       row.DivisionID,
		DebitAccount:     domain.NewRef[domain.Account](row.DebitAccountID),
		CreditAccount:    domain.NewRef[domain.Account](row.CreditAccountID),
		Amount:           row.Amount,
		CategoryCode:     row.CategoryCode,
		PaymentMethod:    row.PaymentMethod,
		CounterpartyType: row.CounterpartyType,
		CounterpartyID:   row.CounterpartyID,
		Ref:              row.Ref,
		Details:          row.Details,
		AuditFields: domain.AuditFields{
			CreatedAt:     row.CreatedAt,
			CreatedBy:     row.CreatedBy,
			LastUpdatedAt: row.LastUpdatedAt,
			LastUpdatedBy: row.LastUpdatedBy,
		},
	}
}

var FULL_TRANSACTION_SELECT_QUERY = `
SELECT
	t.transaction_id, t.workspace_id, t.division_id,
	t.debit_account_id, t.credit_account_id, t.amount, t.category_code,
	t.payment_method, t.counterparty_type, t.counterparty_id, t.ref, t.details,
	t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
FROM transactions t
`

func (r *PgxTransactionRepository) getTransactions(ctx context.Context, filterQuery string, args ...any) ([]domain.Transaction, error) {
	query := FULL_TRANSACTION_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()
	txRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[transactionRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Transaction{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect transaction rows", err)
	}
	transactions := make([]domain.Transaction, len(txRows))
	for i, row := range txRows {
		transactions[i] = row.toDomain()
	}
	return transactions, nil
}

// FindTransactionByID retrieves a transaction. When populate is true the
// account refs are loaded with their full account rows.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string, populate bool) (*domain.Transaction, error) {
	transactions, err := r.getTransactions(ctx, `WHERE t.transaction_id = $1`, transactionID)
	if err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		return nil, apperrors.ErrNotFound
	}
	txn := transactions[0]
	if populate {
		debit, err := r.accountRepo.FindAccountByID(ctx, txn.DebitAccount.ID)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to populate debit account for transaction "+transactionID, err)
		}
		credit, err := r.accountRepo.FindAccountByID(ctx, txn.CreditAccount.ID)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to populate credit account for transaction "+transactionID, err)
		}
		txn.DebitAccount = domain.PopulatedRef(txn.DebitAccount.ID, debit)
		txn.CreditAccount = domain.PopulatedRef(txn.CreditAccount.ID, credit)
	}
	return &txn, nil
}

func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, workspaceID, divisionID string, limit, offset int) ([]domain.Transaction, error) {
	return r.getTransactions(ctx,
		`WHERE t.workspace_id = $1 AND t.division_id = $2 ORDER BY t.created_at DESC LIMIT $3 OFFSET $4`,
		workspaceID, divisionID, limit, offset)
}

// SaveTransaction inserts a ledger entry inside the caller's transaction.
// There is no corresponding update or delete; the table is append-only.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	query := `
		INSERT INTO transactions (
			transaction_id, workspace_id, division_id,
			debit_account_id, credit_account_id, amount, category_code,
			payment_method, counterparty_type, counterparty_id, ref, details,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := tx.Exec(ctx, query,
		txn.TransactionID,
		txn.WorkspaceID,
		txn.DivisionID,
		txn.DebitAccount.ID,
		txn.CreditAccount.ID,
		txn.Amount,
		txn.CategoryCode,
		txn.PaymentMethod,
		txn.CounterpartyType,
		txn.CounterpartyID,
		txn.Ref,
		txn.Details,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("transaction ID " + txn.TransactionID + " already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("referenced account does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save transaction "+txn.TransactionID, err)
	}
	return nil
}
