package repositories

import (
	"context"
	"time"

	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines read operations for chart-of-accounts data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its ID.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an active account by its unique code
	// within a (workspace, division) scope.
	FindAccountByCode(ctx context.Context, workspaceID, divisionID, code string) (*domain.Account, error)

	// ListAccounts retrieves all accounts in a (workspace, division) scope.
	ListAccounts(ctx context.Context, workspaceID, divisionID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount persists changes to an existing account.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}

// TxCategoryReader defines read operations for transaction categories
type TxCategoryReader interface {
	// FindCategoryByCode retrieves an active category by code within a
	// (workspace, division) scope.
	FindCategoryByCode(ctx context.Context, workspaceID, divisionID, code string) (*domain.TxCategory, error)

	// ListCategories retrieves all categories in a (workspace, division) scope.
	ListCategories(ctx context.Context, workspaceID, divisionID string) ([]domain.TxCategory, error)
}

// TxCategoryWriter defines write operations for transaction categories
type TxCategoryWriter interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.TxCategory) error

	// UpdateCategory persists changes to an existing category.
	UpdateCategory(ctx context.Context, category domain.TxCategory) error
}

// TxCategoryRepositoryFacade combines all category-related repository interfaces
type TxCategoryRepositoryFacade interface {
	TxCategoryReader
	TxCategoryWriter
}

// TransactionReader defines read operations for ledger transactions
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction. When populate is true the
	// debit/credit account refs carry the loaded accounts.
	FindTransactionByID(ctx context.Context, transactionID string, populate bool) (*domain.Transaction, error)

	// ListTransactions retrieves transactions in a (workspace, division)
	// scope, newest first, with pagination.
	ListTransactions(ctx context.Context, workspaceID, divisionID string, limit, offset int) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for ledger transactions.
// Transactions are append-only; there is deliberately no update or delete.
type TransactionWriter interface {
	// SaveTransaction persists a transaction within an existing database
	// transaction.
	SaveTransaction(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines transaction repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with
// transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
