package services

import (
	"context"

	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
	"github.com/gasdepot/cylinder_ledger_app/internal/dto"
)

// AccountSvcFacade manages the chart of accounts for a (workspace, division)
// scope.
type AccountSvcFacade interface {
	// CreateAccount persists a new account with a scope-unique code.
	CreateAccount(ctx context.Context, workspaceID, divisionID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// GetAccount retrieves an account. Accounts outside the given scope are
	// reported as absent.
	GetAccount(ctx context.Context, workspaceID, divisionID, accountID string) (*domain.Account, error)

	// ListAccounts retrieves all accounts in scope.
	ListAccounts(ctx context.Context, workspaceID, divisionID string) ([]domain.Account, error)

	// UpdateAccount updates name/description.
	UpdateAccount(ctx context.Context, workspaceID, divisionID, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.Account, error)

	// DeactivateAccount marks an account inactive. Accounts referenced by
	// historical transactions are never deleted.
	DeactivateAccount(ctx context.Context, workspaceID, divisionID, accountID, updaterUserID string) error
}

// TxCategorySvcFacade manages symbolic transaction categories.
type TxCategorySvcFacade interface {
	// CreateCategory persists a new category after validating that both
	// referenced account codes resolve in scope.
	CreateCategory(ctx context.Context, workspaceID, divisionID string, req dto.CreateTxCategoryRequest, creatorUserID string) (*domain.TxCategory, error)

	// GetCategoryByCode retrieves a category by its code.
	GetCategoryByCode(ctx context.Context, workspaceID, divisionID, code string) (*domain.TxCategory, error)

	// ListCategories retrieves all categories in scope.
	ListCategories(ctx context.Context, workspaceID, divisionID string) ([]domain.TxCategory, error)

	// UpdateCategory updates the account pair or description template.
	UpdateCategory(ctx context.Context, workspaceID, divisionID, code string, req dto.UpdateTxCategoryRequest, updaterUserID string) (*domain.TxCategory, error)
}

// LedgerSvcFacade is the single place money/stock movement is recorded.
type LedgerSvcFacade interface {
	// RecordMovement resolves the category to its debit/credit account pair,
	// builds the immutable transaction record and persists it atomically.
	// Any resolution failure aborts before persistence.
	RecordMovement(ctx context.Context, workspaceID, divisionID, actorUserID string, req dto.RecordMovementRequest) (*domain.Transaction, error)

	// GetTransaction retrieves a transaction, optionally with populated
	// account refs. Transactions outside the given scope are reported as
	// absent.
	GetTransaction(ctx context.Context, workspaceID, divisionID, transactionID string, populate bool) (*domain.Transaction, error)

	// ListTransactions retrieves scope transactions, newest first.
	ListTransactions(ctx context.Context, workspaceID, divisionID string, limit, offset int) ([]domain.Transaction, error)
}
