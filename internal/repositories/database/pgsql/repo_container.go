package pgsql

import (
	portsrepo "github.com/gasdepot/cylinder_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	workspaceRepo := newPgxWorkspaceRepository(dbPool)
	divisionRepo := newPgxDivisionRepository(dbPool)
	storeRepo := newPgxStoreRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	txCategoryRepo := newPgxTxCategoryRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, accountRepo)
	inviteRepo := newPgxInviteRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:        userRepo,
		WorkspaceRepo:   workspaceRepo,
		DivisionRepo:    divisionRepo,
		StoreRepo:       storeRepo,
		AccountRepo:     accountRepo,
		TxCategoryRepo:  txCategoryRepo,
		TransactionRepo: transactionRepo,
		InviteRepo:      inviteRepo,
	}
}
