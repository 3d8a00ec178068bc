package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo        UserRepositoryFacade
	WorkspaceRepo   WorkspaceRepositoryWithTx
	DivisionRepo    DivisionRepositoryWithTx
	StoreRepo       StoreRepositoryFacade
	AccountRepo     AccountRepositoryFacade
	TxCategoryRepo  TxCategoryRepositoryFacade
	TransactionRepo TransactionRepositoryWithTx
	InviteRepo      InviteRepositoryFacade
}
