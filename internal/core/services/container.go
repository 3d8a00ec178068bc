package services

import (
	portsrepo "github.com/gasdepot/cylinder_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/gasdepot/cylinder_ledger_app/internal/core/ports/services"
	"github.com/gasdepot/cylinder_ledger_app/internal/platform/config"
)

// NewServiceContainer wires every service with its repository dependencies.
// This is the composition root consulted by route registration.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	userSvc := NewUserService(repos.UserRepo)
	workspaceSvc := NewWorkspaceService(repos.WorkspaceRepo, repos.UserRepo, repos.InviteRepo, cfg)
	divisionSvc := NewDivisionService(repos.DivisionRepo, repos.UserRepo)
	storeSvc := NewStoreService(repos.StoreRepo)
	accountSvc := NewAccountService(repos.AccountRepo)
	txCategorySvc := NewTxCategoryService(repos.TxCategoryRepo, repos.AccountRepo)
	ledgerSvc := NewLedgerService(repos.TransactionRepo, repos.TxCategoryRepo, repos.AccountRepo, repos.StoreRepo)
	tokenSvc := NewTokenService(cfg, userSvc)
	googleOAuthSvc := NewGoogleOAuthHandlerService(cfg)

	return &portssvc.ServiceContainer{
		User:               userSvc,
		Workspace:          workspaceSvc,
		Division:           divisionSvc,
		Store:              storeSvc,
		Account:            accountSvc,
		TxCategory:         txCategorySvc,
		Ledger:             ledgerSvc,
		TokenService:       tokenSvc,
		GoogleOAuthHandler: googleOAuthSvc,
	}
}
