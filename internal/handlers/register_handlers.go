package handlers

import (
	"github.com/gasdepot/cylinder_ledger_app/cmd/docs"
	portssvc "github.com/gasdepot/cylinder_ledger_app/internal/core/ports/services"
	"github.com/gasdepot/cylinder_ledger_app/internal/middleware"
	"github.com/gasdepot/cylinder_ledger_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	includeErrorStack = !cfg.IsProduction

	// Add health check route
	r.GET("/health", healthCheck)

	// Register public authentication routes
	registerAuthRoutes(r, cfg, services)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(services.TokenService))

	registerUserRoutes(v1, services.User)
	registerInviteRoutes(v1, services.Workspace)
	registerWorkspaceRoutes(v1, cfg, services)
}

// registerWorkspaceRoutes wires the scope chain: every route below a
// workspace passes the workspace guard, every route below a division
// additionally passes the division guard, and store routes pass all three.
func registerWorkspaceRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	wh := NewWorkspaceHandler(services.Workspace)
	dh := NewDivisionHandler(services.Division)
	sh := NewStoreHandler(services.Store)
	ah := NewAccountHandler(services.Account)
	ch := NewTxCategoryHandler(services.TxCategory)
	th := NewTransactionHandler(services.Ledger)

	workspaces := rg.Group("/workspaces")
	{
		workspaces.POST("", wh.CreateWorkspace)
		workspaces.GET("", wh.ListMyWorkspaces)
	}

	// Any active member may read the workspace; mutation requires admin.
	ws := workspaces.Group("/:workspaceID", middleware.WorkspaceScopeGuard(services.Workspace))
	wsAdmin := workspaces.Group("/:workspaceID", middleware.WorkspaceScopeGuard(services.Workspace, "admin"))
	{
		ws.GET("", wh.GetWorkspace)
		wsAdmin.PUT("", wh.UpdateWorkspace)

		ws.GET("/members", wh.ListMembers)
		wsAdmin.POST("/members", wh.AddMember)
		wsAdmin.PUT("/members/:userID/roles", wh.UpdateMemberRoles)
		wsAdmin.DELETE("/members/:userID", wh.RemoveMember)

		wsAdmin.POST("/invites", wh.CreateInvite)
		wsAdmin.GET("/invites", wh.ListInvites)

		ws.GET("/divisions", dh.ListDivisions)
		wsAdmin.POST("/divisions", dh.CreateDivision)
	}

	div := ws.Group("/divisions/:divisionID", middleware.DivisionScopeGuard(services.Division))
	divAdmin := ws.Group("/divisions/:divisionID", middleware.DivisionScopeGuard(services.Division, "admin"))
	{
		div.GET("", dh.GetDivision)
		divAdmin.PUT("", dh.UpdateDivision)

		div.GET("/members", dh.ListDivisionMembers)
		divAdmin.POST("/members", dh.AddDivisionMember)
		divAdmin.PUT("/members/:userID/roles", dh.UpdateDivisionMemberRoles)
		divAdmin.DELETE("/members/:userID", dh.RemoveDivisionMember)

		div.GET("/stores", sh.ListStores)
		divAdmin.POST("/stores", sh.CreateStore)

		div.GET("/accounts", ah.ListAccounts)
		divAdmin.POST("/accounts", ah.CreateAccount)
		div.GET("/accounts/:accountID", ah.GetAccount)
		divAdmin.PUT("/accounts/:accountID", ah.UpdateAccount)
		divAdmin.DELETE("/accounts/:accountID", ah.DeactivateAccount)

		div.GET("/categories", ch.ListCategories)
		divAdmin.POST("/categories", ch.CreateCategory)
		div.GET("/categories/:code", ch.GetCategory)
		divAdmin.PUT("/categories/:code", ch.UpdateCategory)

		div.POST("/transactions", th.RecordMovement)
		div.GET("/transactions", th.ListTransactions)
		div.GET("/transactions/:transactionID", th.GetTransaction)
	}

	store := div.Group("/stores/:storeID", middleware.StoreScopeGuard(services.Store))
	storeAdmin := divAdmin.Group("/stores/:storeID", middleware.StoreScopeGuard(services.Store))
	{
		store.GET("", sh.GetStore)
		storeAdmin.PUT("", sh.UpdateStore)
		storeAdmin.DELETE("", sh.DeactivateStore)
	}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
