package handlers

import (
	"net/http"

	portssvc "github.com/gasdepot/cylinder_ledger_app/internal/core/ports/services"
	"github.com/gasdepot/cylinder_ledger_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles chart-of-accounts requests.
type AccountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(as portssvc.AccountSvcFacade) *AccountHandler {
	return &AccountHandler{accountService: as}
}

// ListAccounts godoc
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param divisionID path string true "Division ID"
// @Success 200 {array} dto.AccountResponse
// @Router /workspaces/{workspaceID}/divisions/{divisionID}/accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.accountService.ListAccounts(c.Request.Context(), c.Param("workspaceID"), c.Param("divisionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "accounts listed", "accounts", dto.ToListAccountsResponse(accounts))
}

// CreateAccount godoc
// @Summary Create account
// @Description Creates a chart-of-accounts entry with a scope-unique code. Division admin only.
// @Tags accounts
// @Accept json
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param divisionID path string true "Division ID"
// @Param account body dto.CreateAccountRequest true "Account"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Code already used in this scope"
// @Router /workspaces/{workspaceID}/divisions/{divisionID}/accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), c.Param("workspaceID"), c.Param("divisionID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "account created", "account", dto.ToAccountResponse(account))
}

// GetAccount godoc
// @Summary Get account
// @Tags accounts
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param divisionID path string true "Division ID"
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} ErrorResponse
// @Router /workspaces/{workspaceID}/divisions/{divisionID}/accounts/{accountID} [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
	account, err := h.accountService.GetAccount(c.Request.Context(), c.Param("workspaceID"), c.Param("divisionID"), c.Param("accountID"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "account retrieved", "account", dto.ToAccountResponse(account))
}

// UpdateAccount godoc
// @Summary Update account
// @Description Updates name or description. The code and type are immutable.
// @Tags accounts
// @Accept json
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param divisionID path string true "Division ID"
// @Param accountID path string true "Account ID"
// @Param account body dto.UpdateAccountRequest true "Fields"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} ErrorResponse
// @Router /workspaces/{workspaceID}/divisions/{divisionID}/accounts/{accountID} [put]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), c.Param("workspaceID"), c.Param("divisionID"), c.Param("accountID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "account updated", "account", dto.ToAccountResponse(account))
}

// DeactivateAccount godoc
// @Summary Deactivate account
// @Description Marks the account inactive so new transactions stop resolving
// to it. Historical transactions keep their references.
// @Tags accounts
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param divisionID path string true "Division ID"
// @Param accountID path string true "Account ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} ErrorResponse
// @Router /workspaces/{workspaceID}/divisions/{divisionID}/accounts/{accountID} [delete]
func (h *AccountHandler) DeactivateAccount(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	if err := h.accountService.DeactivateAccount(c.Request.Context(), c.Param("workspaceID"), c.Param("divisionID"), c.Param("accountID"), userID); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "account deactivated", "", nil)
}
