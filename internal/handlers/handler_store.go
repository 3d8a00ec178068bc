package handlers

import (
	"net/http"

	"github.com/gasdepot/cylinder_ledger_app/internal/apperrors"
	portssvc "github.com/gasdepot/cylinder_ledger_app/internal/core/ports/services"
	"github.com/gasdepot/cylinder_ledger_app/internal/dto"
	"github.com/gasdepot/cylinder_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// StoreHandler handles store requests.
type StoreHandler struct {
	storeService portssvc.StoreSvcFacade
}

// NewStoreHandler creates a new StoreHandler.
func NewStoreHandler(ss portssvc.StoreSvcFacade) *StoreHandler {
	return &StoreHandler{storeService: ss}
}

// ListStores godoc
// @Summary List stores
// @Tags stores
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param divisionID path string true "Division ID"
// @Success 200 {array} dto.StoreResponse
// @Router /workspaces/{workspaceID}/divisions/{divisionID}/stores [get]
func (h *StoreHandler) ListStores(c *gin.Context) {
	stores, err := h.storeService.ListStores(c.Request.Context(), c.Param("divisionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "stores listed", "stores", dto.ToListStoresResponse(stores))
}

// CreateStore godoc
// @Summary Create store
// @Description Creates a store under the division with a zero opening balance. Division admin only.
// @Tags stores
// @Accept json
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param divisionID path string true "Division ID"
// @Param store body dto.CreateStoreRequest true "Store"
// @Success 201 {object} dto.StoreResponse
// @Failure 400 {object} ErrorResponse
// @Router /workspaces/{workspaceID}/divisions/{divisionID}/stores [post]
func (h *StoreHandler) CreateStore(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	var req dto.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	store, err := h.storeService.CreateStore(c.Request.Context(), c.Param("workspaceID"), c.Param("divisionID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "store created", "store", dto.ToStoreResponse(store))
}

// GetStore godoc
// @Summary Get store
// @Tags stores
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param divisionID path string true "Division ID"
// @Param storeID path string true "Store ID"
// @Success 200 {object} dto.StoreResponse
// @Failure 400 {object} ErrorResponse "Store belongs to another division"
// @Failure 404 {object} ErrorResponse
// @Router /workspaces/{workspaceID}/divisions/{divisionID}/stores/{storeID} [get]
func (h *StoreHandler) GetStore(c *gin.Context) {
	scope, ok := middleware.GetStoreScope(c.Request.Context())
	if !ok {
		respondError(c, apperrors.NewInternalServerError("store scope not resolved", nil))
		return
	}
	respondSuccess(c, http.StatusOK, "store retrieved", "store", dto.ToStoreResponse(scope.Store))
}

// UpdateStore godoc
// @Summary Update store
// @Description Updates name or location. Division admin only. The balance is
// never set directly; it only moves through recorded transactions.
// @Tags stores
// @Accept json
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param divisionID path string true "Division ID"
// @Param storeID path string true "Store ID"
// @Param store body dto.UpdateStoreRequest true "Fields"
// @Success 200 {object} dto.StoreResponse
// @Failure 403 {object} ErrorResponse
// @Router /workspaces/{workspaceID}/divisions/{divisionID}/stores/{storeID} [put]
func (h *StoreHandler) UpdateStore(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	store, err := h.storeService.UpdateStore(c.Request.Context(), c.Param("divisionID"), c.Param("storeID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "store updated", "store", dto.ToStoreResponse(store))
}

// DeactivateStore godoc
// @Summary Deactivate store
// @Description Marks the store inactive. History referencing it stays intact.
// @Tags stores
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param divisionID path string true "Division ID"
// @Param storeID path string true "Store ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} ErrorResponse
// @Router /workspaces/{workspaceID}/divisions/{divisionID}/stores/{storeID} [delete]
func (h *StoreHandler) DeactivateStore(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	if err := h.storeService.DeactivateStore(c.Request.Context(), c.Param("divisionID"), c.Param("storeID"), userID); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "store deactivated", "", nil)
}
