package handlers

import (
	"net/http"

	portssvc "github.com/gasdepot/cylinder_ledger_app/internal/core/ports/services"
	"github.com/gasdepot/cylinder_ledger_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// TxCategoryHandler handles transaction category requests.
type TxCategoryHandler struct {
	categoryService portssvc.TxCategorySvcFacade
}

// NewTxCategoryHandler creates a new TxCategoryHandler.
func NewTxCategoryHandler(cs portssvc.TxCategorySvcFacade) *TxCategoryHandler {
	return &TxCategoryHandler{categoryService: cs}
}

// ListCategories godoc
// @Summary List transaction categories
// @Tags categories
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param divisionID path string true "Division ID"
// @Success 200 {array} dto.TxCategoryResponse
// @Router /workspaces/{workspaceID}/divisions/{divisionID}/categories [get]
func (h *TxCategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context(), c.Param("workspaceID"), c.Param("divisionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "categories listed", "categories", dto.ToListTxCategoriesResponse(categories))
}

// CreateCategory godoc
// @Summary Create transaction category
// @Description Creates a category mapping a code to a debit/credit account
// pair. Both account codes must resolve to active accounts in this scope.
// @Tags categories
// @Accept json
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param divisionID path string true "Division ID"
// @Param category body dto.CreateTxCategoryRequest true "Category"
// @Success 201 {object} dto.TxCategoryResponse
// @Failure 400 {object} ErrorResponse "An account code does not resolve"
// @Failure 409 {object} ErrorResponse
// @Router /workspaces/{workspaceID}/divisions/{divisionID}/categories [post]
func (h *TxCategoryHandler) CreateCategory(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	var req dto.CreateTxCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), c.Param("workspaceID"), c.Param("divisionID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "category created", "category", dto.ToTxCategoryResponse(category))
}

// GetCategory godoc
// @Summary Get transaction category
// @Tags categories
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param divisionID path string true "Division ID"
// @Param code path string true "Category code"
// @Success 200 {object} dto.TxCategoryResponse
// @Failure 404 {object} ErrorResponse
// @Router /workspaces/{workspaceID}/divisions/{divisionID}/categories/{code} [get]
func (h *TxCategoryHandler) GetCategory(c *gin.Context) {
	category, err := h.categoryService.GetCategoryByCode(c.Request.Context(), c.Param("workspaceID"), c.Param("divisionID"), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "category retrieved", "category", dto.ToTxCategoryResponse(category))
}

// UpdateCategory godoc
// @Summary Update transaction category
// @Description Updates the account pair or description template. Changed
// account codes are re-validated against the scope's chart of accounts.
// @Tags categories
// @Accept json
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param divisionID path string true "Division ID"
// @Param code path string true "Category code"
// @Param category body dto.UpdateTxCategoryRequest true "Fields"
// @Success 200 {object} dto.TxCategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /workspaces/{workspaceID}/divisions/{divisionID}/categories/{code} [put]
func (h *TxCategoryHandler) UpdateCategory(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateTxCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), c.Param("workspaceID"), c.Param("divisionID"), c.Param("code"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "category updated", "category", dto.ToTxCategoryResponse(category))
}
