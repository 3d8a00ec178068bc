package handlers

import (
	"net/http"

	"github.com/gasdepot/cylinder_ledger_app/internal/apperrors"
	portssvc "github.com/gasdepot/cylinder_ledger_app/internal/core/ports/services"
	"github.com/gasdepot/cylinder_ledger_app/internal/dto"
	"github.com/gasdepot/cylinder_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// DivisionHandler handles division and division membership requests.
type DivisionHandler struct {
	divisionService portssvc.DivisionSvcFacade
}

// NewDivisionHandler creates a new DivisionHandler.
func NewDivisionHandler(ds portssvc.DivisionSvcFacade) *DivisionHandler {
	return &DivisionHandler{divisionService: ds}
}

// ListDivisions godoc
// @Summary List divisions
// @Tags divisions
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Success 200 {array} dto.DivisionResponse
// @Router /workspaces/{workspaceID}/divisions [get]
func (h *DivisionHandler) ListDivisions(c *gin.Context) {
	divisions, err := h.divisionService.ListDivisions(c.Request.Context(), c.Param("workspaceID"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "divisions listed", "divisions", dto.ToListDivisionsResponse(divisions))
}

// CreateDivision godoc
// @Summary Create division
// @Description Creates a division under the workspace. Workspace admin only.
// @Tags divisions
// @Accept json
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param division body dto.CreateDivisionRequest true "Division"
// @Success 201 {object} dto.DivisionResponse
// @Failure 400 {object} ErrorResponse
// @Router /workspaces/{workspaceID}/divisions [post]
func (h *DivisionHandler) CreateDivision(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	var req dto.CreateDivisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	division, err := h.divisionService.CreateDivision(c.Request.Context(), c.Param("workspaceID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "division created", "division", dto.ToDivisionResponse(division))
}

// GetDivision godoc
// @Summary Get division
// @Tags divisions
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param divisionID path string true "Division ID"
// @Success 200 {object} dto.DivisionResponse
// @Failure 400 {object} ErrorResponse "Division belongs to another workspace"
// @Failure 404 {object} ErrorResponse
// @Router /workspaces/{workspaceID}/divisions/{divisionID} [get]
func (h *DivisionHandler) GetDivision(c *gin.Context) {
	scope, ok := middleware.GetDivisionScope(c.Request.Context())
	if !ok {
		respondError(c, apperrors.NewInternalServerError("division scope not resolved", nil))
		return
	}
	respondSuccess(c, http.StatusOK, "division retrieved", "division", dto.ToDivisionResponse(scope.Division))
}

// UpdateDivision godoc
// @Summary Update division
// @Description Updates name or description. Division admin only.
// @Tags divisions
// @Accept json
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param divisionID path string true "Division ID"
// @Param division body dto.UpdateDivisionRequest true "Fields"
// @Success 200 {object} dto.DivisionResponse
// @Failure 403 {object} ErrorResponse
// @Router /workspaces/{workspaceID}/divisions/{divisionID} [put]
func (h *DivisionHandler) UpdateDivision(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateDivisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	division, err := h.divisionService.UpdateDivision(c.Request.Context(), c.Param("workspaceID"), c.Param("divisionID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "division updated", "division", dto.ToDivisionResponse(division))
}

// ListDivisionMembers godoc
// @Summary List division members
// @Tags divisions
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param divisionID path string true "Division ID"
// @Success 200 {array} dto.DivisionMembershipResponse
// @Router /workspaces/{workspaceID}/divisions/{divisionID}/members [get]
func (h *DivisionHandler) ListDivisionMembers(c *gin.Context) {
	members, err := h.divisionService.ListDivisionMembers(c.Request.Context(), c.Param("divisionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	list := make([]dto.DivisionMembershipResponse, len(members))
	for i := range members {
		list[i] = dto.ToDivisionMembershipResponse(&members[i])
	}
	respondSuccess(c, http.StatusOK, "members listed", "members", list)
}

// AddDivisionMember godoc
// @Summary Add division member
// @Description Adds a workspace user to the division with a role set. Division admin only.
// @Tags divisions
// @Accept json
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param divisionID path string true "Division ID"
// @Param member body dto.AddDivisionMemberRequest true "Member"
// @Success 201 {object} dto.DivisionMembershipResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /workspaces/{workspaceID}/divisions/{divisionID}/members [post]
func (h *DivisionHandler) AddDivisionMember(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	var req dto.AddDivisionMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	membership, err := h.divisionService.AddDivisionMember(c.Request.Context(), c.Param("workspaceID"), c.Param("divisionID"), req.UserID, req.Roles, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "member added", "membership", dto.ToDivisionMembershipResponse(membership))
}

// UpdateDivisionMemberRoles godoc
// @Summary Update a division member's roles
// @Description Replaces the member's role set. Division admin only.
// @Tags divisions
// @Accept json
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param divisionID path string true "Division ID"
// @Param userID path string true "User ID"
// @Param roles body dto.UpdateMemberRolesRequest true "Roles"
// @Success 200 {object} dto.DivisionMembershipResponse
// @Failure 404 {object} ErrorResponse
// @Router /workspaces/{workspaceID}/divisions/{divisionID}/members/{userID}/roles [put]
func (h *DivisionHandler) UpdateDivisionMemberRoles(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateMemberRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	membership, err := h.divisionService.UpdateDivisionMemberRoles(c.Request.Context(), c.Param("workspaceID"), c.Param("divisionID"), c.Param("userID"), req.Roles, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "member roles updated", "membership", dto.ToDivisionMembershipResponse(membership))
}

// RemoveDivisionMember godoc
// @Summary Remove division member
// @Description Marks the membership removed. The row stays for audit.
// @Tags divisions
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param divisionID path string true "Division ID"
// @Param userID path string true "User ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} ErrorResponse
// @Router /workspaces/{workspaceID}/divisions/{divisionID}/members/{userID} [delete]
func (h *DivisionHandler) RemoveDivisionMember(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	if err := h.divisionService.RemoveDivisionMember(c.Request.Context(), c.Param("workspaceID"), c.Param("divisionID"), c.Param("userID"), userID); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "member removed", "", nil)
}
