package handlers

import (
	"net/http"

	"github.com/gasdepot/cylinder_ledger_app/internal/apperrors"
	portssvc "github.com/gasdepot/cylinder_ledger_app/internal/core/ports/services"
	"github.com/gasdepot/cylinder_ledger_app/internal/dto"
	"github.com/gasdepot/cylinder_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// WorkspaceHandler handles workspace, membership and invite requests.
type WorkspaceHandler struct {
	workspaceService portssvc.WorkspaceSvcFacade
}

// NewWorkspaceHandler creates a new WorkspaceHandler.
func NewWorkspaceHandler(ws portssvc.WorkspaceSvcFacade) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: ws}
}

// registerInviteRoutes sets up the token-addressed invite response routes.
// These sit outside the workspace scope chain: the responder is not a
// member yet.
func registerInviteRoutes(rg *gin.RouterGroup, workspaceService portssvc.WorkspaceSvcFacade) {
	h := NewWorkspaceHandler(workspaceService)

	invites := rg.Group("/invites")
	{
		invites.POST("/:token/accept", h.AcceptInvite)
		invites.POST("/:token/decline", h.DeclineInvite)
	}
}

func authedUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c.Request.Context())
	if !ok {
		respondError(c, apperrors.NewUnauthenticatedError("authentication required", nil))
		return "", false
	}
	return userID, true
}

// CreateWorkspace godoc
// @Summary Create workspace
// @Description Creates a workspace; the creator becomes its first admin member.
// @Tags workspaces
// @Accept json
// @Produce json
// @Param workspace body dto.CreateWorkspaceRequest true "Workspace"
// @Success 201 {object} dto.WorkspaceResponse
// @Failure 400 {object} ErrorResponse
// @Router /workspaces [post]
func (h *WorkspaceHandler) CreateWorkspace(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	var req dto.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	workspace, err := h.workspaceService.CreateWorkspace(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "workspace created", "workspace", dto.ToWorkspaceResponse(workspace))
}

// ListMyWorkspaces godoc
// @Summary List my workspaces
// @Description Lists workspaces the caller is an active member of.
// @Tags workspaces
// @Produce json
// @Success 200 {object} dto.ListWorkspacesResponse
// @Router /workspaces [get]
func (h *WorkspaceHandler) ListMyWorkspaces(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	workspaces, err := h.workspaceService.ListUserWorkspaces(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "workspaces listed", "workspaces", dto.ToListWorkspacesResponse(workspaces).Workspaces)
}

// GetWorkspace godoc
// @Summary Get workspace
// @Tags workspaces
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /workspaces/{workspaceID} [get]
func (h *WorkspaceHandler) GetWorkspace(c *gin.Context) {
	// The scope guard already loaded and authorized the workspace.
	scope, ok := middleware.GetWorkspaceScope(c.Request.Context())
	if !ok {
		respondError(c, apperrors.NewInternalServerError("workspace scope not resolved", nil))
		return
	}
	respondSuccess(c, http.StatusOK, "workspace retrieved", "workspace", dto.ToWorkspaceResponse(scope.Workspace))
}

// UpdateWorkspace godoc
// @Summary Update workspace
// @Description Updates name, description or the allowed role set. Admin only.
// @Tags workspaces
// @Accept json
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param workspace body dto.UpdateWorkspaceRequest true "Fields"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 403 {object} ErrorResponse
// @Router /workspaces/{workspaceID} [put]
func (h *WorkspaceHandler) UpdateWorkspace(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	workspace, err := h.workspaceService.UpdateWorkspace(c.Request.Context(), c.Param("workspaceID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "workspace updated", "workspace", dto.ToWorkspaceResponse(workspace))
}

// ListMembers godoc
// @Summary List workspace members
// @Tags workspaces
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Success 200 {array} dto.MembershipResponse
// @Router /workspaces/{workspaceID}/members [get]
func (h *WorkspaceHandler) ListMembers(c *gin.Context) {
	members, err := h.workspaceService.ListWorkspaceMembers(c.Request.Context(), c.Param("workspaceID"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "members listed", "members", dto.ToListMembershipsResponse(members))
}

// AddMember godoc
// @Summary Add workspace member
// @Description Adds a user with a role set; re-adding updates the existing membership. Admin only.
// @Tags workspaces
// @Accept json
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param member body dto.AddMemberRequest true "Member"
// @Success 201 {object} dto.MembershipResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /workspaces/{workspaceID}/members [post]
func (h *WorkspaceHandler) AddMember(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	membership, err := h.workspaceService.AddMember(c.Request.Context(), c.Param("workspaceID"), req.UserID, req.Roles, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "member added", "membership", dto.ToMembershipResponse(membership))
}

// UpdateMemberRoles godoc
// @Summary Update a member's roles
// @Description Replaces the member's role set. Admin only.
// @Tags workspaces
// @Accept json
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param userID path string true "User ID"
// @Param roles body dto.UpdateMemberRolesRequest true "Roles"
// @Success 200 {object} dto.MembershipResponse
// @Failure 404 {object} ErrorResponse
// @Router /workspaces/{workspaceID}/members/{userID}/roles [put]
func (h *WorkspaceHandler) UpdateMemberRoles(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateMemberRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	membership, err := h.workspaceService.UpdateMemberRoles(c.Request.Context(), c.Param("workspaceID"), c.Param("userID"), req.Roles, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "member roles updated", "membership", dto.ToMembershipResponse(membership))
}

// RemoveMember godoc
// @Summary Remove workspace member
// @Tags workspaces
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param userID path string true "User ID"
// @Success 200 {object} map[string]any
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /workspaces/{workspaceID}/members/{userID} [delete]
func (h *WorkspaceHandler) RemoveMember(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	if err := h.workspaceService.RemoveMember(c.Request.Context(), c.Param("workspaceID"), c.Param("userID"), userID); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "member removed", "", nil)
}

// CreateInvite godoc
// @Summary Create workspace invite
// @Description Issues a token-bearing invite. The token appears only in this response.
// @Tags invites
// @Accept json
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Param invite body dto.CreateInviteRequest true "Invite"
// @Success 201 {object} dto.InviteResponse
// @Failure 400 {object} ErrorResponse
// @Router /workspaces/{workspaceID}/invites [post]
func (h *WorkspaceHandler) CreateInvite(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	var req dto.CreateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	invite, err := h.workspaceService.CreateInvite(c.Request.Context(), c.Param("workspaceID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "invite created", "invite", dto.ToInviteResponse(invite, true))
}

// ListInvites godoc
// @Summary List workspace invites
// @Tags invites
// @Produce json
// @Param workspaceID path string true "Workspace ID"
// @Success 200 {array} dto.InviteResponse
// @Router /workspaces/{workspaceID}/invites [get]
func (h *WorkspaceHandler) ListInvites(c *gin.Context) {
	invites, err := h.workspaceService.ListInvites(c.Request.Context(), c.Param("workspaceID"))
	if err != nil {
		respondError(c, err)
		return
	}
	list := make([]dto.InviteResponse, len(invites))
	for i := range invites {
		list[i] = dto.ToInviteResponse(&invites[i], false)
	}
	respondSuccess(c, http.StatusOK, "invites listed", "invites", list)
}

// AcceptInvite godoc
// @Summary Accept an invite
// @Description Turns an open, unexpired invite into an active membership for the caller.
// @Tags invites
// @Produce json
// @Param token path string true "Invite token"
// @Success 200 {object} dto.MembershipResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /invites/{token}/accept [post]
func (h *WorkspaceHandler) AcceptInvite(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	membership, err := h.workspaceService.AcceptInvite(c.Request.Context(), c.Param("token"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "invite accepted", "membership", dto.ToMembershipResponse(membership))
}

// DeclineInvite godoc
// @Summary Decline an invite
// @Tags invites
// @Produce json
// @Param token path string true "Invite token"
// @Success 200 {object} map[string]any
// @Failure 409 {object} ErrorResponse
// @Router /invites/{token}/decline [post]
func (h *WorkspaceHandler) DeclineInvite(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}
	if err := h.workspaceService.DeclineInvite(c.Request.Context(), c.Param("token"), userID); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "invite declined", "", nil)
}
