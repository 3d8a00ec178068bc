package handlers

import (
	"net/http"
	"strconv"

	"github.com/gasdepot/cylinder_ledger_app/internal/apperrors"
	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
	portssvc "github.com/gasdepot/cylinder_ledger_app/internal/core/ports/services"
	"github.com/gasdepot/cylinder_ledger_app/internal/dto"
	"github.com/gasdepot/cylinder_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// UserHandler handles user profile and administration requests.
type UserHandler struct {
	userService portssvc.UserSvcFacade
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us portssvc.UserSvcFacade) *UserHandler {
	return &UserHandler{userService: us}
}

// registerUserRoutes sets up the routes for user management.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := NewUserHandler(userService)

	users := rg.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.GET("/me", h.GetMe)
		users.GET("/:userID", h.GetUser)
		users.PUT("/:userID", h.UpdateUser)
		users.DELETE("/:userID", h.DeleteUser)
	}
}

// requireStaff rejects callers below the staff tier.
func requireStaff(c *gin.Context) (middleware.AuthInfo, bool) {
	info, ok := middleware.GetAuthInfo(c.Request.Context())
	if !ok {
		respondError(c, apperrors.NewUnauthenticatedError("authentication required", nil))
		return info, false
	}
	if !info.Role.AtLeast(domain.GlobalRoleStaff) {
		respondError(c, apperrors.NewForbiddenError("staff access required", nil))
		return info, false
	}
	return info, true
}

// ListUsers godoc
// @Summary List users
// @Description Lists users with pagination. Staff only.
// @Tags users
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} dto.ListUsersResponse
// @Failure 403 {object} ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	if _, ok := requireStaff(c); !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	users, err := h.userService.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "users listed", "users", dto.ToListUsersResponse(users).Users)
}

// GetMe godoc
// @Summary Get own profile
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c.Request.Context())
	if !ok {
		respondError(c, apperrors.NewUnauthenticatedError("authentication required", nil))
		return
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "user retrieved", "user", dto.ToUserResponse(user))
}

// GetUser godoc
// @Summary Get a user
// @Description Retrieves a user by ID. Staff only unless requesting yourself.
// @Tags users
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{userID} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	targetID := c.Param("userID")
	info, ok := middleware.GetAuthInfo(c.Request.Context())
	if !ok {
		respondError(c, apperrors.NewUnauthenticatedError("authentication required", nil))
		return
	}
	if targetID != info.UserID && !info.Role.AtLeast(domain.GlobalRoleStaff) {
		respondError(c, apperrors.NewForbiddenError("staff access required", nil))
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), targetID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "user retrieved", "user", dto.ToUserResponse(user))
}

// UpdateUser godoc
// @Summary Update a user profile
// @Description Users update their own profile; staff may update anyone.
// @Tags users
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param update body dto.UpdateUserRequest true "Profile fields"
// @Success 200 {object} dto.UserResponse
// @Failure 403 {object} ErrorResponse
// @Router /users/{userID} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	targetID := c.Param("userID")
	info, ok := middleware.GetAuthInfo(c.Request.Context())
	if !ok {
		respondError(c, apperrors.NewUnauthenticatedError("authentication required", nil))
		return
	}
	if targetID != info.UserID && !info.Role.AtLeast(domain.GlobalRoleStaff) {
		respondError(c, apperrors.NewForbiddenError("cannot update another user's profile", nil))
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), targetID, req, info.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "user updated", "user", dto.ToUserResponse(user))
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Soft deletes a user. Staff only; self-deletion is rejected.
// @Tags users
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} map[string]any
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /users/{userID} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	info, ok := requireStaff(c)
	if !ok {
		return
	}
	if err := h.userService.DeleteUser(c.Request.Context(), c.Param("userID"), info.UserID, info.Role); err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "user deleted", "", nil)
}
