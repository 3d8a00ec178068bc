package middleware

import (
	"errors"

	"github.com/gasdepot/cylinder_ledger_app/internal/apperrors"
	portssvc "github.com/gasdepot/cylinder_ledger_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// The scope chain resolves a request's authority level by level:
// workspace, then division, then store. Each guard loads the resource,
// applies the super bypass, resolves the caller's active membership, checks
// roles, and attaches an immutable scope value to the request context for
// the next guard and the handler. Existence is always checked before
// membership, so an outsider probing a real ID gets 403, not 404.

// WorkspaceScopeGuard authorizes the request against the workspace named in
// the URL. When requiredRoles is non-empty, the member must hold one of
// them; workspace admins always pass.
func WorkspaceScopeGuard(workspaceSvc portssvc.WorkspaceSvcFacade, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		info, ok := GetAuthInfo(ctx)
		if !ok {
			abortWithAppError(c, apperrors.NewUnauthenticatedError("Authentication required", nil))
			return
		}

		workspaceID := c.Param("workspaceID")
		workspace, err := workspaceSvc.FindWorkspaceByID(ctx, workspaceID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				abortWithAppError(c, apperrors.NewNotFoundError("Workspace not found", err))
				return
			}
			abortWithAppError(c, apperrors.NewInternalServerError("Failed to load workspace", err))
			return
		}

		if info.Role.CanBypassScopes() {
			c.Request = c.Request.WithContext(withWorkspaceScope(ctx, WorkspaceScope{Workspace: workspace}))
			c.Next()
			return
		}

		membership, err := workspaceSvc.ResolveMembership(ctx, info.UserID, workspaceID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				abortWithAppError(c, apperrors.NewForbiddenError("You are not a member of this workspace", err))
				return
			}
			abortWithAppError(c, apperrors.NewInternalServerError("Failed to resolve workspace membership", err))
			return
		}

		if len(requiredRoles) > 0 && !membership.IsAdmin() && !membership.HasAnyRole(requiredRoles...) {
			abortWithAppError(c, apperrors.NewForbiddenError("Insufficient role privileges in this workspace", nil))
			return
		}

		c.Request = c.Request.WithContext(withWorkspaceScope(ctx, WorkspaceScope{Workspace: workspace, Membership: membership}))
		c.Next()
	}
}

// DivisionScopeGuard authorizes the request against the division named in
// the URL. Must run after WorkspaceScopeGuard. Workspace admins bypass
// division membership checks entirely.
func DivisionScopeGuard(divisionSvc portssvc.DivisionSvcFacade, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		info, ok := GetAuthInfo(ctx)
		if !ok {
			abortWithAppError(c, apperrors.NewUnauthenticatedError("Authentication required", nil))
			return
		}
		wsScope, ok := GetWorkspaceScope(ctx)
		if !ok {
			abortWithAppError(c, apperrors.NewInternalServerError("Workspace scope not resolved", nil))
			return
		}

		divisionID := c.Param("divisionID")
		division, err := divisionSvc.FindDivisionInWorkspace(ctx, wsScope.Workspace.WorkspaceID, divisionID)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrNotFound):
				abortWithAppError(c, apperrors.NewNotFoundError("Division not found", err))
			case errors.Is(err, apperrors.ErrValidation):
				abortWithAppError(c, apperrors.NewBadRequestError("Division does not belong to this workspace", err))
			default:
				abortWithAppError(c, apperrors.NewInternalServerError("Failed to load division", err))
			}
			return
		}

		if info.Role.CanBypassScopes() || wsScope.IsAdmin() {
			c.Request = c.Request.WithContext(withDivisionScope(ctx, DivisionScope{Division: division}))
			c.Next()
			return
		}

		membership, err := divisionSvc.ResolveDivisionMembership(ctx, info.UserID, divisionID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				abortWithAppError(c, apperrors.NewForbiddenError("You are not a member of this division", err))
				return
			}
			abortWithAppError(c, apperrors.NewInternalServerError("Failed to resolve division membership", err))
			return
		}

		if len(requiredRoles) > 0 && !membership.IsAdmin() && !membership.HasAnyRole(requiredRoles...) {
			abortWithAppError(c, apperrors.NewForbiddenError("Insufficient role privileges in this division", nil))
			return
		}

		c.Request = c.Request.WithContext(withDivisionScope(ctx, DivisionScope{Division: division, Membership: membership}))
		c.Next()
	}
}

// StoreScopeGuard resolves the store named in the URL within the already
// authorized division. Must run after DivisionScopeGuard. Store access
// carries no membership of its own; authority comes from the division.
func StoreScopeGuard(storeSvc portssvc.StoreSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		divScope, ok := GetDivisionScope(ctx)
		if !ok {
			abortWithAppError(c, apperrors.NewInternalServerError("Division scope not resolved", nil))
			return
		}

		storeID := c.Param("storeID")
		store, err := storeSvc.FindStoreInDivision(ctx, divScope.Division.DivisionID, storeID)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrNotFound):
				abortWithAppError(c, apperrors.NewNotFoundError("Store not found", err))
			case errors.Is(err, apperrors.ErrValidation):
				abortWithAppError(c, apperrors.NewBadRequestError("Store does not belong to this division", err))
			default:
				abortWithAppError(c, apperrors.NewInternalServerError("Failed to load store", err))
			}
			return
		}

		c.Request = c.Request.WithContext(withStoreScope(ctx, StoreScope{Store: store}))
		c.Next()
	}
}
