package middleware

import (
	"context"

	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
)

const (
	authInfoKey       = contextKey("authInfo")
	workspaceScopeKey = contextKey("workspaceScope")
	divisionScopeKey  = contextKey("divisionScope")
	storeScopeKey     = contextKey("storeScope")
)

// AuthInfo is the authenticated identity attached to a request. It is an
// immutable value threaded through the request context; handlers and deeper
// scope levels read it rather than re-verifying the token.
type AuthInfo struct {
	UserID string
	Role   domain.GlobalRole
}

// WorkspaceScope is the resolved workspace-level authority of a request.
// Membership is nil when the super bypass applied.
type WorkspaceScope struct {
	Workspace  *domain.Workspace
	Membership *domain.Membership
}

// IsAdmin reports whether the request holds workspace-admin authority.
// Super-bypassed requests count as admin.
func (s *WorkspaceScope) IsAdmin() bool {
	return s.Membership == nil || s.Membership.IsAdmin()
}

// DivisionScope is the resolved division-level authority of a request.
// Membership is nil when a bypass (super or workspace admin) applied.
type DivisionScope struct {
	Division   *domain.Division
	Membership *domain.DivisionMembership
}

// StoreScope is the resolved store of a request.
type StoreScope struct {
	Store *domain.Store
}

func withAuthInfo(ctx context.Context, info AuthInfo) context.Context {
	return context.WithValue(ctx, authInfoKey, info)
}

// GetAuthInfo retrieves the authenticated identity from the context.
func GetAuthInfo(ctx context.Context) (AuthInfo, bool) {
	info, ok := ctx.Value(authInfoKey).(AuthInfo)
	return info, ok
}

// GetUserIDFromContext retrieves the authenticated user ID from the context.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	info, ok := GetAuthInfo(ctx)
	if !ok {
		return "", false
	}
	return info.UserID, true
}

func withWorkspaceScope(ctx context.Context, scope WorkspaceScope) context.Context {
	return context.WithValue(ctx, workspaceScopeKey, scope)
}

// GetWorkspaceScope retrieves the resolved workspace scope from the context.
func GetWorkspaceScope(ctx context.Context) (WorkspaceScope, bool) {
	scope, ok := ctx.Value(workspaceScopeKey).(WorkspaceScope)
	return scope, ok
}

func withDivisionScope(ctx context.Context, scope DivisionScope) context.Context {
	return context.WithValue(ctx, divisionScopeKey, scope)
}

// GetDivisionScope retrieves the resolved division scope from the context.
func GetDivisionScope(ctx context.Context) (DivisionScope, bool) {
	scope, ok := ctx.Value(divisionScopeKey).(DivisionScope)
	return scope, ok
}

func withStoreScope(ctx context.Context, scope StoreScope) context.Context {
	return context.WithValue(ctx, storeScopeKey, scope)
}

// GetStoreScope retrieves the resolved store scope from the context.
func GetStoreScope(ctx context.Context) (StoreScope, bool) {
	scope, ok := ctx.Value(storeScopeKey).(StoreScope)
	return scope, ok
}
