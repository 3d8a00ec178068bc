package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gasdepot/cylinder_ledger_app/internal/apperrors"
	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
	portssvc "github.com/gasdepot/cylinder_ledger_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// stubWorkspaceSvc overrides only the facade methods the workspace guard
// touches. Any other call panics through the embedded nil interface.
type stubWorkspaceSvc struct {
	portssvc.WorkspaceSvcFacade
	workspace     *domain.Workspace
	workspaceErr  error
	membership    *domain.Membership
	membershipErr error
	resolveCalls  int
}

func (s *stubWorkspaceSvc) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	if s.workspaceErr != nil {
		return nil, s.workspaceErr
	}
	return s.workspace, nil
}

func (s *stubWorkspaceSvc) ResolveMembership(ctx context.Context, userID, workspaceID string) (*domain.Membership, error) {
	s.resolveCalls++
	if s.membershipErr != nil {
		return nil, s.membershipErr
	}
	return s.membership, nil
}

type stubDivisionSvc struct {
	portssvc.DivisionSvcFacade
	division      *domain.Division
	divisionErr   error
	membership    *domain.DivisionMembership
	membershipErr error
	resolveCalls  int
}

func (s *stubDivisionSvc) FindDivisionInWorkspace(ctx context.Context, workspaceID, divisionID string) (*domain.Division, error) {
	if s.divisionErr != nil {
		return nil, s.divisionErr
	}
	return s.division, nil
}

func (s *stubDivisionSvc) ResolveDivisionMembership(ctx context.Context, userID, divisionID string) (*domain.DivisionMembership, error) {
	s.resolveCalls++
	if s.membershipErr != nil {
		return nil, s.membershipErr
	}
	return s.membership, nil
}

type stubStoreSvc struct {
	portssvc.StoreSvcFacade
	store    *domain.Store
	storeErr error
}

func (s *stubStoreSvc) FindStoreInDivision(ctx context.Context, divisionID, storeID string) (*domain.Store, error) {
	if s.storeErr != nil {
		return nil, s.storeErr
	}
	return s.store, nil
}

// --- Test Suite Setup ---

type ScopeGuardTestSuite struct {
	suite.Suite
	info      AuthInfo
	workspace *domain.Workspace
	division  *domain.Division
}

func (suite *ScopeGuardTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.info = AuthInfo{UserID: uuid.NewString(), Role: domain.GlobalRoleUser}
	suite.workspace = &domain.Workspace{WorkspaceID: uuid.NewString(), Name: "Depot", IsActive: true}
	suite.division = &domain.Division{DivisionID: uuid.NewString(), WorkspaceID: suite.workspace.WorkspaceID, Name: "North Route", IsActive: true}
}

// serveWorkspaceGuard runs a request through the workspace guard and captures
// the scope the guard attached for the downstream handler.
func (suite *ScopeGuardTestSuite) serveWorkspaceGuard(svc portssvc.WorkspaceSvcFacade, requiredRoles ...string) (*httptest.ResponseRecorder, *WorkspaceScope) {
	var captured *WorkspaceScope

	r := gin.New()
	r.GET("/workspaces/:workspaceID", func(c *gin.Context) {
		c.Request = c.Request.WithContext(withAuthInfo(c.Request.Context(), suite.info))
		c.Next()
	}, WorkspaceScopeGuard(svc, requiredRoles...), func(c *gin.Context) {
		if scope, ok := GetWorkspaceScope(c.Request.Context()); ok {
			captured = &scope
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/workspaces/"+suite.workspace.WorkspaceID, nil)
	r.ServeHTTP(w, req)
	return w, captured
}

func (suite *ScopeGuardTestSuite) serveDivisionGuard(wsMembership *domain.Membership, svc portssvc.DivisionSvcFacade, requiredRoles ...string) (*httptest.ResponseRecorder, *DivisionScope) {
	var captured *DivisionScope

	r := gin.New()
	r.GET("/divisions/:divisionID", func(c *gin.Context) {
		ctx := withAuthInfo(c.Request.Context(), suite.info)
		ctx = withWorkspaceScope(ctx, WorkspaceScope{Workspace: suite.workspace, Membership: wsMembership})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}, DivisionScopeGuard(svc, requiredRoles...), func(c *gin.Context) {
		if scope, ok := GetDivisionScope(c.Request.Context()); ok {
			captured = &scope
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/divisions/"+suite.division.DivisionID, nil)
	r.ServeHTTP(w, req)
	return w, captured
}

func (suite *ScopeGuardTestSuite) memberWith(roles ...string) *domain.Membership {
	return &domain.Membership{
		MembershipID: uuid.NewString(),
		UserID:       suite.info.UserID,
		WorkspaceID:  suite.workspace.WorkspaceID,
		Roles:        roles,
		Status:       domain.MembershipStatusActive,
	}
}

// --- Workspace guard ---

func (suite *ScopeGuardTestSuite) TestWorkspaceScopeGuard_SuperBypass() {
	suite.info.Role = domain.GlobalRoleSuper
	svc := &stubWorkspaceSvc{workspace: suite.workspace}

	w, scope := suite.serveWorkspaceGuard(svc)

	suite.Equal(http.StatusOK, w.Code)
	suite.Require().NotNil(scope)
	suite.Nil(scope.Membership)
	suite.True(scope.IsAdmin())
	suite.Zero(svc.resolveCalls)
}

func (suite *ScopeGuardTestSuite) TestWorkspaceScopeGuard_UnknownWorkspace() {
	svc := &stubWorkspaceSvc{workspaceErr: apperrors.NewNotFoundError("workspace not found", nil)}

	w, scope := suite.serveWorkspaceGuard(svc)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Nil(scope)
	suite.Zero(svc.resolveCalls)
}

func (suite *ScopeGuardTestSuite) TestWorkspaceScopeGuard_NonMember() {
	svc := &stubWorkspaceSvc{
		workspace:     suite.workspace,
		membershipErr: apperrors.NewNotFoundError("membership not found", nil),
	}

	w, scope := suite.serveWorkspaceGuard(svc)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Nil(scope)
	suite.Equal(1, svc.resolveCalls)
}

func (suite *ScopeGuardTestSuite) TestWorkspaceScopeGuard_InsufficientRole() {
	svc := &stubWorkspaceSvc{
		workspace:  suite.workspace,
		membership: suite.memberWith(domain.WorkspaceRoleUser),
	}

	w, scope := suite.serveWorkspaceGuard(svc, domain.WorkspaceRoleManager)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Nil(scope)
}

func (suite *ScopeGuardTestSuite) TestWorkspaceScopeGuard_AdminAlwaysPasses() {
	svc := &stubWorkspaceSvc{
		workspace:  suite.workspace,
		membership: suite.memberWith(domain.WorkspaceRoleAdmin),
	}

	w, scope := suite.serveWorkspaceGuard(svc, domain.WorkspaceRoleManager)

	suite.Equal(http.StatusOK, w.Code)
	suite.Require().NotNil(scope)
	suite.True(scope.IsAdmin())
}

func (suite *ScopeGuardTestSuite) TestWorkspaceScopeGuard_MissingAuth() {
	r := gin.New()
	r.GET("/workspaces/:workspaceID", WorkspaceScopeGuard(&stubWorkspaceSvc{workspace: suite.workspace}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/workspaces/"+suite.workspace.WorkspaceID, nil)
	r.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

// --- Division guard ---

func (suite *ScopeGuardTestSuite) TestDivisionScopeGuard_CrossTenantDivision() {
	svc := &stubDivisionSvc{divisionErr: apperrors.NewValidationFailedError("division does not belong to the requested workspace")}

	w, scope := suite.serveDivisionGuard(suite.memberWith(domain.WorkspaceRoleAdmin), svc)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Nil(scope)
	suite.Zero(svc.resolveCalls)
}

func (suite *ScopeGuardTestSuite) TestDivisionScopeGuard_WorkspaceAdminBypass() {
	svc := &stubDivisionSvc{division: suite.division}

	w, scope := suite.serveDivisionGuard(suite.memberWith(domain.WorkspaceRoleAdmin), svc)

	suite.Equal(http.StatusOK, w.Code)
	suite.Require().NotNil(scope)
	suite.Nil(scope.Membership)
	suite.Zero(svc.resolveCalls)
}

func (suite *ScopeGuardTestSuite) TestDivisionScopeGuard_NonMember() {
	svc := &stubDivisionSvc{
		division:      suite.division,
		membershipErr: apperrors.NewNotFoundError("membership not found", nil),
	}

	w, scope := suite.serveDivisionGuard(suite.memberWith(domain.WorkspaceRoleUser), svc)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Nil(scope)
	suite.Equal(1, svc.resolveCalls)
}

func (suite *ScopeGuardTestSuite) TestDivisionScopeGuard_InsufficientDivisionRole() {
	svc := &stubDivisionSvc{
		division: suite.division,
		membership: &domain.DivisionMembership{
			UserID:     suite.info.UserID,
			DivisionID: suite.division.DivisionID,
			Roles:      []string{domain.DivisionRoleUser},
			Status:     domain.DivisionMembershipStatusActive,
		},
	}

	w, scope := suite.serveDivisionGuard(suite.memberWith(domain.WorkspaceRoleUser), svc, domain.DivisionRoleAdmin)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Nil(scope)
}

// --- Store guard ---

func (suite *ScopeGuardTestSuite) TestStoreScopeGuard_AttachesStore() {
	store := &domain.Store{StoreID: uuid.NewString(), DivisionID: suite.division.DivisionID, WorkspaceID: suite.workspace.WorkspaceID, Name: "Main Counter"}
	svc := &stubStoreSvc{store: store}

	var captured *StoreScope
	r := gin.New()
	r.GET("/stores/:storeID", func(c *gin.Context) {
		ctx := withAuthInfo(c.Request.Context(), suite.info)
		ctx = withDivisionScope(ctx, DivisionScope{Division: suite.division})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}, StoreScopeGuard(svc), func(c *gin.Context) {
		if scope, ok := GetStoreScope(c.Request.Context()); ok {
			captured = &scope
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/stores/"+store.StoreID, nil)
	r.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Require().NotNil(captured)
	suite.Equal(store.StoreID, captured.Store.StoreID)
}

func (suite *ScopeGuardTestSuite) TestStoreScopeGuard_CrossDivisionStore() {
	svc := &stubStoreSvc{storeErr: apperrors.NewValidationFailedError("store does not belong to the requested division")}

	r := gin.New()
	r.GET("/stores/:storeID", func(c *gin.Context) {
		ctx := withAuthInfo(c.Request.Context(), suite.info)
		ctx = withDivisionScope(ctx, DivisionScope{Division: suite.division})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}, StoreScopeGuard(svc), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/stores/"+uuid.NewString(), nil)
	r.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestScopeGuardTestSuite(t *testing.T) {
	suite.Run(t, new(ScopeGuardTestSuite))
}
