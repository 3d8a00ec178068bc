package handlers

import (
	"net/http"

	"github.com/gasdepot/cylinder_ledger_app/internal/apperrors"
	"github.com/gasdepot/cylinder_ledger_app/internal/core/domain"
	portssvc "github.com/gasdepot/cylinder_ledger_app/internal/core/ports/services"
	"github.com/gasdepot/cylinder_ledger_app/internal/dto"
	"github.com/gasdepot/cylinder_ledger_app/internal/platform/config"
	"github.com/gasdepot/cylinder_ledger_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	cfg          *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(services *portssvc.ServiceContainer, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService:  services.User,
		tokenService: services.TokenService,
		cfg:          cfg,
	}
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services, cfg)
	oh := NewGoogleOAuthHandler(services, cfg)

	// Credential endpoints are rate limited per IP
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", limitMiddleware, h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.POST("/google/exchange", limitMiddleware, oh.ExchangeCode)
	}
}

// issueSession generates the access/refresh token pair, persists the refresh
// token hash and sets the refresh cookie. Rotation happens on every call.
func (h *AuthHandler) issueSession(c *gin.Context, user *domain.User) (string, *dto.LoginResponse, error) {
	ctx := c.Request.Context()

	accessToken, accessExpiry, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		return "", nil, apperrors.NewInternalServerError("failed to generate access token", err)
	}
	refreshToken, refreshExpiry, err := h.tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		return "", nil, apperrors.NewInternalServerError("failed to generate refresh token", err)
	}
	if err := h.userService.StoreRefreshTokenHash(ctx, user.UserID, utils.HashRefreshToken(refreshToken), &refreshExpiry); err != nil {
		return "", nil, err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		h.cfg.RefreshTokenCookieName,
		refreshToken,
		int(h.cfg.RefreshTokenExpiryDuration.Seconds()),
		h.cfg.RefreshTokenCookiePath,
		"",
		h.cfg.IsProduction,
		true,
	)

	resp := &dto.LoginResponse{
		Token:     accessToken,
		ExpiresAt: accessExpiry,
		User:      dto.ToUserResponse(user),
	}
	return refreshToken, resp, nil
}

// Register godoc
// @Summary Register new user
// @Description Creates a new user account with the base global role.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterUserRequest true "User Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Conflict (e.g., username exists)"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, "user registered", "user", dto.ToUserResponse(user))
}

// Login godoc
// @Summary User login
// @Description Authenticates a user, returns an access token and sets the refresh cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	// The same message covers unknown usernames and wrong passwords so the
	// endpoint can't be used to enumerate accounts.
	user, err := h.userService.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		respondError(c, apperrors.NewUnauthenticatedError("invalid username or password", nil))
		return
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		respondError(c, apperrors.NewUnauthenticatedError("invalid username or password", nil))
		return
	}

	_, resp, err := h.issueSession(c, user)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "login successful", "session", resp)
}

// Refresh godoc
// @Summary Refresh access token
// @Description Rotates the refresh token from the cookie and returns a new access token.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.RefreshResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil || refreshToken == "" {
		respondError(c, apperrors.NewUnauthenticatedError("refresh token missing", err))
		return
	}

	user, err := h.tokenService.ValidateAndParseRefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		respondError(c, apperrors.NewUnauthenticatedError("invalid refresh token", err))
		return
	}

	_, resp, err := h.issueSession(c, user)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "token refreshed", "session", dto.RefreshResponse{
		Token:     resp.Token,
		ExpiresAt: resp.ExpiresAt,
	})
}

// Logout godoc
// @Summary Logout
// @Description Clears the refresh cookie and revokes the stored refresh token.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]any
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// Best effort revocation: if the cookie still validates, clear the
	// stored hash so the token can't be replayed.
	if refreshToken, err := c.Cookie(h.cfg.RefreshTokenCookieName); err == nil && refreshToken != "" {
		if user, err := h.tokenService.ValidateAndParseRefreshToken(c.Request.Context(), refreshToken); err == nil {
			_ = h.userService.StoreRefreshTokenHash(c.Request.Context(), user.UserID, "", nil)
		}
	}

	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
	respondSuccess(c, http.StatusOK, "logged out", "", nil)
}
