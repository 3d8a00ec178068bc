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
)

// GoogleOAuthHandler handles the Google sign-in code exchange flow. The
// frontend completes the redirect and posts the authorization code here.
type GoogleOAuthHandler struct {
	userService   portssvc.UserSvcFacade
	tokenService  portssvc.TokenSvcFacade
	googleService portssvc.GoogleOAuthHandlerSvcFacade
	cfg           *config.Config
}

// NewGoogleOAuthHandler creates a new GoogleOAuthHandler.
func NewGoogleOAuthHandler(services *portssvc.ServiceContainer, cfg *config.Config) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		userService:   services.User,
		tokenService:  services.TokenService,
		googleService: services.GoogleOAuthHandler,
		cfg:           cfg,
	}
}

// ExchangeCode godoc
// @Summary Exchange Google OAuth code
// @Description Exchanges an authorization code for a validated Google identity and issues an application session.
// @Tags auth
// @Accept json
// @Produce json
// @Param exchange body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/exchange [post]
func (h *GoogleOAuthHandler) ExchangeCode(c *gin.Context) {
	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	ctx := c.Request.Context()

	token, err := h.googleService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		respondError(c, apperrors.NewUnauthenticatedError("failed to exchange authorization code", err))
		return
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		respondError(c, apperrors.NewUnauthenticatedError("no id_token in google response", nil))
		return
	}
	payload, err := h.googleService.ValidateGoogleIDToken(ctx, rawIDToken)
	if err != nil {
		respondError(c, apperrors.NewUnauthenticatedError("invalid google identity token", err))
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	emailVerified, _ := payload.Claims["email_verified"].(bool)

	user, err := h.userService.CreateOAuthUser(ctx, name, email, string(domain.ProviderGoogle), payload.Subject, emailVerified)
	if err != nil {
		respondError(c, err)
		return
	}

	accessToken, accessExpiry, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		respondError(c, apperrors.NewInternalServerError("failed to generate access token", err))
		return
	}
	refreshToken, refreshExpiry, err := h.tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		respondError(c, apperrors.NewInternalServerError("failed to generate refresh token", err))
		return
	}
	if err := h.userService.StoreRefreshTokenHash(ctx, user.UserID, utils.HashRefreshToken(refreshToken), &refreshExpiry); err != nil {
		respondError(c, err)
		return
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

	respondSuccess(c, http.StatusOK, "login successful", "session", dto.LoginResponse{
		Token:     accessToken,
		ExpiresAt: accessExpiry,
		User:      dto.ToUserResponse(user),
	})
}
