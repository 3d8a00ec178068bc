package middleware

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gasdepot/cylinder_ledger_app/internal/apperrors"
	portssvc "github.com/gasdepot/cylinder_ledger_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// accessTokenCookieName is checked when no Authorization header is present,
// so browser clients can authenticate without a JS-visible token.
const accessTokenCookieName = "access_token"

// abortWithAppError renders an AppError envelope and stops the chain.
// Middleware cannot import the handlers package, so the envelope is built
// inline.
func abortWithAppError(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.Code, gin.H{
		"success":   false,
		"message":   appErr.Message,
		"errorType": appErr.ErrorType,
	})
}

// AuthMiddleware creates a Gin middleware handler that validates access
// tokens and attaches the authenticated identity to the request context.
func AuthMiddleware(tokenSvc portssvc.TokenSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				logger.Warn("Authorization header format invalid")
				abortWithAppError(c, apperrors.NewUnauthenticatedError("Authorization header format must be Bearer {token}", nil))
				return
			}
			tokenString = parts[1]
		} else if cookie, err := c.Cookie(accessTokenCookieName); err == nil {
			tokenString = cookie
		}

		if tokenString == "" {
			logger.Warn("No credentials on request")
			abortWithAppError(c, apperrors.NewUnauthenticatedError("Authentication required", nil))
			return
		}

		userID, role, err := tokenSvc.VerifyAccessToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Warn("Invalid access token", slog.String("error", err.Error()))
			abortWithAppError(c, apperrors.NewUnauthenticatedError("Invalid or expired token", err))
			return
		}

		// Attach the identity and an enriched logger as immutable context
		// values.
		ctx := withAuthInfo(c.Request.Context(), AuthInfo{UserID: userID, Role: role})
		enrichedLogger := logger.With(slog.String("user_id", userID))
		ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
