package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gasdepot/cylinder_ledger_app/internal/apperrors"
	"github.com/gasdepot/cylinder_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// includeErrorStack is set once at route registration; outside production
// error responses carry the underlying error chain to speed up debugging.
var includeErrorStack bool

// ErrorResponse documents the error envelope for swagger.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorType string `json:"errorType"`
	Stack     string `json:"stack,omitempty"`
}

// respondSuccess writes the success envelope. The payload lands under the
// given key so responses read as {"success":true,"message":...,"user":{...}}.
func respondSuccess(c *gin.Context, status int, message, key string, payload any) {
	body := gin.H{
		"success": true,
		"message": message,
	}
	if key != "" {
		body[key] = payload
	}
	c.JSON(status, body)
}

// respondError maps an error to the error envelope. AppErrors carry their
// own status code and type; anything else is a 500.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.NewInternalServerError("An unexpected error occurred", err)
	}
	if appErr.Code >= http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("error", err.Error()))
	}

	body := gin.H{
		"success":   false,
		"message":   appErr.Message,
		"errorType": appErr.ErrorType,
	}
	if includeErrorStack && appErr.Err != nil {
		body["stack"] = appErr.Err.Error()
	}
	c.JSON(appErr.Code, body)
}

// respondBindError wraps a request binding failure in the error envelope.
func respondBindError(c *gin.Context, err error) {
	respondError(c, apperrors.NewBadRequestError("Invalid request format: "+err.Error(), err))
}
