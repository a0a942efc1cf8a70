package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/business_tracker/internal/apperrors"
	"github.com/SscSPs/business_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

const noActiveBusinessMessage = "No active business. Create or select a business first."

// statusForError maps the apperrors families onto HTTP status codes.
// ErrNoActiveBusiness is checked first because ledger mutations also wrap it in ErrValidation.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNoActiveBusiness):
		return http.StatusPreconditionFailed
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrFormat):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConstraintViolation):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the mapped status. Server errors hide the cause behind fallback.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusForError(err)

	switch {
	case status == http.StatusInternalServerError:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: fallback})
	case status == http.StatusPreconditionFailed:
		logger.Warn(fallback, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: noActiveBusinessMessage})
	default:
		logger.Warn(fallback, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: err.Error()})
	}
}

// respondBindError answers a request body or query that failed to bind.
func respondBindError(c *gin.Context, what string, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
}
