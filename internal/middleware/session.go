package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/business_tracker/internal/apperrors"
	portssvc "github.com/SscSPs/business_tracker/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// SessionMiddleware scopes the authenticated session to the active business.
// When no business is active the session keeps an empty BusinessID and the
// business-scoped services answer with apperrors.ErrNoActiveBusiness.
// Must run after AuthMiddleware.
func SessionMiddleware(businesses portssvc.BusinessReaderSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		logger := GetLoggerFromCtx(ctx)

		sess, ok := GetSessionFromCtx(ctx)
		if !ok {
			logger.Error("SessionMiddleware used without AuthMiddleware")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		active, err := businesses.GetActiveBusiness(ctx)
		switch {
		case err == nil:
			sess = sess.WithBusiness(active.BusinessID)
			logger = logger.With(slog.String("business_id", active.BusinessID))
		case errors.Is(err, apperrors.ErrNoActiveBusiness):
			logger.Debug("No active business for request")
		default:
			logger.Error("Failed to resolve active business", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve active business"})
			return
		}

		ctx = WithSession(ctx, sess)
		ctx = WithLogger(ctx, logger)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
