package middleware

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/business_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/business_tracker/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// RequirePermission rejects callers whose role lacks perm with 403.
func RequirePermission(authorizer portssvc.PermissionAuthorizerSvc, perm domain.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		sess, ok := GetSessionFromCtx(c.Request.Context())
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if err := authorizer.Authorize(sess, perm); err != nil {
			logger.Warn("Permission denied",
				slog.String("permission", string(perm)),
				slog.String("role", string(sess.Role)))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action"})
			return
		}
		c.Next()
	}
}
