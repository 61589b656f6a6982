package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/spinwheel/internal/admin"
	"github.com/playmatatu/spinwheel/internal/config"
)

// AdminHeader carries the plain admin token
const AdminHeader = "X-Admin-Token"

// RequireAdminToken rejects requests whose X-Admin-Token does not match
// ADMIN_TOKEN_HASH. With no hash configured every admin request is refused.
func RequireAdminToken(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.AdminTokenHash == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "admin access not configured"})
			return
		}
		if !admin.VerifyAdminToken(cfg.AdminTokenHash, c.GetHeader(AdminHeader)) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid admin token"})
			return
		}
		c.Next()
	}
}
