package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const AdminUserContextKey = "adminUser"

// AdminMiddleware guards the operator surface. Authentication proper lives at
// the gateway; this only checks the forwarded admin identity header.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminUser := c.GetHeader("X-Admin-User")
		if adminUser == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(AdminUserContextKey, adminUser)
		c.Next()
	}
}

// GetAdminUser returns the acting admin identity, or "admin" when absent
// (only possible outside the guarded group, e.g. in tests).
func GetAdminUser(c *gin.Context) string {
	if val, ok := c.Get(AdminUserContextKey); ok {
		if id, ok := val.(string); ok && id != "" {
			return id
		}
	}
	return "admin"
}
