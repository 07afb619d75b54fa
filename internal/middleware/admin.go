package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshtrack/freshtrack-golang/internal/models"
)

// AdminMiddleware must run after AuthMiddleware. The role is only a gate for
// administrative views, not a permission model on data operations.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Identity not found in context (AuthMiddleware must run first)"})
			c.Abort()
			return
		}
		if identity.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
