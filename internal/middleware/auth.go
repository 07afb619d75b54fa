package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/freshtrack/freshtrack-golang/internal/auth"
	"github.com/freshtrack/freshtrack-golang/internal/models"
)

// Context key under which the resolved identity is stored.
const IdentityKey = "identity"

// AuthMiddleware validates the Bearer token and attaches the actor identity
// to the request context.
func AuthMiddleware(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format (must be Bearer)"})
			c.Abort()
			return
		}

		identity, err := tokens.Validate(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(IdentityKey, *identity)
		c.Next()
	}
}

// CurrentIdentity reads the identity set by AuthMiddleware.
func CurrentIdentity(c *gin.Context) (models.Identity, bool) {
	raw, exists := c.Get(IdentityKey)
	if !exists {
		return models.Identity{}, false
	}
	identity, ok := raw.(models.Identity)
	return identity, ok
}
