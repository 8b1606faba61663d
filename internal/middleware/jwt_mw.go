package middleware

import (
	"net/http"
	"strings"

	"job_board/internal/model"

	"github.com/gin-gonic/gin"
)

const (
	AuthIdentityKey = "authIdentity"
)

// TokenVerifier validates a bearer token and returns the caller it names
type TokenVerifier interface {
	Verify(tokenString string, requireAdmin bool) (*model.Identity, error)
}

// JWTAuthMiddleware creates a middleware for JWT authentication
func JWTAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied"})
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		identity, err := verifier.Verify(parts[1], false)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(AuthIdentityKey, *identity)
		c.Next()
	}
}

// CurrentIdentity returns the caller set by JWTAuthMiddleware
func CurrentIdentity(c *gin.Context) (model.Identity, bool) {
	val, exists := c.Get(AuthIdentityKey)
	if !exists {
		return model.Identity{}, false
	}
	identity, ok := val.(model.Identity)
	return identity, ok
}
