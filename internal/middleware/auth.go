package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"servicehub/api/internal/config"
	"servicehub/api/internal/security"
)

// UserIDKey is the context key under which Auth stores the verified
// token subject.
const UserIDKey = "user_id"

// Auth verifies the bearer token. Tokens are stateless, so this never
// touches the database; handlers that need the full user load it themselves.
func Auth(cfg *config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := security.ParseToken(tokenStr, cfg.Security.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}
