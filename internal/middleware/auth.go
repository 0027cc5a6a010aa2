package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/davidrendon/identia-backend/pkg/utils"
)

// Revoker reports when a subject's sessions were last invalidated.
type Revoker interface {
	RevokedAt(ctx context.Context, email string) (time.Time, error)
}

// AuthMiddleware validates the bearer token and rejects tokens issued
// before the subject's last password change. revoker may be nil when no
// revocation backend is wired.
func AuthMiddleware(secret string, revoker Revoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			c.JSON(401, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		token, err := utils.ValidateToken(tokenString, secret)
		if err != nil || !token.Valid {
			c.JSON(401, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(401, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		id, _ := claims["id"].(float64)
		email, _ := claims["email"].(string)
		iat, _ := claims["iat"].(float64)

		if revoker != nil {
			revokedAt, err := revoker.RevokedAt(c.Request.Context(), email)
			if err == nil && !revokedAt.IsZero() && time.Unix(int64(iat), 0).Before(revokedAt) {
				c.JSON(401, gin.H{"error": "Token has been revoked"})
				c.Abort()
				return
			}
		}

		c.Set("userId", uint(id))
		c.Set("email", email)
		c.Next()
	}
}
