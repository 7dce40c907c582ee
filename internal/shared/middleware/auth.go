package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"catadopt-backend/pkg/jwt"
)

// PersonIDKey is the gin context key the auth middleware sets.
const PersonIDKey = "personID"

// AuthMiddleware validates the bearer token and puts the authenticated
// person id into the request context. Identity management itself lives in
// a separate service; this API only verifies the token it issued.
func AuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(401, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(401, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := manager.ValidateAccessToken(parts[1])
		if err != nil {
			c.JSON(401, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		personID, err := uuid.Parse(claims.PersonID)
		if err != nil {
			c.JSON(401, gin.H{"error": "invalid person ID in token"})
			c.Abort()
			return
		}

		c.Set(PersonIDKey, personID)
		c.Next()
	}
}
