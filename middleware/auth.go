package middleware

import (
	"net/http"
	"strings"

	"clubhouse/models"
	"clubhouse/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextMemberID = "memberID"
	ContextRole     = "role"
)

// JWTAuthMemberMiddleware requires a valid bearer token and stores the
// member id and role in the gin context.
func JWTAuthMemberMiddleware(tokens *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "Invalid or expired token"})
			return
		}

		c.Set(ContextMemberID, claims.Subject)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireAdmin must run after JWTAuthMemberMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden", "message": "Admin access required"})
			return
		}
		c.Next()
	}
}
