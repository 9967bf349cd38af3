package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"smartlibrary-backend/internal/shared/policy"
	"smartlibrary-backend/pkg/jwt"
)

// Auth validates the bearer token and resolves the caller into a
// policy.Actor carried on the request context. Token issuance and
// credential checks live in the external identity service.
func Auth(jwtManager *jwt.Manager) gin.HandlerFunc {
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

		claims, err := jwtManager.ValidateToken(parts[1])
		if err != nil {
			c.JSON(401, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.JSON(401, gin.H{"error": "invalid user ID in token"})
			c.Abort()
			return
		}

		role := policy.Role(claims.Role)
		if role != policy.RoleLibrarian && role != policy.RoleMember {
			c.JSON(401, gin.H{"error": "unknown role in token"})
			c.Abort()
			return
		}

		actor := policy.Actor{
			UserID: userID,
			Name:   claims.Name,
			Role:   role,
		}

		// Services read the actor from the request context, never from
		// gin-specific state.
		ctx := policy.WithActor(c.Request.Context(), actor)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
