package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smartlibrary-backend/internal/shared/policy"
)

// RequireLibrarian rejects non-librarian callers early, before the request
// reaches a handler. The services enforce the same rule through the policy
// package; this is only a cheaper first refusal.
func RequireLibrarian() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := policy.RequireLibrarian(c.Request.Context()); err != nil {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Access denied: librarian role required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
