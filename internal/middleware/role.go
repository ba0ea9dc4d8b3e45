package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pawcare/internal/pkg/response"
)

// RequireRole rejects requests whose authenticated role is not in the
// allowed set. Must run after Auth.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString("role")
		if _, ok := allowed[role]; !ok {
			response.Error(c, http.StatusForbidden, "NOT_AUTHORIZED", "Insufficient role")
			c.Abort()
			return
		}
		c.Next()
	}
}
