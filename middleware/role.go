package middleware

import (
	"net/http"

	"flowmaster/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole lets through callers holding one of roles. It must run after JWTAuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := Principal(c)
		if p == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Status: "error", Message: "Unauthorized"})
			return
		}
		for _, r := range roles {
			if p.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{Status: "error", Message: "Forbidden"})
	}
}
