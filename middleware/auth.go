// middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"flowmaster/models"
	"flowmaster/utils"

	"github.com/gin-gonic/gin"
)

const (
	principalKey = "principal"
	tenantKey    = "tenantId"
)

// JWTAuthMiddleware resolves the bearer token into a principal and fixes the request's tenant.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Status: "error", Message: "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		p, err := utils.ParsePrincipal(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Status: "error", Message: "Invalid token"})
			return
		}

		c.Set(principalKey, p)
		c.Set(tenantKey, p.TenantID)
		c.Next()
	}
}

// Principal returns the caller set by JWTAuthMiddleware.
func Principal(c *gin.Context) *models.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(*models.Principal); ok {
			return p
		}
	}
	return nil
}

// TenantID returns the tenant of the authenticated caller.
func TenantID(c *gin.Context) string {
	return c.GetString(tenantKey)
}
