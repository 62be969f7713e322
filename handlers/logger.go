package handlers

import (
	"net/http"

	"flowmaster/middleware"
	"flowmaster/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger returns the application logger annotated with the request's route and tenant.
func getLogger(c *gin.Context) *zap.Logger {
	fields := []zap.Field{zap.String("route", c.FullPath())}
	if tenantID := middleware.TenantID(c); tenantID != "" {
		fields = append(fields, zap.String("tenantId", tenantID))
	}
	return utils.GetLogger().With(fields...)
}

// bindError reports a request body or query that could not be decoded.
func bindError(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, "invalid request", err.Error())
}
