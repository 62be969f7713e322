package handlers

import (
	"net/http"

	"flowmaster/middleware"
	"flowmaster/models"
	"flowmaster/services/tenant"
	"flowmaster/utils"

	"github.com/gin-gonic/gin"
)

// TenantHandler serves tenant branding, payment and agent configuration.
type TenantHandler struct {
	TenantSvc tenant.TenantService
}

func NewTenantHandler(svc tenant.TenantService) *TenantHandler {
	return &TenantHandler{TenantSvc: svc}
}

// GetConfig handles GET /api/config. The config is created on first read.
func (h *TenantHandler) GetConfig(c *gin.Context) {
	cfg, err := h.TenantSvc.GetConfig(c.Request.Context(), middleware.TenantID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *TenantHandler) UpdateConfig(c *gin.Context) {
	var upd models.TenantConfigUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		bindError(c, err)
		return
	}
	cfg, err := h.TenantSvc.UpdateConfig(c.Request.Context(), middleware.TenantID(c), upd)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *TenantHandler) UpdateAgentConfig(c *gin.Context) {
	var upd models.AgentConfigUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		bindError(c, err)
		return
	}
	cfg, err := h.TenantSvc.UpdateAgentConfig(c.Request.Context(), middleware.TenantID(c), upd)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// GetPublicPaymentConfig handles GET /api/config/payment?tenantId=.
func (h *TenantHandler) GetPublicPaymentConfig(c *gin.Context) {
	tenantID := c.Query("tenantId")
	if tenantID == "" {
		utils.RespondError(c, utils.NewValidationError("tenantId is required"))
		return
	}
	cfg, err := h.TenantSvc.PublicPaymentConfig(c.Request.Context(), tenantID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// GetPublicAgentConfig handles GET /api/public/agent-config?tenantId=.
func (h *TenantHandler) GetPublicAgentConfig(c *gin.Context) {
	tenantID := c.Query("tenantId")
	if tenantID == "" {
		utils.RespondError(c, utils.NewValidationError("tenantId is required"))
		return
	}
	cfg, err := h.TenantSvc.AgentConfig(c.Request.Context(), tenantID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}
