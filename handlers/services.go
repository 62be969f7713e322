package handlers

import (
	"net/http"

	"flowmaster/middleware"
	"flowmaster/models"
	"flowmaster/services/catalog"
	"flowmaster/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves services, professionals and working schedules.
type CatalogHandler struct {
	CatalogSvc catalog.CatalogService
}

func NewCatalogHandler(svc catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{CatalogSvc: svc}
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req models.Service
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	svc, err := h.CatalogSvc.CreateService(c.Request.Context(), middleware.TenantID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	h.listServices(c, middleware.TenantID(c))
}

// ListPublicServices handles GET /api/public/services?tenantId=.
func (h *CatalogHandler) ListPublicServices(c *gin.Context) {
	tenantID := c.Query("tenantId")
	if tenantID == "" {
		utils.RespondError(c, utils.NewValidationError("tenantId is required"))
		return
	}
	h.listServices(c, tenantID)
}

func (h *CatalogHandler) listServices(c *gin.Context, tenantID string) {
	svcs, err := h.CatalogSvc.ListServices(c.Request.Context(), tenantID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svcs)
}

func (h *CatalogHandler) GetService(c *gin.Context) {
	svc, err := h.CatalogSvc.GetService(c.Request.Context(), middleware.TenantID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	var req models.Service
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	svc, err := h.CatalogSvc.UpdateService(c.Request.Context(), middleware.TenantID(c), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *CatalogHandler) DeleteService(c *gin.Context) {
	if err := h.CatalogSvc.DeleteService(c.Request.Context(), middleware.TenantID(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) CreateProfessional(c *gin.Context) {
	var req models.Professional
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.CatalogSvc.CreateProfessional(c.Request.Context(), middleware.TenantID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *CatalogHandler) ListProfessionals(c *gin.Context) {
	ps, err := h.CatalogSvc.ListProfessionals(c.Request.Context(), middleware.TenantID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ps)
}

func (h *CatalogHandler) GetProfessional(c *gin.Context) {
	p, err := h.CatalogSvc.GetProfessional(c.Request.Context(), middleware.TenantID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *CatalogHandler) UpdateProfessional(c *gin.Context) {
	var req models.Professional
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	p, err := h.CatalogSvc.UpdateProfessional(c.Request.Context(), middleware.TenantID(c), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProfessional removes the professional together with its schedule.
func (h *CatalogHandler) DeleteProfessional(c *gin.Context) {
	if err := h.CatalogSvc.DeleteProfessional(c.Request.Context(), middleware.TenantID(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) GetSchedule(c *gin.Context) {
	windows, err := h.CatalogSvc.GetSchedule(c.Request.Context(), middleware.TenantID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, windows)
}

// SetSchedule replaces the professional's working windows.
func (h *CatalogHandler) SetSchedule(c *gin.Context) {
	var req models.SetScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	windows, err := h.CatalogSvc.SetSchedule(c.Request.Context(), middleware.TenantID(c), c.Param("id"), req.Windows)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, windows)
}
