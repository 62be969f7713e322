package handlers

import (
	"net/http"

	"flowmaster/middleware"
	"flowmaster/models"
	"flowmaster/services/finance"
	"flowmaster/utils"

	"github.com/gin-gonic/gin"
)

type FinanceHandler struct {
	FinanceSvc finance.FinanceService
}

func NewFinanceHandler(svc finance.FinanceService) *FinanceHandler {
	return &FinanceHandler{FinanceSvc: svc}
}

// Summary handles GET /api/finance/summary.
func (h *FinanceHandler) Summary(c *gin.Context) {
	sum, err := h.FinanceSvc.Summary(c.Request.Context(), middleware.TenantID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// Report handles GET /api/finance/report?start_date=&end_date=&professionalId=.
func (h *FinanceHandler) Report(c *gin.Context) {
	filter := models.ReportFilter{ProfessionalID: c.Query("professionalId")}
	var err error
	if filter.From, err = queryTime(c, "start_date", false); err != nil {
		utils.RespondError(c, err)
		return
	}
	if filter.To, err = queryTime(c, "end_date", true); err != nil {
		utils.RespondError(c, err)
		return
	}
	lines, err := h.FinanceSvc.Report(c.Request.Context(), middleware.TenantID(c), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lines)
}
