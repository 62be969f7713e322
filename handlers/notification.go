package handlers

import (
	"net/http"

	"flowmaster/middleware"
	"flowmaster/services/notification"
	"flowmaster/services/tasks"
	"flowmaster/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	NotificationSvc notification.NotificationService
}

func NewNotificationHandler(svc notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{NotificationSvc: svc}
}

// List handles GET /api/notifications for the calling user.
func (h *NotificationHandler) List(c *gin.Context) {
	p := middleware.Principal(c)
	if p == nil {
		utils.RespondError(c, &utils.UnauthorizedError{Message: "Unauthorized"})
		return
	}
	list, err := h.NotificationSvc.List(c.Request.Context(), p.TenantID, p.UserID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// RunJob handles POST /api/notifications/run-job, triggering the reminder scan immediately.
func (h *NotificationHandler) RunJob(c *gin.Context) {
	sent, err := h.NotificationSvc.RunReminderJob(c.Request.Context(), tasks.ReminderWindow)
	if err != nil {
		getLogger(c).Error("Reminder job failed", zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "remindersSent": sent})
}
