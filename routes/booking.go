package routes

import (
	"flowmaster/handlers"
	"flowmaster/middleware"
	"flowmaster/models"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers availability, appointment, payment and recurrence endpoints.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/professionals/:id/availability", hb.AvailabilityHandler)

	appts := api.Group("/appointments")
	{
		appts.POST("", hb.CreateAppointmentHandler)
		appts.GET("", hb.ListAppointmentsHandler)
		appts.POST("/recurring", hb.CreateRecurringHandler)
		appts.GET("/:id", hb.GetAppointmentHandler)
		appts.PUT("/:id", hb.UpdateAppointmentHandler)
		appts.DELETE("/:id", hb.CancelAppointmentHandler)

		appts.POST("/:id/proof/upload", hb.UploadProofHandler)
		appts.POST("/:id/payment-intent", hb.PaymentIntentHandler)

		// Payment decisions are made by tenant staff.
		staff := appts.Group("", middleware.RequireRole(models.RoleAdmin))
		staff.POST("/:id/approve-payment", hb.ApprovePaymentHandler)
		staff.POST("/:id/reject-payment", hb.RejectPaymentHandler)
	}

	rules := api.Group("/recurrence-rules")
	{
		rules.GET("", hb.ListRecurrenceRulesHandler)
		rules.DELETE("/:id", hb.DeleteRecurrenceRuleHandler)
	}
}
