package handlers

import (
	"net/http"
	"time"

	"flowmaster/middleware"
	"flowmaster/models"
	"flowmaster/services/booking"
	"flowmaster/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves availability, appointments and recurring series.
type BookingHandler struct {
	BookingSvc booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{BookingSvc: svc}
}

// GetAvailability handles GET /api/professionals/:id/availability?date=YYYY-MM-DD.
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	h.availability(c, middleware.TenantID(c), c.Param("id"))
}

// GetPublicAvailability handles GET /api/public/availability?tenantId=&professionalId=&date=.
func (h *BookingHandler) GetPublicAvailability(c *gin.Context) {
	tenantID := c.Query("tenantId")
	professionalID := c.Query("professionalId")
	if tenantID == "" || professionalID == "" {
		utils.RespondError(c, utils.NewValidationError("tenantId and professionalId are required"))
		return
	}
	h.availability(c, tenantID, professionalID)
}

func (h *BookingHandler) availability(c *gin.Context, tenantID, professionalID string) {
	date := c.Query("date")
	if date == "" {
		utils.RespondError(c, utils.NewValidationError("date is required"))
		return
	}
	slots, err := h.BookingSvc.AvailableSlots(c.Request.Context(), tenantID, professionalID, date)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	out := make([]string, 0, len(slots))
	for _, t := range slots {
		out = append(out, t.UTC().Format(time.RFC3339))
	}
	c.JSON(http.StatusOK, out)
}

// CreateAppointment handles POST /api/appointments.
func (h *BookingHandler) CreateAppointment(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	req.TenantID = middleware.TenantID(c)

	appt, err := h.BookingSvc.Book(c.Request.Context(), req)
	if err != nil {
		if utils.IsConflict(err) {
			getLogger(c).Info("booking conflict", zap.String("professionalId", req.ProfessionalID), zap.String("startTime", req.StartTime))
		}
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// ListAppointments handles GET /api/appointments.
func (h *BookingHandler) ListAppointments(c *gin.Context) {
	filter := models.AppointmentFilter{
		ProfessionalID: c.Query("professionalId"),
		Status:         models.AppointmentStatus(c.Query("status")),
	}
	var err error
	if filter.From, err = queryTime(c, "from", false); err != nil {
		utils.RespondError(c, err)
		return
	}
	if filter.To, err = queryTime(c, "to", true); err != nil {
		utils.RespondError(c, err)
		return
	}

	appts, err := h.BookingSvc.ListAppointments(c.Request.Context(), middleware.TenantID(c), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// GetAppointment handles GET /api/appointments/:id.
func (h *BookingHandler) GetAppointment(c *gin.Context) {
	appt, err := h.BookingSvc.GetAppointment(c.Request.Context(), middleware.TenantID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// UpdateAppointment handles PUT /api/appointments/:id.
func (h *BookingHandler) UpdateAppointment(c *gin.Context) {
	var upd models.AppointmentUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		bindError(c, err)
		return
	}
	appt, err := h.BookingSvc.UpdateAppointment(c.Request.Context(), middleware.TenantID(c), c.Param("id"), upd)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// CancelAppointment handles DELETE /api/appointments/:id.
func (h *BookingHandler) CancelAppointment(c *gin.Context) {
	if err := h.BookingSvc.CancelAppointment(c.Request.Context(), middleware.TenantID(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ApprovePayment handles POST /api/appointments/:id/approve-payment.
func (h *BookingHandler) ApprovePayment(c *gin.Context) {
	appt, err := h.BookingSvc.ApprovePayment(c.Request.Context(), middleware.TenantID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// RejectPayment handles POST /api/appointments/:id/reject-payment.
func (h *BookingHandler) RejectPayment(c *gin.Context) {
	appt, err := h.BookingSvc.RejectPayment(c.Request.Context(), middleware.TenantID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// CreateRecurring handles POST /api/appointments/recurring.
func (h *BookingHandler) CreateRecurring(c *gin.Context) {
	var req models.RecurringSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	res, err := h.BookingSvc.CreateRecurringSeries(c.Request.Context(), middleware.TenantID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// ListRecurrenceRules handles GET /api/recurrence-rules.
func (h *BookingHandler) ListRecurrenceRules(c *gin.Context) {
	rules, err := h.BookingSvc.ListRecurrenceRules(c.Request.Context(), middleware.TenantID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rules)
}

// DeleteRecurrenceRule handles DELETE /api/recurrence-rules/:id.
func (h *BookingHandler) DeleteRecurrenceRule(c *gin.Context) {
	if err := h.BookingSvc.DeleteRecurrenceRule(c.Request.Context(), middleware.TenantID(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// queryTime reads an RFC 3339 instant or a YYYY-MM-DD date. A bare date used as an
// upper bound covers the whole day.
func queryTime(c *gin.Context, key string, endOfDay bool) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, utils.NewValidationError("invalid %s %q", key, raw)
	}
	if endOfDay {
		d = d.Add(24*time.Hour - time.Nanosecond)
	}
	return &d, nil
}
