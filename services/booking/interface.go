package booking

import (
	"context"
	"time"

	appointmentRepo "flowmaster/database/repository/appointment"
	professionalRepo "flowmaster/database/repository/professional"
	recurrenceRepo "flowmaster/database/repository/recurrence"
	scheduleRepo "flowmaster/database/repository/schedule"
	serviceRepo "flowmaster/database/repository/service"
	"flowmaster/models"
	"flowmaster/services/notification"
)

// BookingService owns the appointment ledger: availability, admission and recurring series.
type BookingService interface {
	AvailableSlots(ctx context.Context, tenantID, professionalID, date string) ([]time.Time, error)
	Book(ctx context.Context, req models.BookingRequest) (*models.Appointment, error)

	GetAppointment(ctx context.Context, tenantID, id string) (*models.Appointment, error)
	ListAppointments(ctx context.Context, tenantID string, filter models.AppointmentFilter) ([]models.Appointment, error)
	UpdateAppointment(ctx context.Context, tenantID, id string, upd models.AppointmentUpdate) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, tenantID, id string) error

	CreateRecurringSeries(ctx context.Context, tenantID string, req models.RecurringSeriesRequest) (*models.RecurringSeriesResult, error)
	ListRecurrenceRules(ctx context.Context, tenantID string) ([]models.RecurrenceRuleView, error)
	DeleteRecurrenceRule(ctx context.Context, tenantID, ruleID string) error

	ApprovePayment(ctx context.Context, tenantID, id string) (*models.Appointment, error)
	RejectPayment(ctx context.Context, tenantID, id string) (*models.Appointment, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Appointments  appointmentRepo.AppointmentRepository
	Schedules     scheduleRepo.ScheduleRepository
	Professionals professionalRepo.ProfessionalRepository
	Services      serviceRepo.ServiceRepository
	Rules         recurrenceRepo.RecurrenceRuleRepository
	Notifier      notification.Notifier

	// Now is overridden in tests.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
