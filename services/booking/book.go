package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	professionalRepo "flowmaster/database/repository/professional"
	serviceRepo "flowmaster/database/repository/service"
	"flowmaster/models"
	"flowmaster/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Book admits one appointment. With a professional the instant must be generated by the
// professional's schedule and must not be held by another active appointment; the final
// check and the insert run under the professional's lock so that concurrent requests for
// one instant produce exactly one appointment.
func (s *DefaultBookingService) Book(ctx context.Context, req models.BookingRequest) (*models.Appointment, error) {
	logger := utils.GetLogger()

	if req.ServiceID == "" || req.StartTime == "" {
		return nil, utils.NewValidationError("serviceId and startTime are required")
	}
	start, err := parseInstant(req.StartTime)
	if err != nil {
		return nil, err
	}
	if err := s.requireService(ctx, req.TenantID, req.ServiceID); err != nil {
		return nil, err
	}

	now := s.now()
	appt := &models.Appointment{
		ID:               uuid.New().String(),
		TenantID:         req.TenantID,
		ProfessionalID:   req.ProfessionalID,
		ServiceID:        req.ServiceID,
		UserID:           req.UserID,
		Date:             start,
		Status:           models.StatusScheduled,
		PaymentStatus:    models.PaymentNone,
		RecurrenceRuleID: req.RecurrenceRuleID,
		CustomerName:     req.CustomerName,
		CustomerPhone:    req.CustomerPhone,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if req.ProfessionalID == "" {
		if err := s.Appointments.Create(ctx, appt); err != nil {
			return nil, err
		}
		return appt, nil
	}

	if err := s.requireProfessional(ctx, req.TenantID, req.ProfessionalID); err != nil {
		return nil, err
	}
	if err := s.checkSlot(ctx, req.TenantID, req.ProfessionalID, start, ""); err != nil {
		return nil, err
	}
	if err := s.Appointments.CreateExclusive(ctx, appt); err != nil {
		return nil, ledgerError(err, appt.ID, appt.ProfessionalID)
	}

	logger.Info("appointment booked",
		zap.String("tenantId", appt.TenantID),
		zap.String("appointmentId", appt.ID),
		zap.String("professionalId", appt.ProfessionalID),
		zap.Time("date", appt.Date),
	)
	return appt, nil
}

func (s *DefaultBookingService) requireService(ctx context.Context, tenantID, serviceID string) error {
	if _, err := s.Services.GetByID(ctx, tenantID, serviceID); err != nil {
		if errors.Is(err, serviceRepo.ErrNotFound) {
			return utils.NewValidationError("service %s not found in tenant", serviceID)
		}
		return fmt.Errorf("failed to load service: %w", err)
	}
	return nil
}

func (s *DefaultBookingService) requireProfessional(ctx context.Context, tenantID, professionalID string) error {
	if _, err := s.Professionals.GetByID(ctx, tenantID, professionalID); err != nil {
		if errors.Is(err, professionalRepo.ErrNotFound) {
			return utils.NewValidationError("professional %s not found in tenant", professionalID)
		}
		return fmt.Errorf("failed to load professional: %w", err)
	}
	return nil
}

// parseInstant reads an RFC 3339 timestamp and normalises it to UTC.
func parseInstant(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, utils.NewValidationError("invalid startTime %q, expected RFC 3339", raw)
	}
	return t.UTC(), nil
}
