package booking

import (
	"context"
	"errors"

	appointmentRepo "flowmaster/database/repository/appointment"
	"flowmaster/models"
	"flowmaster/utils"

	"go.uber.org/zap"
)

func (s *DefaultBookingService) GetAppointment(ctx context.Context, tenantID, id string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, tenantID, id)
	if errors.Is(err, appointmentRepo.ErrNotFound) {
		return nil, utils.NewNotFoundError("appointment", id)
	}
	return appt, err
}

func (s *DefaultBookingService) ListAppointments(ctx context.Context, tenantID string, filter models.AppointmentFilter) ([]models.Appointment, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, utils.NewValidationError("unknown status %q", filter.Status)
	}
	return s.Appointments.List(ctx, tenantID, filter)
}

// UpdateAppointment applies the non-nil fields of upd. An update that moves an active
// appointment or brings a cancelled one back goes through the professional's lock.
func (s *DefaultBookingService) UpdateAppointment(ctx context.Context, tenantID, id string, upd models.AppointmentUpdate) (*models.Appointment, error) {
	appt, err := s.GetAppointment(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	prev := *appt

	if upd.ServiceID != nil {
		if err := s.requireService(ctx, tenantID, *upd.ServiceID); err != nil {
			return nil, err
		}
		appt.ServiceID = *upd.ServiceID
	}
	if upd.ProfessionalID != nil {
		if *upd.ProfessionalID != "" {
			if err := s.requireProfessional(ctx, tenantID, *upd.ProfessionalID); err != nil {
				return nil, err
			}
		}
		appt.ProfessionalID = *upd.ProfessionalID
	}
	if upd.StartTime != nil {
		start, err := parseInstant(*upd.StartTime)
		if err != nil {
			return nil, err
		}
		appt.Date = start
	}
	if upd.Status != nil {
		if !upd.Status.Valid() {
			return nil, utils.NewValidationError("unknown status %q", *upd.Status)
		}
		appt.Status = *upd.Status
	}
	appt.UpdatedAt = s.now()

	moved := !appt.Date.Equal(prev.Date) || appt.ProfessionalID != prev.ProfessionalID || !prev.Active()
	if appt.ProfessionalID != "" && appt.Active() && moved {
		if err := s.checkSlot(ctx, tenantID, appt.ProfessionalID, appt.Date, appt.ID); err != nil {
			return nil, err
		}
		if err := s.Appointments.UpdateExclusive(ctx, appt); err != nil {
			return nil, ledgerError(err, appt.ID, appt.ProfessionalID)
		}
		return appt, nil
	}

	if err := s.Appointments.Update(ctx, appt); err != nil {
		return nil, ledgerError(err, appt.ID, appt.ProfessionalID)
	}
	return appt, nil
}

// CancelAppointment releases the slot. The row stays in the ledger.
func (s *DefaultBookingService) CancelAppointment(ctx context.Context, tenantID, id string) error {
	appt, err := s.GetAppointment(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if appt.Status == models.StatusCancelled {
		return nil
	}
	appt.Status = models.StatusCancelled
	appt.UpdatedAt = s.now()
	if err := s.Appointments.Update(ctx, appt); err != nil {
		return ledgerError(err, appt.ID, appt.ProfessionalID)
	}
	utils.GetLogger().Info("appointment cancelled", zap.String("tenantId", tenantID), zap.String("appointmentId", id))
	return nil
}
