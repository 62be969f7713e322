package booking

import (
	"errors"

	appointmentRepo "flowmaster/database/repository/appointment"
	"flowmaster/models"
	"flowmaster/utils"
)

const (
	msgSlotTaken       = "slot already booked"
	msgOutsideSchedule = "requested slot is not available in professional schedule"
)

func errOutsideSchedule() error {
	return &utils.ValidationError{Message: msgOutsideSchedule, Code: models.SkipOutsideSchedule}
}

// ledgerError translates repository sentinels into errors the HTTP layer knows how to report.
func ledgerError(err error, appointmentID, professionalID string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, appointmentRepo.ErrSlotTaken):
		return utils.NewConflictError(msgSlotTaken)
	case errors.Is(err, appointmentRepo.ErrProfessionalNotFound):
		return utils.NewValidationError("professional %s not found in tenant", professionalID)
	case errors.Is(err, appointmentRepo.ErrNotFound):
		return utils.NewNotFoundError("appointment", appointmentID)
	}
	return err
}
