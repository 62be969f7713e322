package booking

import (
	"context"
	"fmt"
	"time"

	"flowmaster/utils"
)

// AvailableSlots returns the free instants of a professional on date (YYYY-MM-DD).
// The answer is a hint: nothing is held, so Book may still report a conflict.
func (s *DefaultBookingService) AvailableSlots(ctx context.Context, tenantID, professionalID, date string) ([]time.Time, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, utils.NewValidationError("invalid date %q, expected YYYY-MM-DD", date)
	}
	free, _, err := s.computeAvailability(ctx, tenantID, professionalID, day, "")
	return free, err
}

// computeAvailability returns the free slots of day and every slot the schedule generates.
// An appointment with id ignoreID does not occupy its slot.
func (s *DefaultBookingService) computeAvailability(
	ctx context.Context,
	tenantID, professionalID string,
	day time.Time,
	ignoreID string,
) (free, generated []time.Time, err error) {
	dayStart := startOfDay(day)

	windows, err := s.Schedules.GetWindows(ctx, tenantID, professionalID, int(dayStart.Weekday()))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load working windows: %w", err)
	}
	generated = GenerateSlots(windows, dayStart)
	if len(generated) == 0 {
		return generated, generated, nil
	}

	booked, err := s.Appointments.ListActiveInRange(ctx, tenantID, professionalID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load appointments: %w", err)
	}
	occupied := make(map[int64]struct{}, len(booked))
	for _, a := range booked {
		if a.ID == ignoreID {
			continue
		}
		occupied[a.Date.Unix()] = struct{}{}
	}

	free = make([]time.Time, 0, len(generated))
	for _, slot := range generated {
		if _, taken := occupied[slot.Unix()]; !taken {
			free = append(free, slot)
		}
	}
	return free, generated, nil
}

// checkSlot is the pre-lock check of an instant: it must be generated by the schedule and free.
func (s *DefaultBookingService) checkSlot(ctx context.Context, tenantID, professionalID string, at time.Time, ignoreID string) error {
	free, generated, err := s.computeAvailability(ctx, tenantID, professionalID, at, ignoreID)
	if err != nil {
		return err
	}
	if !containsInstant(generated, at) {
		return errOutsideSchedule()
	}
	if !containsInstant(free, at) {
		return utils.NewConflictError(msgSlotTaken)
	}
	return nil
}

func containsInstant(list []time.Time, t time.Time) bool {
	for _, x := range list {
		if x.Equal(t) {
			return true
		}
	}
	return false
}
