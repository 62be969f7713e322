package catalog

import (
	"context"

	"flowmaster/models"
	"flowmaster/utils"
)

func (s *DefaultCatalogService) GetSchedule(ctx context.Context, tenantID, professionalID string) ([]models.WorkingWindow, error) {
	if _, err := s.GetProfessional(ctx, tenantID, professionalID); err != nil {
		return nil, err
	}
	return s.Schedules.ListByProfessional(ctx, tenantID, professionalID)
}

// SetSchedule replaces every working window of the professional.
func (s *DefaultCatalogService) SetSchedule(ctx context.Context, tenantID, professionalID string, windows []models.WorkingWindow) ([]models.WorkingWindow, error) {
	if _, err := s.GetProfessional(ctx, tenantID, professionalID); err != nil {
		return nil, err
	}
	for i, w := range windows {
		if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
			return nil, utils.NewValidationError("window %d: dayOfWeek must be between 0 and 6", i)
		}
		from, okFrom := models.ParseClock(w.StartTime)
		to, okTo := models.ParseClock(w.EndTime)
		if !okFrom || !okTo {
			return nil, utils.NewValidationError("window %d: times must use HH:mm", i)
		}
		if from >= to {
			return nil, utils.NewValidationError("window %d: startTime must be before endTime", i)
		}
		windows[i].TenantID = tenantID
		windows[i].ProfessionalID = professionalID
	}
	if err := s.Schedules.Replace(ctx, tenantID, professionalID, windows); err != nil {
		return nil, err
	}
	return s.Schedules.ListByProfessional(ctx, tenantID, professionalID)
}
