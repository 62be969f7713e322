package catalog

import (
	"context"
	"testing"

	professionalRepo "flowmaster/database/repository/professional"
	scheduleRepo "flowmaster/database/repository/schedule"
	"flowmaster/models"
	"flowmaster/utils"
)

type mockProfessionals struct {
	professionalRepo.ProfessionalRepository
}

func (m *mockProfessionals) GetByID(_ context.Context, tenantID, id string) (*models.Professional, error) {
	if id != "p1" {
		return nil, professionalRepo.ErrNotFound
	}
	return &models.Professional{ID: id, TenantID: tenantID}, nil
}

type mockSchedules struct {
	scheduleRepo.ScheduleRepository
	windows []models.WorkingWindow
}

func (m *mockSchedules) Replace(_ context.Context, _, _ string, windows []models.WorkingWindow) error {
	m.windows = windows
	return nil
}

func (m *mockSchedules) ListByProfessional(context.Context, string, string) ([]models.WorkingWindow, error) {
	return m.windows, nil
}

func TestSetSchedule(t *testing.T) {
	tests := []struct {
		name    string
		proID   string
		windows []models.WorkingWindow
		check   func(error) bool
	}{
		{"unknown professional", "ghost", nil, utils.IsNotFound},
		{"bad weekday", "p1", []models.WorkingWindow{{DayOfWeek: 7, StartTime: "09:00", EndTime: "12:00"}}, utils.IsValidation},
		{"bad clock", "p1", []models.WorkingWindow{{DayOfWeek: 1, StartTime: "9am", EndTime: "12:00"}}, utils.IsValidation},
		{"out of range clock", "p1", []models.WorkingWindow{{DayOfWeek: 1, StartTime: "09:00", EndTime: "25:00"}}, utils.IsValidation},
		{"start after end", "p1", []models.WorkingWindow{{DayOfWeek: 1, StartTime: "12:00", EndTime: "09:00"}}, utils.IsValidation},
		{"empty window", "p1", []models.WorkingWindow{{DayOfWeek: 1, StartTime: "10:00", EndTime: "10:00"}}, utils.IsValidation},
		{"start at midnight end", "p1", []models.WorkingWindow{{DayOfWeek: 1, StartTime: "24:00", EndTime: "24:00"}}, utils.IsValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &DefaultCatalogService{Professionals: &mockProfessionals{}, Schedules: &mockSchedules{}}
			if _, err := svc.SetSchedule(context.Background(), "t1", tt.proID, tt.windows); !tt.check(err) {
				t.Fatalf("unexpected err %v", err)
			}
		})
	}

	t.Run("replaces windows", func(t *testing.T) {
		schedules := &mockSchedules{}
		svc := &DefaultCatalogService{Professionals: &mockProfessionals{}, Schedules: schedules}
		got, err := svc.SetSchedule(context.Background(), "t1", "p1", []models.WorkingWindow{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
			{DayOfWeek: 1, StartTime: "14:00", EndTime: "18:00"},
			{DayOfWeek: 5, StartTime: "18:00", EndTime: "24:00"},
		})
		if err != nil {
			t.Fatalf("SetSchedule: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("got %d windows, want 3", len(got))
		}
		for _, w := range got {
			if w.TenantID != "t1" || w.ProfessionalID != "p1" {
				t.Errorf("window not scoped: %+v", w)
			}
		}
	})
}
