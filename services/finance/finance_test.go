package finance

import (
	"context"
	"testing"
	"time"

	appointmentRepo "flowmaster/database/repository/appointment"
	professionalRepo "flowmaster/database/repository/professional"
	serviceRepo "flowmaster/database/repository/service"
	"flowmaster/models"
)

type mockAppointments struct {
	appointmentRepo.AppointmentRepository
	completed []models.Appointment
	filter    models.ReportFilter
}

func (m *mockAppointments) ListCompleted(_ context.Context, _ string, f models.ReportFilter) ([]models.Appointment, error) {
	m.filter = f
	return m.completed, nil
}

type mockServices struct {
	serviceRepo.ServiceRepository
	list []models.Service
}

func (m *mockServices) List(context.Context, string) ([]models.Service, error) { return m.list, nil }

type mockProfessionals struct {
	professionalRepo.ProfessionalRepository
	list []models.Professional
}

func (m *mockProfessionals) List(context.Context, string) ([]models.Professional, error) {
	return m.list, nil
}

func TestCommission(t *testing.T) {
	tests := []struct {
		price, rate, want float64
	}{
		{100, 40, 40},
		{49.99, 30, 15},
		{80, 0, 0},
		{33.33, 33.3, 11.1},
	}
	for _, tt := range tests {
		if got := Commission(tt.price, tt.rate); got != tt.want {
			t.Errorf("Commission(%v, %v) = %v, want %v", tt.price, tt.rate, got, tt.want)
		}
	}
}

func newFinanceService(appts []models.Appointment) (*DefaultFinanceService, *mockAppointments) {
	repo := &mockAppointments{completed: appts}
	return &DefaultFinanceService{
		Appointments: repo,
		Services: &mockServices{list: []models.Service{
			{ID: "cut", Name: "Haircut", Price: 50},
			{ID: "beard", Name: "Beard", Price: 30},
		}},
		Professionals: &mockProfessionals{list: []models.Professional{
			{ID: "p1", Name: "Ana", CommissionRate: 40},
		}},
		Now: func() time.Time { return time.Date(2024, 6, 18, 15, 0, 0, 0, time.UTC) },
	}, repo
}

func TestSummary(t *testing.T) {
	svc, repo := newFinanceService([]models.Appointment{
		{ID: "a1", ServiceID: "cut"},
		{ID: "a2", ServiceID: "beard"},
		{ID: "a3", ServiceID: "removed"},
	})
	sum, err := svc.Summary(context.Background(), "t1")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.Month != "2024-06" || sum.TotalAppointments != 3 || sum.TotalRevenue != 80 {
		t.Errorf("summary = %+v", sum)
	}
	if repo.filter.From == nil || !repo.filter.From.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("from = %v, want start of month", repo.filter.From)
	}
}

func TestReport(t *testing.T) {
	day := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newFinanceService([]models.Appointment{
		{ID: "a1", ServiceID: "cut", ProfessionalID: "p1", CustomerName: "Bruno", Date: day},
		{ID: "a2", ServiceID: "beard", ProfessionalID: "gone", UserID: "u7", Date: day},
		{ID: "a3", ServiceID: "cut", Date: day},
	})
	lines, err := svc.Report(context.Background(), "t1", models.ReportFilter{})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}

	want := []models.ReportLine{
		{AppointmentID: "a1", Date: day, Client: "Bruno", Service: "Haircut", Professional: "Ana", Price: 50, CommissionRate: 40, CommissionAmount: 20},
		{AppointmentID: "a2", Date: day, Client: "u7", Service: "Beard", Price: 30},
		{AppointmentID: "a3", Date: day, Client: "Walk-in", Service: "Haircut", Price: 50},
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %+v, want %+v", i, lines[i], want[i])
		}
	}
}
