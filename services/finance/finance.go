package finance

import (
	"context"
	"math"
	"time"

	appointmentRepo "flowmaster/database/repository/appointment"
	professionalRepo "flowmaster/database/repository/professional"
	serviceRepo "flowmaster/database/repository/service"
	"flowmaster/models"
)

type FinanceService interface {
	// Summary totals the COMPLETED appointments of the current calendar month.
	Summary(ctx context.Context, tenantID string) (*models.FinancialSummary, error)
	// Report lists COMPLETED appointments with the commission owed to each professional.
	Report(ctx context.Context, tenantID string, filter models.ReportFilter) ([]models.ReportLine, error)
}

type DefaultFinanceService struct {
	Appointments  appointmentRepo.AppointmentRepository
	Services      serviceRepo.ServiceRepository
	Professionals professionalRepo.ProfessionalRepository
	Now           func() time.Time
}

func (s *DefaultFinanceService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *DefaultFinanceService) Summary(ctx context.Context, tenantID string) (*models.FinancialSummary, error) {
	now := s.now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	appts, err := s.Appointments.ListCompleted(ctx, tenantID, models.ReportFilter{From: &from, To: &now})
	if err != nil {
		return nil, err
	}
	prices, err := s.priceIndex(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	out := &models.FinancialSummary{Month: from.Format("2006-01"), TotalAppointments: len(appts)}
	for _, a := range appts {
		out.TotalRevenue += prices[a.ServiceID].Price
	}
	return out, nil
}

func (s *DefaultFinanceService) Report(ctx context.Context, tenantID string, filter models.ReportFilter) ([]models.ReportLine, error) {
	appts, err := s.Appointments.ListCompleted(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	services, err := s.priceIndex(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	pros, err := s.Professionals.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Professional, len(pros))
	for _, p := range pros {
		byID[p.ID] = p
	}

	lines := make([]models.ReportLine, 0, len(appts))
	for _, a := range appts {
		svc := services[a.ServiceID]
		line := models.ReportLine{
			AppointmentID: a.ID,
			Date:          a.Date,
			Client:        clientName(a),
			Service:       svc.Name,
			Price:         svc.Price,
		}
		if p, ok := byID[a.ProfessionalID]; ok {
			line.Professional = p.Name
			line.CommissionRate = p.CommissionRate
			line.CommissionAmount = Commission(svc.Price, p.CommissionRate)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// Commission is price × rate / 100, rounded to cents.
func Commission(price, rate float64) float64 {
	return math.Round(price*rate) / 100
}

func (s *DefaultFinanceService) priceIndex(ctx context.Context, tenantID string) (map[string]models.Service, error) {
	svcs, err := s.Services.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]models.Service, len(svcs))
	for _, sv := range svcs {
		idx[sv.ID] = sv
	}
	return idx, nil
}

func clientName(a models.Appointment) string {
	if a.CustomerName != "" {
		return a.CustomerName
	}
	if a.UserID != "" {
		return a.UserID
	}
	return "Walk-in"
}
