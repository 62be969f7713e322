package models

import "time"

// FinancialSummary aggregates completed appointments for the current month.
type FinancialSummary struct {
	Month             string  `json:"month"`
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalAppointments int     `json:"totalAppointments"`
}

// ReportLine is one completed appointment with its commission.
type ReportLine struct {
	AppointmentID    string    `json:"appointmentId"`
	Date             time.Time `json:"date"`
	Client           string    `json:"client"`
	Service          string    `json:"service"`
	Professional     string    `json:"professional,omitempty"`
	Price            float64   `json:"price"`
	CommissionRate   float64   `json:"commissionRate"`
	CommissionAmount float64   `json:"commissionAmount"`
}

// ReportFilter narrows the detailed finance report.
type ReportFilter struct {
	From           *time.Time
	To             *time.Time
	ProfessionalID string
}
