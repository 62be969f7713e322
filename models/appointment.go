package models

import "time"

// SlotDuration is the fixed granularity shared by slot generation and booking.
const SlotDuration = 30 * time.Minute

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "SCHEDULED"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusCancelled AppointmentStatus = "CANCELLED"
)

// Valid reports whether s is a known lifecycle status.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// PaymentStatus is the payment sub-state of an appointment.
type PaymentStatus string

const (
	PaymentNone            PaymentStatus = "NONE"
	PaymentPendingApproval PaymentStatus = "PENDING_APPROVAL"
	PaymentPaid            PaymentStatus = "PAID"
	PaymentRejected        PaymentStatus = "REJECTED"
)

// Appointment is one booked instant in the ledger.
type Appointment struct {
	ID               string            `bson:"id" json:"id"`
	TenantID         string            `bson:"tenantId" json:"tenantId"`
	ProfessionalID   string            `bson:"professionalId,omitempty" json:"professionalId,omitempty"`
	ServiceID        string            `bson:"serviceId" json:"serviceId"`
	UserID           string            `bson:"userId,omitempty" json:"userId,omitempty"`
	Date             time.Time         `bson:"date" json:"date"` // absolute instant, UTC
	Status           AppointmentStatus `bson:"status" json:"status"`
	PaymentStatus    PaymentStatus     `bson:"paymentStatus" json:"paymentStatus"`
	RecurrenceRuleID string            `bson:"recurrenceRuleId,omitempty" json:"recurrenceRuleId,omitempty"`
	PaymentIntentID  string            `bson:"paymentIntentId,omitempty" json:"paymentIntentId,omitempty"`
	CustomerName     string            `bson:"customerName,omitempty" json:"customerName,omitempty"`
	CustomerPhone    string            `bson:"customerPhone,omitempty" json:"customerPhone,omitempty"`
	CreatedAt        time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// Active reports whether the appointment occupies its slot.
func (a *Appointment) Active() bool {
	return a.Status != StatusCancelled
}

// BookingRequest carries everything the booking serializer needs to admit an appointment.
type BookingRequest struct {
	TenantID         string `json:"-"`
	ServiceID        string `json:"serviceId" binding:"required"`
	ProfessionalID   string `json:"professionalId"`
	StartTime        string `json:"startTime" binding:"required"`
	UserID           string `json:"userId"`
	CustomerName     string `json:"customerName"`
	CustomerPhone    string `json:"customerPhone"`
	RecurrenceRuleID string `json:"-"`
}

// AppointmentUpdate lists the mutable fields of an appointment. Nil means unchanged.
type AppointmentUpdate struct {
	StartTime      *string            `json:"startTime"`
	ServiceID      *string            `json:"serviceId"`
	ProfessionalID *string            `json:"professionalId"`
	Status         *AppointmentStatus `json:"status"`
}

// AppointmentFilter narrows appointment listings.
type AppointmentFilter struct {
	ProfessionalID string
	Status         AppointmentStatus
	From           *time.Time
	To             *time.Time
}
