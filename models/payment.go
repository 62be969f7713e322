package models

import "time"

// PaymentProof is an uploaded receipt attached to an appointment.
type PaymentProof struct {
	ID            string    `bson:"id" json:"id"`
	TenantID      string    `bson:"tenantId" json:"tenantId"`
	AppointmentID string    `bson:"appointmentId" json:"appointmentId"`
	URL           string    `bson:"url" json:"url"`
	PublicID      string    `bson:"publicId" json:"publicId"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// PaymentIntent is returned to clients paying by card.
type PaymentIntent struct {
	AppointmentID string `json:"appointmentId"`
	IntentID      string `json:"paymentIntentId"`
	ClientSecret  string `json:"clientSecret"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
}
