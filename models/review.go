package models

import "time"

// Review is a customer's rating of a completed appointment.
type Review struct {
	ID             string    `bson:"id" json:"id"`
	TenantID       string    `bson:"tenantId" json:"tenantId"`
	AppointmentID  string    `bson:"appointmentId" json:"appointmentId"`
	ServiceID      string    `bson:"serviceId" json:"serviceId"`
	ProfessionalID string    `bson:"professionalId" json:"professionalId"`
	UserID         string    `bson:"userId" json:"userId"`
	Rating         int       `bson:"rating" json:"rating"`
	Comment        string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// CreateReviewRequest is the payload of POST /api/reviews.
type CreateReviewRequest struct {
	AppointmentID string `json:"appointmentId" binding:"required"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
}
