package models

import "time"

// Service is something a tenant sells, e.g. a haircut.
type Service struct {
	ID              string    `bson:"id" json:"id"`
	TenantID        string    `bson:"tenantId" json:"tenantId"`
	Name            string    `bson:"name" json:"name" binding:"required"`
	Description     string    `bson:"description,omitempty" json:"description,omitempty"`
	Price           float64   `bson:"price" json:"price" binding:"gte=0"`
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Professional is a staff member who can be booked.
type Professional struct {
	ID             string    `bson:"id" json:"id"`
	TenantID       string    `bson:"tenantId" json:"tenantId"`
	Name           string    `bson:"name" json:"name" binding:"required"`
	Email          string    `bson:"email,omitempty" json:"email,omitempty"`
	Phone          string    `bson:"phone,omitempty" json:"phone,omitempty"`
	CommissionRate float64   `bson:"commissionRate" json:"commissionRate" binding:"gte=0,lte=100"`
	AverageRating  float64   `bson:"averageRating" json:"averageRating"`
	LockVersion    int64     `bson:"lockVersion" json:"-"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}
