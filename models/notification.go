package models

import "time"

// Notification types.
const (
	NotificationReminder24h     = "REMINDER_24H"
	NotificationPaymentApproved = "PAYMENT_APPROVED"
	NotificationPaymentRejected = "PAYMENT_REJECTED"
)

// Notification is an in-app message for a user.
type Notification struct {
	ID        string            `bson:"id" json:"id"`
	TenantID  string            `bson:"tenantId" json:"tenantId"`
	UserID    string            `bson:"userId" json:"userId"`
	Type      string            `bson:"type" json:"type"`
	Message   string            `bson:"message" json:"message"`
	Metadata  map[string]string `bson:"metadata,omitempty" json:"metadata,omitempty"`
	IsRead    bool              `bson:"isRead" json:"isRead"`
	CreatedAt time.Time         `bson:"createdAt" json:"createdAt"`
}

// ReminderPayload is the body of the periodic reminder task.
type ReminderPayload struct {
	Window time.Duration `json:"window"`
}
