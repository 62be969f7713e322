package notification

import (
	"context"
	"time"

	appointmentRepo "flowmaster/database/repository/appointment"
	notificationRepo "flowmaster/database/repository/notification"
	userRepo "flowmaster/database/repository/user"
	"flowmaster/models"
)

// Notifier records an in-app notification and pushes it to the user's device.
type Notifier interface {
	Notify(ctx context.Context, n *models.Notification) error
}

// NotificationService defines the notification inbox and the reminder job.
type NotificationService interface {
	Notifier
	List(ctx context.Context, tenantID, userID string) ([]models.Notification, error)
	// RunReminderJob notifies users of SCHEDULED appointments starting within window.
	// It returns the number of reminders created.
	RunReminderJob(ctx context.Context, window time.Duration) (int, error)
}

// Pusher delivers a push message to one device token.
type Pusher interface {
	Push(ctx context.Context, token, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo         notificationRepo.NotificationRepository
	Appointments appointmentRepo.AppointmentRepository
	Users        userRepo.UserRepository
	// Pusher is optional; without it notifications stay in-app.
	Pusher Pusher
	Now    func() time.Time
}

func (s *DefaultNotificationService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
