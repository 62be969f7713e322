package notification

import (
	"context"
	"fmt"
	"time"

	"flowmaster/models"
	"flowmaster/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var titles = map[string]string{
	models.NotificationReminder24h:     "Appointment reminder",
	models.NotificationPaymentApproved: "Payment approved",
	models.NotificationPaymentRejected: "Payment rejected",
}

// Notify stores n and pushes it when the user has a device token. Push failures are logged only.
func (s *DefaultNotificationService) Notify(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	n.CreatedAt = s.now()
	if err := s.Repo.Create(ctx, n); err != nil {
		return err
	}
	s.push(ctx, n)
	return nil
}

func (s *DefaultNotificationService) push(ctx context.Context, n *models.Notification) {
	if s.Pusher == nil || s.Users == nil {
		return
	}
	logger := utils.GetLogger()

	u, err := s.Users.GetByID(ctx, n.UserID)
	if err != nil || u.FCMToken == "" {
		return
	}

	data := map[string]string{"type": n.Type, "notificationId": n.ID}
	for k, v := range n.Metadata {
		data[k] = v
	}
	title, ok := titles[n.Type]
	if !ok {
		title = "FlowMaster"
	}
	if err := s.Pusher.Push(ctx, u.FCMToken, title, n.Message, data); err != nil {
		logger.Warn("push notification failed", zap.String("userId", n.UserID), zap.Error(err))
	}
}

func (s *DefaultNotificationService) List(ctx context.Context, tenantID, userID string) ([]models.Notification, error) {
	return s.Repo.ListByUser(ctx, tenantID, userID)
}

func (s *DefaultNotificationService) RunReminderJob(ctx context.Context, window time.Duration) (int, error) {
	logger := utils.GetLogger()
	now := s.now()

	appts, err := s.Appointments.ListScheduledBetween(ctx, now, now.Add(window))
	if err != nil {
		return 0, fmt.Errorf("reminder job: %w", err)
	}

	sent := 0
	for _, a := range appts {
		if a.UserID == "" {
			continue
		}
		exists, err := s.Repo.Exists(ctx, a.UserID, models.NotificationReminder24h, a.ID)
		if err != nil {
			logger.Error("reminder lookup failed", zap.String("appointmentId", a.ID), zap.Error(err))
			continue
		}
		if exists {
			continue
		}

		err = s.Notify(ctx, &models.Notification{
			TenantID: a.TenantID,
			UserID:   a.UserID,
			Type:     models.NotificationReminder24h,
			Message:  fmt.Sprintf("Reminder: you have an appointment on %s.", a.Date.Format("02/01/2006 15:04")),
			Metadata: map[string]string{"appointmentId": a.ID},
		})
		if err != nil {
			logger.Error("reminder not stored", zap.String("appointmentId", a.ID), zap.Error(err))
			continue
		}
		sent++
	}

	logger.Info("reminder job finished", zap.Int("candidates", len(appts)), zap.Int("sent", sent))
	return sent, nil
}
