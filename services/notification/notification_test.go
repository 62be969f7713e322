package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	appointmentRepo "flowmaster/database/repository/appointment"
	notificationRepo "flowmaster/database/repository/notification"
	userRepo "flowmaster/database/repository/user"
	"flowmaster/models"
)

type mockNotificationRepo struct {
	notificationRepo.NotificationRepository
	stored []models.Notification
}

func (m *mockNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	m.stored = append(m.stored, *n)
	return nil
}

func (m *mockNotificationRepo) Exists(_ context.Context, userID, notifType, appointmentID string) (bool, error) {
	for _, n := range m.stored {
		if n.UserID == userID && n.Type == notifType && n.Metadata["appointmentId"] == appointmentID {
			return true, nil
		}
	}
	return false, nil
}

type mockAppointments struct {
	appointmentRepo.AppointmentRepository
	scheduled []models.Appointment
	from, to  time.Time
}

func (m *mockAppointments) ListScheduledBetween(_ context.Context, from, to time.Time) ([]models.Appointment, error) {
	m.from, m.to = from, to
	return m.scheduled, nil
}

type mockUsers struct {
	userRepo.UserRepository
	byID map[string]models.User
}

func (m *mockUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	return &u, nil
}

type mockPusher struct {
	tokens []string
	err    error
}

func (m *mockPusher) Push(_ context.Context, token, title, body string, data map[string]string) error {
	m.tokens = append(m.tokens, token)
	return m.err
}

func TestRunReminderJob(t *testing.T) {
	now := time.Date(2024, 6, 9, 12, 0, 0, 0, time.UTC)
	appts := &mockAppointments{scheduled: []models.Appointment{
		{ID: "a1", TenantID: "t1", UserID: "u1", Date: now.Add(3 * time.Hour)},
		{ID: "a2", TenantID: "t1", UserID: "u2", Date: now.Add(20 * time.Hour)},
		{ID: "a3", TenantID: "t1", Date: now.Add(5 * time.Hour)},
	}}
	repo := &mockNotificationRepo{}
	pusher := &mockPusher{}
	svc := &DefaultNotificationService{
		Repo:         repo,
		Appointments: appts,
		Users: &mockUsers{byID: map[string]models.User{
			"u1": {ID: "u1", FCMToken: "device-1"},
			"u2": {ID: "u2"},
		}},
		Pusher: pusher,
		Now:    func() time.Time { return now },
	}

	sent, err := svc.RunReminderJob(context.Background(), 24*time.Hour)
	if err != nil {
		t.Fatalf("RunReminderJob: %v", err)
	}
	if sent != 2 {
		t.Errorf("sent = %d, want 2", sent)
	}
	if !appts.from.Equal(now) || !appts.to.Equal(now.Add(24*time.Hour)) {
		t.Errorf("window = [%s, %s]", appts.from, appts.to)
	}
	if len(pusher.tokens) != 1 || pusher.tokens[0] != "device-1" {
		t.Errorf("pushed to %v, want only device-1", pusher.tokens)
	}
	for _, n := range repo.stored {
		if n.Type != models.NotificationReminder24h || n.ID == "" {
			t.Errorf("stored %+v", n)
		}
	}

	// A second run must not remind the same appointments again.
	sent, err = svc.RunReminderJob(context.Background(), 24*time.Hour)
	if err != nil {
		t.Fatalf("second RunReminderJob: %v", err)
	}
	if sent != 0 || len(repo.stored) != 2 {
		t.Errorf("second run sent %d, stored %d; want 0 and 2", sent, len(repo.stored))
	}
}

func TestNotify_PushFailureIsNotFatal(t *testing.T) {
	repo := &mockNotificationRepo{}
	svc := &DefaultNotificationService{
		Repo:   repo,
		Users:  &mockUsers{byID: map[string]models.User{"u1": {ID: "u1", FCMToken: "device-1"}}},
		Pusher: &mockPusher{err: errors.New("unregistered token")},
	}
	err := svc.Notify(context.Background(), &models.Notification{TenantID: "t1", UserID: "u1", Type: models.NotificationPaymentApproved, Message: "ok"})
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if len(repo.stored) != 1 {
		t.Errorf("stored %d notifications, want 1", len(repo.stored))
	}
}
