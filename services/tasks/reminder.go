package tasks

import (
	"encoding/json"
	"time"

	"flowmaster/models"

	"github.com/hibiken/asynq"
)

const TypeReminderScan = "reminder:scan"

// ReminderWindow is how far ahead the reminder job looks.
const ReminderWindow = 24 * time.Hour

// NewReminderScanTask builds the periodic task that runs the reminder job.
func NewReminderScanTask(window time.Duration) (*asynq.Task, error) {
	b, err := json.Marshal(models.ReminderPayload{Window: window})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeReminderScan, b, asynq.MaxRetry(2), asynq.Timeout(5*time.Minute)), nil
}

// DecodeReminderPayload reads the task payload, defaulting the window.
func DecodeReminderPayload(t *asynq.Task) (models.ReminderPayload, error) {
	var p models.ReminderPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, err
	}
	if p.Window <= 0 {
		p.Window = ReminderWindow
	}
	return p, nil
}
