// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"flowmaster/database"
	"flowmaster/models"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound             = errors.New("appointment not found")
	ErrSlotTaken            = errors.New("slot already booked")
	ErrProfessionalNotFound = errors.New("professional not found")
)

// AppointmentRepository is the appointment ledger.
type AppointmentRepository interface {
	// Create inserts without any occupancy check.
	Create(ctx context.Context, appt *models.Appointment) error
	// CreateExclusive locks the appointment's professional, verifies that no active
	// appointment holds the same instant and inserts, all in one transaction.
	// It returns ErrSlotTaken when the instant is occupied.
	CreateExclusive(ctx context.Context, appt *models.Appointment) error
	// UpdateExclusive is CreateExclusive for an existing appointment; the appointment itself
	// is ignored by the occupancy check.
	UpdateExclusive(ctx context.Context, appt *models.Appointment) error
	Update(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, tenantID, id string) (*models.Appointment, error)
	List(ctx context.Context, tenantID string, filter models.AppointmentFilter) ([]models.Appointment, error)
	// ListActiveInRange returns non-cancelled appointments of a professional with from <= date < to.
	ListActiveInRange(ctx context.Context, tenantID, professionalID string, from, to time.Time) ([]models.Appointment, error)
	// ListScheduledBetween scans every tenant for SCHEDULED appointments with a user in [from, to].
	ListScheduledBetween(ctx context.Context, from, to time.Time) ([]models.Appointment, error)
	ListCompleted(ctx context.Context, tenantID string, filter models.ReportFilter) ([]models.Appointment, error)
	CountByRule(ctx context.Context, tenantID, ruleID string) (int64, error)
	// DeleteFutureByRule removes the rule's appointments dated after now that are not COMPLETED.
	DeleteFutureByRule(ctx context.Context, tenantID, ruleID string, now time.Time) (int64, error)
}

type mongoAppointmentRepo struct {
	client        *mongo.Client
	coll          *mongo.Collection
	professionals *mongo.Collection
}

// NewMongoAppointmentRepo constructs the MongoDB ledger.
func NewMongoAppointmentRepo(db *mongo.Database) AppointmentRepository {
	return &mongoAppointmentRepo{
		client:        db.Client(),
		coll:          db.Collection(database.AppointmentsColl),
		professionals: db.Collection(database.ProfessionalsColl),
	}
}
