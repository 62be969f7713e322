// File: database/repository/schedule/schedule.go
package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"flowmaster/database"
	"flowmaster/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ScheduleRepository is the schedule store: working windows per professional and weekday.
type ScheduleRepository interface {
	// GetWindows returns every window of the professional on the given weekday (0 = Sunday).
	GetWindows(ctx context.Context, tenantID, professionalID string, dayOfWeek int) ([]models.WorkingWindow, error)
	ListByProfessional(ctx context.Context, tenantID, professionalID string) ([]models.WorkingWindow, error)
	// Replace swaps all windows of the professional for the given set.
	Replace(ctx context.Context, tenantID, professionalID string, windows []models.WorkingWindow) error
}

type mongoScheduleRepo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewMongoScheduleRepo(db *mongo.Database) ScheduleRepository {
	return &mongoScheduleRepo{client: db.Client(), coll: db.Collection(database.SchedulesColl)}
}

func (r *mongoScheduleRepo) GetWindows(ctx context.Context, tenantID, professionalID string, dayOfWeek int) ([]models.WorkingWindow, error) {
	filter := bson.M{"tenantId": tenantID, "professionalId": professionalID, "dayOfWeek": dayOfWeek}
	return r.find(ctx, filter)
}

func (r *mongoScheduleRepo) ListByProfessional(ctx context.Context, tenantID, professionalID string) ([]models.WorkingWindow, error) {
	return r.find(ctx, bson.M{"tenantId": tenantID, "professionalId": professionalID})
}

func (r *mongoScheduleRepo) Replace(ctx context.Context, tenantID, professionalID string, windows []models.WorkingWindow) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.coll.DeleteMany(sc, bson.M{"tenantId": tenantID, "professionalId": professionalID}); err != nil {
			return nil, fmt.Errorf("clear schedule: %w", err)
		}
		if len(windows) == 0 {
			return nil, nil
		}
		docs := make([]interface{}, len(windows))
		for i := range windows {
			w := windows[i]
			if w.ID == "" {
				w.ID = uuid.New().String()
			}
			w.TenantID = tenantID
			w.ProfessionalID = professionalID
			docs[i] = w
		}
		if _, err := r.coll.InsertMany(sc, docs); err != nil {
			return nil, fmt.Errorf("insert schedule: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("schedule replace transaction failed: %w", err)
	}
	return nil
}

func (r *mongoScheduleRepo) find(ctx context.Context, filter bson.M) ([]models.WorkingWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "dayOfWeek", Value: 1}, {Key: "startTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching working windows: %w", err)
	}
	defer cursor.Close(ctx)

	windows := make([]models.WorkingWindow, 0)
	if err := cursor.All(ctx, &windows); err != nil {
		return nil, fmt.Errorf("error decoding working windows: %w", err)
	}
	return windows, nil
}

// EnsureIndexes creates the indexes of the schedules collection.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := db.Collection(database.SchedulesColl).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "tenantId", Value: 1}, {Key: "professionalId", Value: 1}, {Key: "dayOfWeek", Value: 1}},
		Options: options.Index().SetName("tenant_professional_day_idx"),
	})
	if err != nil {
		return fmt.Errorf("failed to create schedule indexes: %w", err)
	}
	return nil
}
