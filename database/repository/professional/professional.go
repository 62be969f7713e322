// File: database/repository/professional/professional.go
package professionalRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flowmaster/database"
	"flowmaster/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("professional not found")

type ProfessionalRepository interface {
	Create(ctx context.Context, p *models.Professional) error
	GetByID(ctx context.Context, tenantID, id string) (*models.Professional, error)
	List(ctx context.Context, tenantID string) ([]models.Professional, error)
	Update(ctx context.Context, p *models.Professional) error
	// DeleteWithSchedules removes the professional and its working windows in one transaction.
	DeleteWithSchedules(ctx context.Context, tenantID, id string) error
}

type mongoProfessionalRepo struct {
	client    *mongo.Client
	coll      *mongo.Collection
	schedules *mongo.Collection
}

func NewMongoProfessionalRepo(db *mongo.Database) ProfessionalRepository {
	return &mongoProfessionalRepo{
		client:    db.Client(),
		coll:      db.Collection(database.ProfessionalsColl),
		schedules: db.Collection(database.SchedulesColl),
	}
}

func (r *mongoProfessionalRepo) Create(ctx context.Context, p *models.Professional) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to insert professional: %w", err)
	}
	return nil
}

func (r *mongoProfessionalRepo) GetByID(ctx context.Context, tenantID, id string) (*models.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.Professional
	err := r.coll.FindOne(ctx, bson.M{"id": id, "tenantId": tenantID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching professional with id %s: %w", id, err)
	}
	return &p, nil
}

func (r *mongoProfessionalRepo) List(ctx context.Context, tenantID string) ([]models.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"tenantId": tenantID}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error listing professionals: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]models.Professional, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding professionals: %w", err)
	}
	return out, nil
}

// Update writes the editable fields. lockVersion and averageRating are owned elsewhere.
func (r *mongoProfessionalRepo) Update(ctx context.Context, p *models.Professional) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":           p.Name,
		"email":          p.Email,
		"phone":          p.Phone,
		"commissionRate": p.CommissionRate,
		"updatedAt":      p.UpdatedAt,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": p.ID, "tenantId": p.TenantID}, update)
	if err != nil {
		return fmt.Errorf("failed to update professional %s: %w", p.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoProfessionalRepo) DeleteWithSchedules(ctx context.Context, tenantID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.schedules.DeleteMany(sc, bson.M{"tenantId": tenantID, "professionalId": id}); err != nil {
			return nil, fmt.Errorf("delete schedules: %w", err)
		}
		res, err := r.coll.DeleteOne(sc, bson.M{"id": id, "tenantId": tenantID})
		if err != nil {
			return nil, fmt.Errorf("delete professional: %w", err)
		}
		if res.DeletedCount == 0 {
			return nil, ErrNotFound
		}
		return nil, nil
	})
	if errors.Is(err, ErrNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("professional delete transaction failed: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes of the professionals collection.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := db.Collection(database.ProfessionalsColl).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_id")},
		{Keys: bson.D{{Key: "tenantId", Value: 1}, {Key: "name", Value: 1}}, Options: options.Index().SetName("tenant_name_idx")},
	})
	if err != nil {
		return fmt.Errorf("failed to create professional indexes: %w", err)
	}
	return nil
}
