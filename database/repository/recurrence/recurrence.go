// File: database/repository/recurrence/recurrence.go
package recurrenceRepo

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

var ErrNotFound = errors.New("recurrence rule not found")

type RecurrenceRuleRepository interface {
	Create(ctx context.Context, rule *models.RecurrenceRule) error
	GetByID(ctx context.Context, tenantID, id string) (*models.RecurrenceRule, error)
	List(ctx context.Context, tenantID string) ([]models.RecurrenceRule, error)
	Delete(ctx context.Context, tenantID, id string) error
}

type mongoRecurrenceRepo struct {
	coll *mongo.Collection
}

func NewMongoRecurrenceRepo(db *mongo.Database) RecurrenceRuleRepository {
	return &mongoRecurrenceRepo{coll: db.Collection(database.RecurrenceRulesColl)}
}

func (r *mongoRecurrenceRepo) Create(ctx context.Context, rule *models.RecurrenceRule) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, rule); err != nil {
		return fmt.Errorf("failed to insert recurrence rule: %w", err)
	}
	return nil
}

func (r *mongoRecurrenceRepo) GetByID(ctx context.Context, tenantID, id string) (*models.RecurrenceRule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rule models.RecurrenceRule
	err := r.coll.FindOne(ctx, bson.M{"id": id, "tenantId": tenantID}).Decode(&rule)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching recurrence rule %s: %w", id, err)
	}
	return &rule, nil
}

func (r *mongoRecurrenceRepo) List(ctx context.Context, tenantID string) ([]models.RecurrenceRule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"tenantId": tenantID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("error listing recurrence rules: %w", err)
	}
	defer cursor.Close(ctx)

	rules := make([]models.RecurrenceRule, 0)
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, fmt.Errorf("error decoding recurrence rules: %w", err)
	}
	return rules, nil
}

func (r *mongoRecurrenceRepo) Delete(ctx context.Context, tenantID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "tenantId": tenantID})
	if err != nil {
		return fmt.Errorf("failed to delete recurrence rule %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes of the recurrence rules collection.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := db.Collection(database.RecurrenceRulesColl).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_id")},
		{Keys: bson.D{{Key: "tenantId", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("tenant_created_idx")},
	})
	if err != nil {
		return fmt.Errorf("failed to create recurrence rule indexes: %w", err)
	}
	return nil
}
