// FILE: database/repository/appointment/indexes.go
package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"flowmaster/database"
	"flowmaster/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes of the appointments collection.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(database.AppointmentsColl)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Availability and occupancy lookups.
		{
			Keys:    bson.D{{Key: "tenantId", Value: 1}, {Key: "professionalId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("tenant_professional_date_idx"),
		},
		// Backstop for the one-active-appointment-per-slot invariant.
		{
			Keys: bson.D{{Key: "professionalId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_scheduled_slot").
				SetPartialFilterExpression(bson.M{
					"status":         models.StatusScheduled,
					"professionalId": bson.M{"$exists": true},
				}),
		},
		{
			Keys:    bson.D{{Key: "tenantId", Value: 1}, {Key: "recurrenceRuleId", Value: 1}},
			Options: options.Index().SetName("tenant_rule_idx").SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("status_date_idx"),
		},
	}

	if _, err := coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}
	return nil
}
