// File: database/repository/review/review.go
package reviewRepo

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

var ErrAlreadyReviewed = errors.New("appointment already reviewed")

type ReviewRepository interface {
	ExistsForAppointment(ctx context.Context, appointmentID string) (bool, error)
	// CreateAndRecalculate inserts the review and refreshes the professional's average
	// rating in one transaction. It returns the new average.
	CreateAndRecalculate(ctx context.Context, review *models.Review) (float64, error)
}

type mongoReviewRepo struct {
	client        *mongo.Client
	coll          *mongo.Collection
	professionals *mongo.Collection
}

func NewMongoReviewRepo(db *mongo.Database) ReviewRepository {
	return &mongoReviewRepo{
		client:        db.Client(),
		coll:          db.Collection(database.ReviewsColl),
		professionals: db.Collection(database.ProfessionalsColl),
	}
}

func (r *mongoReviewRepo) ExistsForAppointment(ctx context.Context, appointmentID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"appointmentId": appointmentID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("error checking review of appointment %s: %w", appointmentID, err)
	}
	return n > 0, nil
}

func (r *mongoReviewRepo) CreateAndRecalculate(ctx context.Context, review *models.Review) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	sess, err := r.client.StartSession()
	if err != nil {
		return 0, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	avg, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.coll.InsertOne(sc, review); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, ErrAlreadyReviewed
			}
			return nil, fmt.Errorf("insert review: %w", err)
		}

		pipeline := mongo.Pipeline{
			{{Key: "$match", Value: bson.M{"tenantId": review.TenantID, "professionalId": review.ProfessionalID}}},
			{{Key: "$group", Value: bson.M{"_id": nil, "avg": bson.M{"$avg": "$rating"}}}},
		}
		cursor, err := r.coll.Aggregate(sc, pipeline)
		if err != nil {
			return nil, fmt.Errorf("aggregate ratings: %w", err)
		}
		var rows []struct {
			Avg float64 `bson:"avg"`
		}
		if err := cursor.All(sc, &rows); err != nil {
			return nil, fmt.Errorf("decode ratings: %w", err)
		}
		var average float64
		if len(rows) > 0 {
			average = rows[0].Avg
		}

		_, err = r.professionals.UpdateOne(sc,
			bson.M{"id": review.ProfessionalID, "tenantId": review.TenantID},
			bson.M{"$set": bson.M{"averageRating": average}},
		)
		if err != nil {
			return nil, fmt.Errorf("update professional rating: %w", err)
		}
		return average, nil
	})
	if errors.Is(err, ErrAlreadyReviewed) {
		return 0, err
	}
	if err != nil {
		return 0, fmt.Errorf("review transaction failed: %w", err)
	}
	return avg.(float64), nil
}

// EnsureIndexes creates the indexes of the reviews collection.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := db.Collection(database.ReviewsColl).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "appointmentId", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_appointment")},
		{Keys: bson.D{{Key: "tenantId", Value: 1}, {Key: "professionalId", Value: 1}}, Options: options.Index().SetName("tenant_professional_idx")},
	})
	if err != nil {
		return fmt.Errorf("failed to create review indexes: %w", err)
	}
	return nil
}
