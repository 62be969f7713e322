// File: database/repository/payment/proof.go
package paymentRepo

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

type PaymentProofRepository interface {
	// AttachProof stores the proof and moves the appointment to PENDING_APPROVAL in one transaction.
	AttachProof(ctx context.Context, proof *models.PaymentProof) error
}

type mongoPaymentProofRepo struct {
	client       *mongo.Client
	coll         *mongo.Collection
	appointments *mongo.Collection
}

func NewMongoPaymentProofRepo(db *mongo.Database) PaymentProofRepository {
	return &mongoPaymentProofRepo{
		client:       db.Client(),
		coll:         db.Collection(database.PaymentProofsColl),
		appointments: db.Collection(database.AppointmentsColl),
	}
}

func (r *mongoPaymentProofRepo) AttachProof(ctx context.Context, proof *models.PaymentProof) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.coll.InsertOne(sc, proof); err != nil {
			return nil, fmt.Errorf("insert payment proof: %w", err)
		}
		_, err := r.appointments.UpdateOne(sc,
			bson.M{"id": proof.AppointmentID, "tenantId": proof.TenantID},
			bson.M{"$set": bson.M{"paymentStatus": models.PaymentPendingApproval, "updatedAt": proof.CreatedAt}},
		)
		if err != nil {
			return nil, fmt.Errorf("update payment status: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("payment proof transaction failed: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes of the payment proofs collection.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := db.Collection(database.PaymentProofsColl).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "tenantId", Value: 1}, {Key: "appointmentId", Value: 1}},
		Options: options.Index().SetName("tenant_appointment_idx"),
	})
	if err != nil {
		return fmt.Errorf("failed to create payment proof indexes: %w", err)
	}
	return nil
}
