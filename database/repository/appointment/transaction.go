// File: database/repository/appointment/transaction.go
package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flowmaster/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// txnTimeout bounds one booking transaction including driver retries.
const txnTimeout = 15 * time.Second

func (r *mongoAppointmentRepo) CreateExclusive(ctx context.Context, appt *models.Appointment) error {
	return r.withProfessionalLock(ctx, appt.TenantID, appt.ProfessionalID, func(sc mongo.SessionContext) error {
		taken, err := r.slotTaken(sc, appt, "")
		if err != nil {
			return err
		}
		if taken {
			return ErrSlotTaken
		}
		if _, err := r.coll.InsertOne(sc, appt); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrSlotTaken
			}
			return fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil
	})
}

func (r *mongoAppointmentRepo) UpdateExclusive(ctx context.Context, appt *models.Appointment) error {
	return r.withProfessionalLock(ctx, appt.TenantID, appt.ProfessionalID, func(sc mongo.SessionContext) error {
		taken, err := r.slotTaken(sc, appt, appt.ID)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlotTaken
		}
		res, err := r.coll.ReplaceOne(sc, bson.M{"id": appt.ID, "tenantId": appt.TenantID}, appt)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrSlotTaken
			}
			return fmt.Errorf("replace appointment failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// withProfessionalLock runs fn in a transaction that first writes the professional document.
// Two transactions touching the same professional cannot both commit: the second one
// gets a write conflict and WithTransaction retries it after the first has committed,
// so its occupancy re-check observes the winner. Different professionals never contend.
func (r *mongoAppointmentRepo) withProfessionalLock(
	ctx context.Context,
	tenantID, professionalID string,
	fn func(sc mongo.SessionContext) error,
) error {
	ctx, cancel := context.WithTimeout(ctx, txnTimeout)
	defer cancel()

	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.professionals.UpdateOne(sc,
			bson.M{"id": professionalID, "tenantId": tenantID},
			bson.M{"$inc": bson.M{"lockVersion": 1}},
		)
		if err != nil {
			return nil, fmt.Errorf("lock professional %s: %w", professionalID, err)
		}
		if res.MatchedCount == 0 {
			return nil, ErrProfessionalNotFound
		}
		return nil, fn(sc)
	}, txnOpts)
	if err != nil {
		if errors.Is(err, ErrSlotTaken) || errors.Is(err, ErrProfessionalNotFound) || errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return nil
}

// slotTaken reports whether an active appointment other than excludeID holds appt's instant.
func (r *mongoAppointmentRepo) slotTaken(sc mongo.SessionContext, appt *models.Appointment, excludeID string) (bool, error) {
	filter := bson.M{
		"tenantId":       appt.TenantID,
		"professionalId": appt.ProfessionalID,
		"date":           appt.Date,
		"status":         bson.M{"$ne": models.StatusCancelled},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	n, err := r.coll.CountDocuments(sc, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("occupancy check failed: %w", err)
	}
	return n > 0, nil
}
