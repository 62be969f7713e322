// File: database/repository/appointment/queries.go
package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"flowmaster/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoAppointmentRepo) List(ctx context.Context, tenantID string, f models.AppointmentFilter) ([]models.Appointment, error) {
	filter := bson.M{"tenantId": tenantID}
	if f.ProfessionalID != "" {
		filter["professionalId"] = f.ProfessionalID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if dr := dateRange(f.From, f.To, false); len(dr) > 0 {
		filter["date"] = dr
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
}

func (r *mongoAppointmentRepo) ListActiveInRange(ctx context.Context, tenantID, professionalID string, from, to time.Time) ([]models.Appointment, error) {
	filter := bson.M{
		"tenantId":       tenantID,
		"professionalId": professionalID,
		"date":           bson.M{"$gte": from, "$lt": to},
		"status":         bson.M{"$ne": models.StatusCancelled},
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
}

func (r *mongoAppointmentRepo) ListScheduledBetween(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	filter := bson.M{
		"date":   bson.M{"$gte": from, "$lte": to},
		"status": models.StatusScheduled,
		"userId": bson.M{"$exists": true, "$ne": ""},
	}
	return r.find(ctx, filter, nil)
}

func (r *mongoAppointmentRepo) ListCompleted(ctx context.Context, tenantID string, f models.ReportFilter) ([]models.Appointment, error) {
	filter := bson.M{"tenantId": tenantID, "status": models.StatusCompleted}
	if f.ProfessionalID != "" {
		filter["professionalId"] = f.ProfessionalID
	}
	if dr := dateRange(f.From, f.To, true); len(dr) > 0 {
		filter["date"] = dr
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
}

func (r *mongoAppointmentRepo) CountByRule(ctx context.Context, tenantID, ruleID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"tenantId": tenantID, "recurrenceRuleId": ruleID})
	if err != nil {
		return 0, fmt.Errorf("error counting appointments of rule %s: %w", ruleID, err)
	}
	return n, nil
}

func (r *mongoAppointmentRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var findOpts []*options.FindOptions
	if opts != nil {
		findOpts = append(findOpts, opts)
	}
	cursor, err := r.coll.Find(ctx, filter, findOpts...)
	if err != nil {
		return nil, fmt.Errorf("error finding appointments: %w", err)
	}
	defer cursor.Close(ctx)

	appts := make([]models.Appointment, 0)
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

// dateRange builds a {$gte, $lt|$lte} condition from optional bounds.
func dateRange(from, to *time.Time, inclusiveEnd bool) bson.M {
	cond := bson.M{}
	if from != nil {
		cond["$gte"] = *from
	}
	if to != nil {
		if inclusiveEnd {
			cond["$lte"] = *to
		} else {
			cond["$lt"] = *to
		}
	}
	return cond
}
