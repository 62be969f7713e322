package database

import (
	"context"
	"fmt"
	"time"

	"flowmaster/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	AppointmentsColl    = "appointments"
	ProfessionalsColl   = "professionals"
	ServicesColl        = "services"
	SchedulesColl       = "schedules"
	RecurrenceRulesColl = "recurrence_rules"
	TenantConfigsColl   = "tenant_configs"
	PaymentProofsColl   = "payment_proofs"
	ReviewsColl         = "reviews"
	NotificationsColl   = "notifications"
	UsersColl           = "users"
)

// Connect opens the MongoDB connection and returns the application database.
// Transactions require the server to run as a replica set.
func Connect(ctx context.Context) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(config.AppConfig.DatabaseURL)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, client.Database(config.AppConfig.DatabaseName), nil
}
