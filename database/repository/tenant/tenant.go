// File: database/repository/tenant/tenant.go
package tenantRepo

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

var ErrNotFound = errors.New("tenant config not found")

type TenantConfigRepository interface {
	Get(ctx context.Context, tenantID string) (*models.TenantConfig, error)
	// GetOrCreate returns the config, inserting an empty one on first access.
	GetOrCreate(ctx context.Context, tenantID string) (*models.TenantConfig, error)
	Save(ctx context.Context, cfg *models.TenantConfig) error
}

type mongoTenantConfigRepo struct {
	coll *mongo.Collection
}

func NewMongoTenantConfigRepo(db *mongo.Database) TenantConfigRepository {
	return &mongoTenantConfigRepo{coll: db.Collection(database.TenantConfigsColl)}
}

func (r *mongoTenantConfigRepo) Get(ctx context.Context, tenantID string) (*models.TenantConfig, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var cfg models.TenantConfig
	err := r.coll.FindOne(ctx, bson.M{"tenantId": tenantID}).Decode(&cfg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching tenant config %s: %w", tenantID, err)
	}
	return &cfg, nil
}

func (r *mongoTenantConfigRepo) GetOrCreate(ctx context.Context, tenantID string) (*models.TenantConfig, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	update := bson.M{"$setOnInsert": bson.M{"tenantId": tenantID, "createdAt": now, "updatedAt": now}}

	var cfg models.TenantConfig
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"tenantId": tenantID}, update, opts).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("error upserting tenant config %s: %w", tenantID, err)
	}
	return &cfg, nil
}

func (r *mongoTenantConfigRepo) Save(ctx context.Context, cfg *models.TenantConfig) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"tenantId": cfg.TenantID}, cfg, opts); err != nil {
		return fmt.Errorf("failed to save tenant config %s: %w", cfg.TenantID, err)
	}
	return nil
}

// EnsureIndexes creates the indexes of the tenant configs collection.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := db.Collection(database.TenantConfigsColl).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "tenantId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_tenant"),
	})
	if err != nil {
		return fmt.Errorf("failed to create tenant config indexes: %w", err)
	}
	return nil
}
