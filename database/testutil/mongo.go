// Package testutil connects integration tests to a live MongoDB.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoURIEnv names the replica-set URI integration tests run against.
// Tests that need it are skipped when it is unset.
const MongoURIEnv = "FLOWMASTER_TEST_MONGO_URI"

const connectionTimeout = 10 * time.Second

type TestEnv struct {
	MongoURI     string
	DatabaseName string
}

// NewTestEnv reads the environment and skips t when no MongoDB is configured.
// Every env gets its own database so parallel packages do not collide.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	uri := os.Getenv(MongoURIEnv)
	if uri == "" {
		t.Skipf("%s not set; skipping MongoDB integration test", MongoURIEnv)
	}
	return &TestEnv{
		MongoURI:     uri,
		DatabaseName: "flowmaster_test_" + uuid.NewString()[:8],
	}
}

// Setup connects and returns a fresh database. Cleanup is registered on t.
func (e *TestEnv) Setup(t *testing.T) *mongo.Database {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(e.MongoURI))
	if err != nil {
		t.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Fatalf("failed to ping MongoDB: %v", err)
	}

	db := client.Database(e.DatabaseName)
	t.Cleanup(func() { e.Cleanup(t, db) })
	return db
}

// Cleanup drops the test database and disconnects.
func (e *TestEnv) Cleanup(t *testing.T, db *mongo.Database) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if err := db.Drop(ctx); err != nil {
		t.Logf("warning: failed to drop %s: %v", e.DatabaseName, err)
	}
	if err := db.Client().Disconnect(ctx); err != nil {
		t.Logf("warning: failed to disconnect from MongoDB: %v", err)
	}
}
