package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"flowmaster/config"
)

// StoredObject identifies an uploaded file.
type StoredObject struct {
	PublicID string
	URL      string
}

// StorageService stores payment proof files.
type StorageService interface {
	Upload(ctx context.Context, r io.Reader, filename, folder string) (*StoredObject, error)
	Delete(ctx context.Context, publicID string) error
	// SecureURL returns a link to a private object that expires after the given duration.
	SecureURL(ctx context.Context, publicID string, expires time.Duration) (string, error)
}

// New builds the driver selected by STORAGE_DRIVER.
func New(ctx context.Context, cfg config.Config) (StorageService, error) {
	switch cfg.StorageDriver {
	case "", "cloudinary":
		return NewCloudinaryStorage(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	case "gcs":
		return NewGCSStorage(ctx, cfg.GoogleServiceAccountFile, cfg.GCSBucket)
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
