package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"

	"flowmaster/config"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// GCSStorage implements StorageService on a Google Cloud Storage bucket.
type GCSStorage struct {
	client         *storage.Client
	bucketName     string
	serviceAccount *config.ServiceAccount
}

func NewGCSStorage(ctx context.Context, serviceAccountJSONPath, bucketName string) (*GCSStorage, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("GCS_BUCKET is not set")
	}
	client, err := storage.NewClient(ctx, option.WithCredentialsFile(serviceAccountJSONPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	sa, err := config.LoadServiceAccount(serviceAccountJSONPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load service account for signing URLs: %w", err)
	}
	return &GCSStorage{client: client, bucketName: bucketName, serviceAccount: sa}, nil
}

func (s *GCSStorage) Upload(ctx context.Context, r io.Reader, filename, folder string) (*StoredObject, error) {
	objectPath := path.Join(folder, uuid.New().String()+strings.ToLower(filepath.Ext(filename)))
	w := s.client.Bucket(s.bucketName).Object(objectPath).NewWriter(ctx)
	if ext := filepath.Ext(filename); ext != "" {
		w.ObjectAttrs.ContentType = mime.TypeByExtension(ext)
	}

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to copy file to storage: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	url, err := s.SecureURL(ctx, objectPath, 7*24*time.Hour)
	if err != nil {
		return nil, err
	}
	return &StoredObject{PublicID: objectPath, URL: url}, nil
}

func (s *GCSStorage) Delete(ctx context.Context, publicID string) error {
	if err := s.client.Bucket(s.bucketName).Object(publicID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *GCSStorage) SecureURL(_ context.Context, publicID string, expires time.Duration) (string, error) {
	url, err := storage.SignedURL(s.bucketName, publicID, &storage.SignedURLOptions{
		GoogleAccessID: s.serviceAccount.ClientEmail,
		PrivateKey:     []byte(strings.ReplaceAll(s.serviceAccount.PrivateKey, `\n`, "\n")),
		Method:         "GET",
		Expires:        time.Now().Add(expires),
		Scheme:         storage.SigningSchemeV4,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate signed URL: %w", err)
	}
	return url, nil
}
