package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// CloudinaryStorage implements StorageService using Cloudinary.
type CloudinaryStorage struct {
	cld       *cloudinary.Cloudinary
	cloudName string
	apiSecret string
}

func NewCloudinaryStorage(cloudName, apiKey, apiSecret string) (*CloudinaryStorage, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStorage{cld: cld, cloudName: cloudName, apiSecret: apiSecret}, nil
}

func (s *CloudinaryStorage) Upload(ctx context.Context, r io.Reader, filename, folder string) (*StoredObject, error) {
	result, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       folder,
		PublicID:     publicIDFor(filename),
		ResourceType: "auto",
		Overwrite:    boolPtr(false),
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary: failed to upload file: %w", err)
	}
	if result.PublicID == "" {
		return nil, fmt.Errorf("cloudinary: no public ID returned")
	}
	return &StoredObject{PublicID: result.PublicID, URL: result.SecureURL}, nil
}

func (s *CloudinaryStorage) Delete(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("cloudinary: failed to delete file: %w", err)
	}
	return nil
}

// SecureURL signs "expires_at" and "public_id" with the API secret.
func (s *CloudinaryStorage) SecureURL(_ context.Context, publicID string, expires time.Duration) (string, error) {
	expiresAt := time.Now().Add(expires).Unix()
	signature := computeSHA1(fmt.Sprintf("expires_at=%d&public_id=%s%s", expiresAt, publicID, s.apiSecret))
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/authenticated/s--%s--/expires_%d/%s",
		s.cloudName, signature, expiresAt, publicID), nil
}

func computeSHA1(input string) string {
	h := sha1.New()
	h.Write([]byte(input))
	return hex.EncodeToString(h.Sum(nil))
}

// publicIDFor keeps the base name readable and makes it unique.
func publicIDFor(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if base == "" || base == "." {
		return uuid.New().String()
	}
	return base + "-" + uuid.New().String()[:8]
}

func boolPtr(b bool) *bool { return &b }
