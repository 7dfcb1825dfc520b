package storage

import (
	"context"

	"grambazaar/config"

	"go.uber.org/zap"
)

// ImageStore removes hosted images that catalog entries no longer reference.
// Uploads happen in the browser widget; the backend only stores public ids.
type ImageStore interface {
	Destroy(ctx context.Context, publicID string) error
}

// NewImageStoreFromConfig returns a Cloudinary-backed store when credentials
// are configured and a no-op store otherwise.
func NewImageStoreFromConfig() (ImageStore, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		zap.L().Warn("Cloudinary credentials not set; image cleanup disabled")
		return NoopImageStore{}, nil
	}
	return NewCloudinaryImageStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
}

// NoopImageStore discards destroy requests.
type NoopImageStore struct{}

func (NoopImageStore) Destroy(context.Context, string) error { return nil }

// DestroyBestEffort removes publicID and logs instead of failing.
func DestroyBestEffort(ctx context.Context, store ImageStore, publicID string) {
	if store == nil || publicID == "" {
		return
	}
	if err := store.Destroy(ctx, publicID); err != nil {
		zap.L().Warn("Failed to destroy image", zap.String("publicId", publicID), zap.Error(err))
	}
}
