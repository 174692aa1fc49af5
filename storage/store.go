// Package storage keeps uploaded files referenced by records.
package storage

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"github.com/meinhoongagan/portfolio-api/config"
)

// FileStore saves uploads and returns the reference stored on the record.
type FileStore interface {
	Save(ctx context.Context, file *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, ref string) error
}

// New picks the backend named by STORAGE_DRIVER.
func New(cfg *config.Config) (FileStore, error) {
	switch cfg.StorageDriver {
	case "", "local":
		return NewLocal(cfg.UploadDir)
	case "cloudinary":
		return NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}

const discardTimeout = 30 * time.Second

// Discard removes ref in the background. Failures are logged only.
func Discard(store FileStore, ref string) {
	if store == nil || ref == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), discardTimeout)
		defer cancel()
		if err := store.Delete(ctx, ref); err != nil {
			log.Printf("Failed to delete file %s: %v", ref, err)
		}
	}()
}
