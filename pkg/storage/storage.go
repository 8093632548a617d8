package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/filecraft/extractor/pkg/logger"
	"github.com/filecraft/extractor/pkg/storage/minio"
	"github.com/filecraft/extractor/pkg/storage/s3"
)

// StorageType selects the object store backend.
type StorageType string

const (
	StorageTypeS3    StorageType = "s3"
	StorageTypeMinio StorageType = "minio"
)

// Storage holds uploaded file bytes and extraction result JSON for the batch
// API. The extraction pipeline itself never touches storage.
type Storage interface {
	Store(ctx context.Context, reader io.Reader, key string) (string, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	CleanupBefore(ctx context.Context, threshold time.Time) error
}

// NewStorage is the backend factory.
func NewStorage(storageType StorageType, log logger.Logger) (Storage, error) {
	switch storageType {
	case StorageTypeS3:
		return s3.GetClient(log)
	case StorageTypeMinio:
		return minio.GetClient(log)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}
}
