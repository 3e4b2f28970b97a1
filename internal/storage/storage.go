package storage

import (
	"context"
	"time"
)

// DefaultPresignedURLExpiry bounds how long a presigned photo URL stays valid.
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage abstracts the object store holding weekly progress photos.
// Clients upload directly via presigned URLs; the API never proxies bytes.
type FileStorage interface {
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)
	DeleteObject(ctx context.Context, objectKey string) error
}
