package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage defines the interface for object storage operations.
type FileStorage interface {
	// Upload writes an object to the storage provider and returns a
	// retrievable URL for it. Uploads are synchronous; the caller has
	// already buffered the file.
	Upload(ctx context.Context, objectKey string, contentType string, body io.Reader, size int64) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for downloading/viewing an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}

// ObjectKey builds the storage key for an uploaded file:
// {category}/{ownerId}/{timestamp}_{field}.{ext}
func ObjectKey(category, ownerID, field, ext string) string {
	name := fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), field, ext)
	return path.Join(category, ownerID, name)
}
