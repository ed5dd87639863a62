package interfaces

import (
	"context"
	"io"
)

// IObjectStorage abstracts the blob store holding customer documents.
type IObjectStorage interface {
	// Upload stores body under path and returns the stored path.
	Upload(ctx context.Context, path string, body io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, path string) error
	PublicURL(path string) string
}
