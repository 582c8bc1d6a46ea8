package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrInvalidKey      = errors.New("invalid image key")
	ErrTooLarge        = errors.New("image too large")
	ErrNotFound        = errors.New("image not found")
)

// ImageStore keeps vehicle pictures. Keys are opaque file names produced by
// NewKey; callers never choose the path.
type ImageStore interface {
	// NewKey returns a fresh key for an image of the given MIME type.
	NewKey(contentType string) (string, error)
	Save(ctx context.Context, key string, r io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, key string) (bool, int64, error)
	Delete(ctx context.Context, key string) error
	// URL is the public address the API serves the image from.
	URL(key string) string
}
