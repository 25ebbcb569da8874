package storage

import (
	"context"
	"io"
)

// ImageStore persists product images and returns a stable reference that
// can be stored on the product row.
type ImageStore interface {
	// Put writes the image under the given key and returns its reference.
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}
