// Package storage abstracts the object store holding uploaded media
// (gallery images, event covers, avatars).
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound is returned when a key does not exist in the store.
var ErrObjectNotFound = errors.New("storage: object not found")

// ObjectStore persists uploaded binary objects and serves them by URL.
type ObjectStore interface {
	// Put stores the object under key and returns its public URL.
	Put(ctx context.Context, key, contentType string, r io.Reader) (string, error)
	// Delete removes the object. Deleting a missing key returns
	// ErrObjectNotFound.
	Delete(ctx context.Context, key string) error
	// URL returns the public URL for a stored key without touching the
	// backend.
	URL(key string) string
}
