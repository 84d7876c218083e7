// Package storage is a key to bytes blob store backed by the local filesystem.
// Keys are relative paths under the configured base directory.
package storage

import (
	"context"
	"errors"

	"github.com/JaimeStill/film-catalog/pkg/lifecycle"
)

var (
	ErrNotFound         = errors.New("storage: key not found")
	ErrPermissionDenied = errors.New("storage: permission denied")
	// ErrInvalidKey covers empty keys and keys escaping the base directory.
	ErrInvalidKey = errors.New("storage: invalid key")
)

// System stores and retrieves blobs by key.
type System interface {
	// Store writes data at key, replacing existing content.
	Store(ctx context.Context, key string, data []byte) error
	// Retrieve returns the content at key or ErrNotFound.
	Retrieve(ctx context.Context, key string) ([]byte, error)
	// Delete removes key. Deleting a missing key succeeds.
	Delete(ctx context.Context, key string) error
	// Exists reports whether key is present.
	Exists(ctx context.Context, key string) (bool, error)
	Start(lc *lifecycle.Coordinator) error
}
