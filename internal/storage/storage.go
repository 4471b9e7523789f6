// Package storage holds uploaded provider documents (license scans, photos,
// ad images) behind a backend-agnostic interface.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an object key does not exist
var ErrNotFound = fmt.Errorf("object not found")

// Store defines the object storage interface
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Close() error
}

// ObjectKey builds a unique storage key under the given prefix, e.g.
// "licenses/<provider-id>/20250101_120000_<random>.pdf".
func ObjectKey(prefix string, ownerID uuid.UUID, ext string) string {
	ts := time.Now().UTC().Format("20060102_150405")
	return fmt.Sprintf("%s/%s/%s_%s%s", prefix, ownerID, ts, uuid.NewString()[:8], ext)
}
