package storage

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// BlobStore keeps opaque values under string keys. A Set replaces the whole
// value; there is no versioning, so concurrent writers overwrite each other.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
