package repository

import (
	"context"
	"errors"
)

var (
	ErrBlobNotFound     = errors.New("state blob not found")
	ErrUnsupportedStore = errors.New("unsupported store driver")
)

// BlobRepository stores serialized storefront state under string keys.
// Consumers define this interface, not the storage implementations
type BlobRepository interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Close() error
}
