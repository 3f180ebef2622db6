package cache

import (
	"context"
	"errors"
)

// BlobCache sits in front of a repository for serialized state blobs.
type BlobCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

var ErrCacheMiss = errors.New("cache miss")
