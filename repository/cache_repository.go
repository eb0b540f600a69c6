package repository

import (
	"context"
	"time"
)

// CacheRepository stores opaque byte blobs (seal images) for a limited time.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
