package storage

import (
	"context"
	"io"
)

// Storage persists uploaded objects under flat keys.
type Storage interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
}
