package storage

import (
	"context"
	"io"
)

// ObjectStore is the object-storage surface the upload proxy needs. Content
// records only ever hold the resulting public URL; the store is otherwise
// opaque to the rest of the application.
type ObjectStore interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	Bucket() string
}
