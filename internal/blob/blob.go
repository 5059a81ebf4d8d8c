package blob

import (
	"context"
	"io"
)

// Object is a stored blob opened for reading. Close releases the underlying
// stream.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// Storage is the object-store boundary: binary blobs keyed by a path-like
// string. Only document attachments go through it.
type Storage interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string, size int64) error
	Get(ctx context.Context, key string) (*Object, error)
	Delete(ctx context.Context, key string) error
}
