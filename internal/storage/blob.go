package storage

import (
	"context"
	"io"
)

// BlobStore is where uploaded book files live. Put returns the canonical
// key; PublicURL turns a key into the URL handed back to clients.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	PublicURL(key string) string
}
