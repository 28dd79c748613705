package storage

import (
	"context"
	"io"
)

// MediaStore is the external media host. The service layer never
// inspects file bytes; it hands over a stream and gets back a public
// reference for the stored object.
type MediaStore interface {
	Upload(ctx context.Context, folder string, filename string, r io.Reader, size int64) (string, error)
	Remove(ctx context.Context, objectURL string) error
}
