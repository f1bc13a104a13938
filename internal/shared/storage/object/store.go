package object

import (
	"context"
	"io"
)

// ObjectStore persists uploaded resume files. Save places the object under an
// owner-derived key and reports the stored size and detected MIME type; Open
// streams a previously saved object back by its storage key.
type ObjectStore interface {
	Save(ctx context.Context, userId string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}
