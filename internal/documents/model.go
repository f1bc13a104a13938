package documents

import (
	"errors"
	"time"
)

// Sentinel errors for the documents domain.
var (
	ErrNotFound     = errors.New("document not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Document records an uploaded file held in object storage.
type Document struct {
	ID          string
	UserID      string
	FileName    string
	MimeType    string
	SizeBytes   int64
	StorageKey  string
	ExtractedAt *time.Time
	CreatedAt   time.Time
}
