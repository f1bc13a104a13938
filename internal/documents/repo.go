package documents

import (
	"context"
	"time"
)

// DocumentsRepo defines persistence operations for uploaded documents.
type DocumentsRepo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, userId, documentID string) (Document, error)
	MarkExtracted(ctx context.Context, userId, documentID string, extractedAt time.Time) error
}
