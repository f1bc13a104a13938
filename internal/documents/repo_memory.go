package documents

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of DocumentsRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]map[string]Document // userId -> documentID -> document
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]map[string]Document),
	}
}

// Create stores a document for a user.
func (r *MemoryRepo) Create(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.data[doc.UserID] == nil {
		r.data[doc.UserID] = make(map[string]Document)
	}
	r.data[doc.UserID][doc.ID] = doc
	return nil
}

// GetByID returns a document by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userId, documentID string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.data[userId][documentID]
	if !ok {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// MarkExtracted records the extraction time, first write wins.
func (r *MemoryRepo) MarkExtracted(ctx context.Context, userId, documentID string, extractedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.data[userId][documentID]
	if !ok {
		return ErrNotFound
	}
	if doc.ExtractedAt == nil {
		doc.ExtractedAt = &extractedAt
		r.data[userId][documentID] = doc
	}
	return nil
}

var _ DocumentsRepo = (*MemoryRepo)(nil)
