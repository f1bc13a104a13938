package resumes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of ResumesRepo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]map[string]Record // userId -> resumeId -> record
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]map[string]Record),
	}
}

// Create stores a new resume for a user.
func (r *MemoryRepo) Create(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.data[rec.UserID] == nil {
		r.data[rec.UserID] = make(map[string]Record)
	}
	r.data[rec.UserID][rec.ID] = rec
	return nil
}

// Update overwrites an existing resume owned by the user.
func (r *MemoryRepo) Update(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	byID := r.data[rec.UserID]
	if _, ok := byID[rec.ID]; !ok {
		return ErrNotFound
	}
	byID[rec.ID] = rec
	return nil
}

// GetByID returns a resume by ID for a user.
func (r *MemoryRepo) GetByID(ctx context.Context, userId, resumeId string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.data[userId][resumeId]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// ListByUser returns a user's resumes, most recently updated first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userId string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Record, 0, len(r.data[userId]))
	for _, rec := range r.data[userId] {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// Delete removes a resume owned by the user.
func (r *MemoryRepo) Delete(ctx context.Context, userId, resumeId string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	byID := r.data[userId]
	if _, ok := byID[resumeId]; !ok {
		return ErrNotFound
	}
	delete(byID, resumeId)
	return nil
}

var _ ResumesRepo = (*MemoryRepo)(nil)
