package resumes

import "context"

// ResumesRepo defines persistence operations for saved resumes. Every
// operation is scoped to the owning user; a row belonging to someone else is
// indistinguishable from a missing row.
type ResumesRepo interface {
	Create(ctx context.Context, rec Record) error
	Update(ctx context.Context, rec Record) error
	GetByID(ctx context.Context, userId, resumeId string) (Record, error)
	ListByUser(ctx context.Context, userId string) ([]Record, error)
	Delete(ctx context.Context, userId, resumeId string) error
}
