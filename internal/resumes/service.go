package resumes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resumeforge/internal/parsing"
)

// Service contains business logic for saved resumes.
type Service struct {
	Repo ResumesRepo
}

// SaveInput is everything needed to create or update a saved resume.
type SaveInput struct {
	ResumeID        string
	Name            string
	MarkdownContent string
	JSONData        *parsing.ParsedResumeData
	AtsScore        *int
}

// Save creates a new resume or, when ResumeID is set, updates an existing one
// in place. Updates never change ownership or creation time.
func (s *Service) Save(ctx context.Context, userId string, in SaveInput) (Record, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Record{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.MarkdownContent) == "" {
		return Record{}, fmt.Errorf("%w: markdownContent is required", ErrInvalidInput)
	}

	now := time.Now().UTC()

	if in.ResumeID != "" {
		existing, err := s.Repo.GetByID(ctx, userId, in.ResumeID)
		if err != nil {
			return Record{}, err
		}
		existing.Name = in.Name
		existing.MarkdownContent = in.MarkdownContent
		existing.JSONData = in.JSONData
		existing.AtsScore = in.AtsScore
		existing.UpdatedAt = now
		if err := s.Repo.Update(ctx, existing); err != nil {
			return Record{}, err
		}
		return existing, nil
	}

	rec := Record{
		ID:              uuid.NewString(),
		UserID:          userId,
		Name:            in.Name,
		MarkdownContent: in.MarkdownContent,
		JSONData:        in.JSONData,
		AtsScore:        in.AtsScore,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Get returns one resume owned by the user.
func (s *Service) Get(ctx context.Context, userId, resumeId string) (Record, error) {
	return s.Repo.GetByID(ctx, userId, resumeId)
}

// List returns the user's resumes, most recently updated first.
func (s *Service) List(ctx context.Context, userId string) ([]Record, error) {
	return s.Repo.ListByUser(ctx, userId)
}

// Delete removes one resume owned by the user. Deleting an already-deleted or
// foreign resume reports ErrNotFound.
func (s *Service) Delete(ctx context.Context, userId, resumeId string) error {
	return s.Repo.Delete(ctx, userId, resumeId)
}
