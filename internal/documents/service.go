package documents

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"resumeforge/internal/shared/storage/object"
)

// Service contains business logic for uploaded documents.
type Service struct {
	Store object.ObjectStore
	Repo  DocumentsRepo
}

// Upload saves the file to object storage and records the document.
func (s *Service) Upload(ctx context.Context, userId, fileName string, r io.Reader) (Document, error) {
	if fileName == "" {
		return Document{}, ErrInvalidInput
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, userId, fileName, r)
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		ID:         uuid.NewString(),
		UserID:     userId,
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  size,
		StorageKey: storageKey,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}

	return doc, nil
}

// MarkExtracted records that text extraction ran for a document.
func (s *Service) MarkExtracted(ctx context.Context, userId, documentID string) error {
	return s.Repo.MarkExtracted(ctx, userId, documentID, time.Now().UTC())
}
