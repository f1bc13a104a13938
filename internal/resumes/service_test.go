package resumes

import (
	"context"
	"errors"
	"testing"
	"time"

	"resumeforge/internal/parsing"
)

func TestSaveCreateAndGetRoundTrip(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	rec, err := svc.Save(context.Background(), "user-1", SaveInput{
		Name:            "Backend Resume",
		MarkdownContent: "# Ada Lovelace",
		JSONData:        &parsing.ParsedResumeData{Name: "Ada", RawText: "Ada"},
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("expected an id to be assigned")
	}

	got, err := svc.Get(context.Background(), "user-1", rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.MarkdownContent != "# Ada Lovelace" || got.Name != "Backend Resume" {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestSaveUpdatePreservesOwnerAndCreatedAt(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	rec, err := svc.Save(context.Background(), "user-1", SaveInput{Name: "v1", MarkdownContent: "# v1"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	created := rec.CreatedAt

	time.Sleep(time.Millisecond)
	updated, err := svc.Save(context.Background(), "user-1", SaveInput{
		ResumeID:        rec.ID,
		Name:            "v2",
		MarkdownContent: "# v2",
	})
	if err != nil {
		t.Fatalf("Save update: %v", err)
	}
	if updated.ID != rec.ID {
		t.Fatalf("update must keep the id, got %q", updated.ID)
	}
	if !updated.CreatedAt.Equal(created) {
		t.Fatal("update must not change created_at")
	}
	if !updated.UpdatedAt.After(created) {
		t.Fatal("update must advance updated_at")
	}
	if updated.MarkdownContent != "# v2" {
		t.Fatalf("markdown not updated: %q", updated.MarkdownContent)
	}
}

func TestSaveUpdateWrongOwnerIsNotFound(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	rec, err := svc.Save(context.Background(), "user-1", SaveInput{Name: "n", MarkdownContent: "m"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	_, err = svc.Save(context.Background(), "user-2", SaveInput{ResumeID: rec.ID, Name: "stolen", MarkdownContent: "m"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign resume, got %v", err)
	}
}

func TestSaveValidatesInput(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	if _, err := svc.Save(context.Background(), "user-1", SaveInput{MarkdownContent: "m"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without name, got %v", err)
	}
	if _, err := svc.Save(context.Background(), "user-1", SaveInput{Name: "n"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without markdown, got %v", err)
	}
}

func TestListOrdersByUpdatedAtDesc(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	first, _ := svc.Save(context.Background(), "user-1", SaveInput{Name: "first", MarkdownContent: "a"})
	time.Sleep(time.Millisecond)
	if _, err := svc.Save(context.Background(), "user-1", SaveInput{Name: "second", MarkdownContent: "b"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	time.Sleep(time.Millisecond)
	// Touch the first one so it becomes most recent.
	if _, err := svc.Save(context.Background(), "user-1", SaveInput{ResumeID: first.ID, Name: "first", MarkdownContent: "a2"}); err != nil {
		t.Fatalf("Save update: %v", err)
	}

	recs, err := svc.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 resumes, got %d", len(recs))
	}
	if recs[0].ID != first.ID {
		t.Fatalf("expected the touched resume first, got %q", recs[0].Name)
	}
}

func TestDeleteIsNotIdempotent(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	rec, _ := svc.Save(context.Background(), "user-1", SaveInput{Name: "n", MarkdownContent: "m"})

	if err := svc.Delete(context.Background(), "user-1", rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(context.Background(), "user-1", rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete should be ErrNotFound, got %v", err)
	}
}

func TestCrossOwnerReadsAreNotFound(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	rec, _ := svc.Save(context.Background(), "user-1", SaveInput{Name: "n", MarkdownContent: "m"})

	if _, err := svc.Get(context.Background(), "user-2", rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), "user-2", rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
