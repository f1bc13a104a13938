package resumes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"resumeforge/internal/parsing"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreateStoresJSONAndScore(t *testing.T) {
	repo, mock := newMockRepo(t)

	score := 75
	rec := Record{
		ID:              "resume-1",
		UserID:          "user-1",
		Name:            "Backend Resume",
		MarkdownContent: "# Ada",
		JSONData:        &parsing.ParsedResumeData{Name: "Ada", RawText: "Ada"},
		AtsScore:        &score,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO resumes").
		WithArgs(
			rec.ID,
			rec.UserID,
			rec.Name,
			rec.MarkdownContent,
			sqlmock.AnyArg(), // json_data
			sqlmock.AnyArg(), // ats_score
			rec.CreatedAt,
			rec.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), rec); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateMissingRowIsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE resumes").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), Record{ID: "missing", UserID: "user-1", Name: "n", MarkdownContent: "m"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoGetByIDScansNullableColumns(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "resume_name", "markdown_content", "json_data", "ats_score", "created_at", "updated_at",
	}).AddRow("resume-1", "user-1", "Backend Resume", "# Ada", `{"name":"Ada","rawText":"Ada"}`, 75, now, now)

	mock.ExpectQuery("SELECT .+ FROM resumes").
		WithArgs("user-1", "resume-1").
		WillReturnRows(rows)

	rec, err := repo.GetByID(context.Background(), "user-1", "resume-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if rec.JSONData == nil || rec.JSONData.Name != "Ada" {
		t.Fatalf("json_data not decoded: %+v", rec.JSONData)
	}
	if rec.AtsScore == nil || *rec.AtsScore != 75 {
		t.Fatalf("ats_score not decoded: %v", rec.AtsScore)
	}
}

func TestPGRepoGetByIDMissingRowIsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT .+ FROM resumes").
		WithArgs("user-1", "missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "resume_name", "markdown_content", "json_data", "ats_score", "created_at", "updated_at",
		}))

	_, err := repo.GetByID(context.Background(), "user-1", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoDeleteMissingRowIsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM resumes").
		WithArgs("user-1", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "user-1", "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
