package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"resumeforge/internal/parsing"
)

// PGRepo implements ResumesRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new resume row.
func (r *PGRepo) Create(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO resumes (
    id,
    user_id,
    resume_name,
    markdown_content,
    json_data,
    ats_score,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	jsonData, err := marshalJSONData(rec.JSONData)
	if err != nil {
		return err
	}

	var atsScore sql.NullInt64
	if rec.AtsScore != nil {
		atsScore = sql.NullInt64{Int64: int64(*rec.AtsScore), Valid: true}
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		rec.ID,
		rec.UserID,
		rec.Name,
		rec.MarkdownContent,
		jsonData,
		atsScore,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return err
}

// Update overwrites an existing row owned by the user.
func (r *PGRepo) Update(ctx context.Context, rec Record) error {
	const query = `
UPDATE resumes
SET resume_name = $1, markdown_content = $2, json_data = $3, ats_score = $4, updated_at = $5
WHERE id = $6 AND user_id = $7`

	jsonData, err := marshalJSONData(rec.JSONData)
	if err != nil {
		return err
	}

	var atsScore sql.NullInt64
	if rec.AtsScore != nil {
		atsScore = sql.NullInt64{Int64: int64(*rec.AtsScore), Valid: true}
	}

	res, err := r.DB.ExecContext(
		ctx,
		query,
		rec.Name,
		rec.MarkdownContent,
		jsonData,
		atsScore,
		rec.UpdatedAt,
		rec.ID,
		rec.UserID,
	)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID fetches a resume by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userId, resumeId string) (Record, error) {
	const query = `
SELECT id, user_id, resume_name, markdown_content, json_data, ats_score, created_at, updated_at
FROM resumes
WHERE user_id = $1 AND id = $2
LIMIT 1`
	rec, err := scanRecord(r.DB.QueryRowContext(ctx, query, userId, resumeId))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return rec, nil
}

// ListByUser lists resumes ordered most-recently-updated first.
func (r *PGRepo) ListByUser(ctx context.Context, userId string) ([]Record, error) {
	const query = `
SELECT id, user_id, resume_name, markdown_content, json_data, ats_score, created_at, updated_at
FROM resumes
WHERE user_id = $1
ORDER BY updated_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Delete removes a resume owned by the user.
func (r *PGRepo) Delete(ctx context.Context, userId, resumeId string) error {
	const query = `DELETE FROM resumes WHERE user_id = $1 AND id = $2`
	res, err := r.DB.ExecContext(ctx, query, userId, resumeId)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	var jsonData sql.NullString
	var atsScore sql.NullInt64
	if err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Name,
		&rec.MarkdownContent,
		&jsonData,
		&atsScore,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return Record{}, err
	}
	if jsonData.Valid && jsonData.String != "" {
		var parsed parsing.ParsedResumeData
		if err := json.Unmarshal([]byte(jsonData.String), &parsed); err != nil {
			return Record{}, err
		}
		rec.JSONData = &parsed
	}
	if atsScore.Valid {
		score := int(atsScore.Int64)
		rec.AtsScore = &score
	}
	return rec, nil
}

func marshalJSONData(data *parsing.ParsedResumeData) (sql.NullString, error) {
	if data == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

var _ ResumesRepo = (*PGRepo)(nil)
