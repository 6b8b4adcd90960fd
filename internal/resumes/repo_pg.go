package resumes

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

var _ Repo = (*PGRepo)(nil)

const selectColumns = `id, user_id, file_name, source, raw_text, quality, overall_score, created_at, updated_at`

// Create inserts a new resume.
func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (id, user_id, file_name, source, raw_text, quality, overall_score, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	source := resume.Source
	if source == "" {
		source = SourceUpload
	}

	_, err := r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.FileName,
		source,
		resume.RawText,
		resume.Quality,
		resume.OverallScore,
		resume.CreatedAt,
		resume.UpdatedAt,
	)
	return err
}

// GetByID returns a resume owned by the user.
func (r *PGRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	query := `
SELECT ` + selectColumns + `
FROM resumes
WHERE id = $1 AND user_id = $2`

	resume, err := scanResume(r.DB.QueryRowContext(ctx, query, resumeID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return resume, nil
}

// ListByUser returns a user's resumes, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	query := `
SELECT ` + selectColumns + `
FROM resumes
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

// UpdateAnalysis stores the outcome of a parse run.
func (r *PGRepo) UpdateAnalysis(ctx context.Context, resumeID, rawText, quality string, overallScore int, updatedAt time.Time) error {
	const query = `
UPDATE resumes
SET raw_text = $1, quality = $2, overall_score = $3, updated_at = $4
WHERE id = $5`
	res, err := r.DB.ExecContext(ctx, query, rawText, quality, overallScore, updatedAt, resumeID)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateOverallScore stores a recomputed overall score.
func (r *PGRepo) UpdateOverallScore(ctx context.Context, resumeID string, score int, updatedAt time.Time) error {
	const query = `UPDATE resumes SET overall_score = $1, updated_at = $2 WHERE id = $3`
	res, err := r.DB.ExecContext(ctx, query, score, updatedAt, resumeID)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a resume owned by the user. Sections and suggestions cascade.
func (r *PGRepo) Delete(ctx context.Context, userID, resumeID string) error {
	const query = `DELETE FROM resumes WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, resumeID, userID)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// OwnerOf returns the owning user ID for a resume.
func (r *PGRepo) OwnerOf(ctx context.Context, resumeID string) (string, error) {
	const query = `SELECT user_id FROM resumes WHERE id = $1`
	var userID string
	if err := r.DB.QueryRowContext(ctx, query, resumeID).Scan(&userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return userID, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var resume Resume
	if err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.FileName,
		&resume.Source,
		&resume.RawText,
		&resume.Quality,
		&resume.OverallScore,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	); err != nil {
		return Resume{}, err
	}
	return resume, nil
}
