package suggestions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

var _ Repo = (*PGRepo)(nil)

// CreateBatch inserts a set of suggestions in one transaction.
func (r *PGRepo) CreateBatch(ctx context.Context, items []Suggestion) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("suggestions: begin: %w", err)
	}
	defer tx.Rollback()

	const insert = `
INSERT INTO ats_suggestions (id, resume_id, section_id, kind, priority, title, description, reason, original_text, suggested_text, impact, position, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	for _, item := range items {
		var sectionID sql.NullString
		if item.SectionID != "" {
			sectionID = sql.NullString{String: item.SectionID, Valid: true}
		}
		status := item.Status
		if status == "" {
			status = StatusPending
		}
		if _, err := tx.ExecContext(ctx, insert,
			item.ID,
			item.ResumeID,
			sectionID,
			item.Kind,
			item.Priority,
			item.Title,
			item.Description,
			item.Reason,
			item.OriginalText,
			item.SuggestedText,
			item.Impact,
			item.Position,
			status,
			item.CreatedAt,
		); err != nil {
			return fmt.Errorf("suggestions: insert: %w", err)
		}
	}

	return tx.Commit()
}

const selectColumns = `id, resume_id, section_id, kind, priority, title, description, reason, original_text, suggested_text, impact, position, status, applied_at, created_at`

// ListByResume returns suggestions for a resume, priority first then in the
// order they were generated.
func (r *PGRepo) ListByResume(ctx context.Context, resumeID string) ([]Suggestion, error) {
	query := `
SELECT ` + selectColumns + `
FROM ats_suggestions
WHERE resume_id = $1
ORDER BY
    CASE priority
        WHEN 'critical' THEN 1
        WHEN 'high' THEN 2
        WHEN 'medium' THEN 3
        WHEN 'low' THEN 4
        ELSE 5
    END ASC,
    created_at ASC,
    position ASC`

	rows, err := r.DB.QueryContext(ctx, query, resumeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Suggestion
	for rows.Next() {
		item, err := scanSuggestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// GetByID returns a suggestion by ID.
func (r *PGRepo) GetByID(ctx context.Context, suggestionID string) (Suggestion, error) {
	query := `
SELECT ` + selectColumns + `
FROM ats_suggestions
WHERE id = $1`

	item, err := scanSuggestion(r.DB.QueryRowContext(ctx, query, suggestionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Suggestion{}, ErrNotFound
		}
		return Suggestion{}, err
	}
	return item, nil
}

// SetStatus updates a suggestion's status and applied timestamp.
func (r *PGRepo) SetStatus(ctx context.Context, suggestionID string, status string, appliedAt *time.Time) error {
	var applied sql.NullTime
	if appliedAt != nil {
		applied = sql.NullTime{Time: *appliedAt, Valid: true}
	}
	const query = `UPDATE ats_suggestions SET status = $1, applied_at = $2 WHERE id = $3`
	res, err := r.DB.ExecContext(ctx, query, status, applied, suggestionID)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePendingByResume removes pending suggestions for a resume.
func (r *PGRepo) DeletePendingByResume(ctx context.Context, resumeID string) error {
	const query = `DELETE FROM ats_suggestions WHERE resume_id = $1 AND status = $2`
	_, err := r.DB.ExecContext(ctx, query, resumeID, StatusPending)
	return err
}

// DeleteByResume removes all suggestions for a resume.
func (r *PGRepo) DeleteByResume(ctx context.Context, resumeID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM ats_suggestions WHERE resume_id = $1`, resumeID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSuggestion(row rowScanner) (Suggestion, error) {
	var item Suggestion
	var sectionID sql.NullString
	var appliedAt sql.NullTime
	if err := row.Scan(
		&item.ID,
		&item.ResumeID,
		&sectionID,
		&item.Kind,
		&item.Priority,
		&item.Title,
		&item.Description,
		&item.Reason,
		&item.OriginalText,
		&item.SuggestedText,
		&item.Impact,
		&item.Position,
		&item.Status,
		&appliedAt,
		&item.CreatedAt,
	); err != nil {
		return Suggestion{}, err
	}
	if sectionID.Valid {
		item.SectionID = sectionID.String
	}
	if appliedAt.Valid {
		item.AppliedAt = &appliedAt.Time
	}
	return item, nil
}
