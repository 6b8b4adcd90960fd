package sections

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. Content is stored as JSONB.
type PGRepo struct {
	DB *sql.DB
}

var _ Repo = (*PGRepo)(nil)

// ReplaceForResume swaps the full section set for a resume in one transaction.
func (r *PGRepo) ReplaceForResume(ctx context.Context, resumeID string, items []Section) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sections: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM resume_sections WHERE resume_id = $1`, resumeID); err != nil {
		return fmt.Errorf("sections: delete existing: %w", err)
	}

	const insert = `
INSERT INTO resume_sections (id, resume_id, section_type, title, content, order_index, ats_score, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for _, item := range items {
		content, err := marshalContent(item.Content)
		if err != nil {
			return fmt.Errorf("sections: marshal content: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insert,
			item.ID,
			resumeID,
			item.SectionType,
			item.Title,
			content,
			item.OrderIndex,
			item.ATSScore,
			item.CreatedAt,
		); err != nil {
			return fmt.Errorf("sections: insert: %w", err)
		}
	}

	return tx.Commit()
}

// ListByResume returns sections in document order.
func (r *PGRepo) ListByResume(ctx context.Context, resumeID string) ([]Section, error) {
	const query = `
SELECT id, resume_id, section_type, title, content, order_index, ats_score, created_at
FROM resume_sections
WHERE resume_id = $1
ORDER BY order_index ASC`

	rows, err := r.DB.QueryContext(ctx, query, resumeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Section
	for rows.Next() {
		sec, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sec)
	}
	return out, rows.Err()
}

// GetByID returns a section by ID.
func (r *PGRepo) GetByID(ctx context.Context, sectionID string) (Section, error) {
	const query = `
SELECT id, resume_id, section_type, title, content, order_index, ats_score, created_at
FROM resume_sections
WHERE id = $1`

	row := r.DB.QueryRowContext(ctx, query, sectionID)
	sec, err := scanSection(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Section{}, ErrNotFound
		}
		return Section{}, err
	}
	return sec, nil
}

// UpdateContent replaces a section's content and score.
func (r *PGRepo) UpdateContent(ctx context.Context, sectionID string, content map[string]any, atsScore int) error {
	raw, err := marshalContent(content)
	if err != nil {
		return fmt.Errorf("sections: marshal content: %w", err)
	}
	const query = `UPDATE resume_sections SET content = $1, ats_score = $2 WHERE id = $3`
	res, err := r.DB.ExecContext(ctx, query, raw, atsScore, sectionID)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByResume removes all sections for a resume.
func (r *PGRepo) DeleteByResume(ctx context.Context, resumeID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM resume_sections WHERE resume_id = $1`, resumeID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSection(row rowScanner) (Section, error) {
	var sec Section
	var content []byte
	if err := row.Scan(
		&sec.ID,
		&sec.ResumeID,
		&sec.SectionType,
		&sec.Title,
		&content,
		&sec.OrderIndex,
		&sec.ATSScore,
		&sec.CreatedAt,
	); err != nil {
		return Section{}, err
	}
	if len(content) > 0 {
		if err := json.Unmarshal(content, &sec.Content); err != nil {
			return Section{}, fmt.Errorf("sections: unmarshal content: %w", err)
		}
	}
	return sec, nil
}

func marshalContent(content map[string]any) ([]byte, error) {
	if content == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(content)
}
