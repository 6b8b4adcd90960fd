package sections

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoReplaceForResumeDeletesThenInserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()
	items := []Section{
		{
			ID:          "sec-1",
			ResumeID:    "res-1",
			SectionType: "contact",
			Title:       "CONTACT",
			Content:     map[string]any{"email": "a@b.com"},
			OrderIndex:  0,
			ATSScore:    50,
			CreatedAt:   now,
		},
		{
			ID:          "sec-2",
			ResumeID:    "res-1",
			SectionType: "experience",
			Title:       "EXPERIENCE",
			OrderIndex:  1,
			ATSScore:    70,
			CreatedAt:   now,
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM resume_sections").
		WithArgs("res-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO resume_sections").
		WithArgs("sec-1", "res-1", "contact", "CONTACT", sqlmock.AnyArg(), 0, 50, now).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO resume_sections").
		WithArgs("sec-2", "res-1", "experience", "EXPERIENCE", sqlmock.AnyArg(), 1, 70, now).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := repo.ReplaceForResume(context.Background(), "res-1", items); err != nil {
		t.Fatalf("ReplaceForResume: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListByResumeScansContent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "resume_id", "section_type", "title", "content", "order_index", "ats_score", "created_at"}).
		AddRow("sec-1", "res-1", "skills", "SKILLS", []byte(`{"skills":["Go","SQL"]}`), 0, 65, now)

	mock.ExpectQuery("SELECT id, resume_id, section_type").
		WithArgs("res-1").
		WillReturnRows(rows)

	got, err := repo.ListByResume(context.Background(), "res-1")
	if err != nil {
		t.Fatalf("ListByResume: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 section, got %d", len(got))
	}
	skills, ok := got[0].Content["skills"].([]any)
	if !ok || len(skills) != 2 {
		t.Fatalf("content not decoded: %#v", got[0].Content)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateContentMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("UPDATE resume_sections").
		WithArgs(sqlmock.AnyArg(), 80, "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateContent(context.Background(), "missing", map[string]any{"text": "x"}, 80)
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
