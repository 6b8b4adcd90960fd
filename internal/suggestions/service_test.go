package suggestions

import (
	"context"
	"errors"
	"testing"
	"time"

	"resume-ats/internal/sections"
)

type fakeResumes struct {
	owners map[string]string
	scores map[string]int
}

func (f *fakeResumes) OwnerOf(ctx context.Context, resumeID string) (string, error) {
	owner, ok := f.owners[resumeID]
	if !ok {
		return "", errors.New("resume not found")
	}
	return owner, nil
}

func (f *fakeResumes) UpdateOverallScore(ctx context.Context, resumeID string, score int) error {
	if f.scores == nil {
		f.scores = make(map[string]int)
	}
	f.scores[resumeID] = score
	return nil
}

func newTestService(t *testing.T) (*Service, *MemoryRepo, *sections.MemoryRepo, *fakeResumes) {
	t.Helper()
	repo := NewMemoryRepo()
	secRepo := sections.NewMemoryRepo()
	resumes := &fakeResumes{owners: map[string]string{"res-1": "user-1"}}
	svc := &Service{Repo: repo, Sections: secRepo, Resumes: resumes}
	return svc, repo, secRepo, resumes
}

func seedSection(t *testing.T, secRepo *sections.MemoryRepo, content map[string]any) {
	t.Helper()
	err := secRepo.ReplaceForResume(context.Background(), "res-1", []sections.Section{{
		ID:          "sec-1",
		ResumeID:    "res-1",
		SectionType: "summary",
		Title:       "SUMMARY",
		Content:     content,
		OrderIndex:  0,
		ATSScore:    40,
		CreatedAt:   time.Now().UTC(),
	}})
	if err != nil {
		t.Fatalf("seed section: %v", err)
	}
}

func seedSuggestion(t *testing.T, repo *MemoryRepo, item Suggestion) {
	t.Helper()
	if item.ID == "" {
		item.ID = "sug-1"
	}
	if item.ResumeID == "" {
		item.ResumeID = "res-1"
	}
	if item.Status == "" {
		item.Status = StatusPending
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	if err := repo.CreateBatch(context.Background(), []Suggestion{item}); err != nil {
		t.Fatalf("seed suggestion: %v", err)
	}
}

func TestApplyRewritesSectionContent(t *testing.T) {
	svc, repo, secRepo, resumes := newTestService(t)
	seedSection(t, secRepo, map[string]any{"text": "Responsible for the backend systems."})
	seedSuggestion(t, repo, Suggestion{
		SectionID:     "sec-1",
		Kind:          "content",
		Priority:      "high",
		OriginalText:  "Responsible for the backend systems.",
		SuggestedText: "Led backend systems serving 2M requests per day, improved latency by 40%.",
	})

	got, err := svc.Apply(context.Background(), "user-1", "sug-1")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got.Status != StatusApplied {
		t.Fatalf("expected status applied, got %q", got.Status)
	}
	if got.AppliedAt == nil {
		t.Fatal("expected appliedAt to be stamped")
	}

	sec, err := secRepo.GetByID(context.Background(), "sec-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	text, _ := sec.Content["text"].(string)
	if text != "Led backend systems serving 2M requests per day, improved latency by 40%." {
		t.Fatalf("content not rewritten: %q", text)
	}
	if sec.ATSScore <= 40 {
		t.Fatalf("expected rescore above 40 after quantified rewrite, got %d", sec.ATSScore)
	}
	if resumes.scores["res-1"] != sec.ATSScore {
		t.Fatalf("overall score not recomputed: %d vs %d", resumes.scores["res-1"], sec.ATSScore)
	}
}

func TestApplyNestedContent(t *testing.T) {
	svc, repo, secRepo, _ := newTestService(t)
	seedSection(t, secRepo, map[string]any{
		"entries": []any{
			map[string]any{"description": "Worked on things."},
		},
	})
	seedSuggestion(t, repo, Suggestion{
		SectionID:     "sec-1",
		OriginalText:  "Worked on things.",
		SuggestedText: "Delivered the billing migration.",
	})

	if _, err := svc.Apply(context.Background(), "user-1", "sug-1"); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	sec, _ := secRepo.GetByID(context.Background(), "sec-1")
	entries, _ := sec.Content["entries"].([]any)
	entry, _ := entries[0].(map[string]any)
	if entry["description"] != "Delivered the billing migration." {
		t.Fatalf("nested value not rewritten: %#v", sec.Content)
	}
}

func TestApplyResumeWideChangesStatusOnly(t *testing.T) {
	svc, repo, secRepo, _ := newTestService(t)
	seedSection(t, secRepo, map[string]any{"text": "untouched"})
	seedSuggestion(t, repo, Suggestion{Kind: "format", Priority: "medium"})

	got, err := svc.Apply(context.Background(), "user-1", "sug-1")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got.Status != StatusApplied {
		t.Fatalf("expected applied, got %q", got.Status)
	}

	sec, _ := secRepo.GetByID(context.Background(), "sec-1")
	if sec.Content["text"] != "untouched" {
		t.Fatalf("resume-wide apply must not touch sections: %#v", sec.Content)
	}
}

func TestApplyTerminalStateRejected(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	seedSuggestion(t, repo, Suggestion{Status: StatusDismissed})

	if _, err := svc.Apply(context.Background(), "user-1", "sug-1"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestApplyForeignResumeReadsAsNotFound(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	seedSuggestion(t, repo, Suggestion{})

	if _, err := svc.Apply(context.Background(), "someone-else", "sug-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDismiss(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	seedSuggestion(t, repo, Suggestion{})

	got, err := svc.Dismiss(context.Background(), "user-1", "sug-1")
	if err != nil {
		t.Fatalf("Dismiss: %v", err)
	}
	if got.Status != StatusDismissed {
		t.Fatalf("expected dismissed, got %q", got.Status)
	}
	if got.AppliedAt != nil {
		t.Fatal("dismiss must not stamp appliedAt")
	}

	if _, err := svc.Dismiss(context.Background(), "user-1", "sug-1"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("second dismiss should fail, got %v", err)
	}
}
