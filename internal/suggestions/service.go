package suggestions

import (
	"context"
	"sort"
	"strings"
	"time"

	"resume-ats/internal/engine"
	"resume-ats/internal/sections"
	"resume-ats/internal/shared/metrics"
)

// ResumeChecker exposes the resume operations this service needs without
// importing the resumes package. The bootstrap wires an adapter.
type ResumeChecker interface {
	OwnerOf(ctx context.Context, resumeID string) (string, error)
	UpdateOverallScore(ctx context.Context, resumeID string, score int) error
}

// Service contains business logic for applying and dismissing suggestions.
type Service struct {
	Repo     Repo
	Sections sections.Repo
	Resumes  ResumeChecker
}

// Apply marks a pending suggestion applied. When the suggestion targets a
// section and carries replacement text, the section content is edited in
// place, the section is rescored, and the resume's overall score is
// recomputed. Resume-wide suggestions change status only.
func (s *Service) Apply(ctx context.Context, userID, suggestionID string) (Suggestion, error) {
	item, err := s.loadOwned(ctx, userID, suggestionID)
	if err != nil {
		return Suggestion{}, err
	}
	if item.Status != StatusPending {
		return Suggestion{}, ErrInvalidTransition
	}

	if item.SectionID != "" && item.OriginalText != "" {
		if err := s.applyToSection(ctx, item); err != nil {
			return Suggestion{}, err
		}
	}

	now := time.Now().UTC()
	if err := s.Repo.SetStatus(ctx, item.ID, StatusApplied, &now); err != nil {
		return Suggestion{}, err
	}
	metrics.IncSuggestionApplied()

	item.Status = StatusApplied
	item.AppliedAt = &now
	return item, nil
}

// Dismiss marks a pending suggestion dismissed. Content is never modified.
func (s *Service) Dismiss(ctx context.Context, userID, suggestionID string) (Suggestion, error) {
	item, err := s.loadOwned(ctx, userID, suggestionID)
	if err != nil {
		return Suggestion{}, err
	}
	if item.Status != StatusPending {
		return Suggestion{}, ErrInvalidTransition
	}

	if err := s.Repo.SetStatus(ctx, item.ID, StatusDismissed, nil); err != nil {
		return Suggestion{}, err
	}
	metrics.IncSuggestionDismissed()

	item.Status = StatusDismissed
	item.AppliedAt = nil
	return item, nil
}

// loadOwned fetches a suggestion and verifies the caller owns its resume.
// Foreign suggestions read as not found so IDs are not probeable.
func (s *Service) loadOwned(ctx context.Context, userID, suggestionID string) (Suggestion, error) {
	item, err := s.Repo.GetByID(ctx, suggestionID)
	if err != nil {
		return Suggestion{}, err
	}
	owner, err := s.Resumes.OwnerOf(ctx, item.ResumeID)
	if err != nil {
		return Suggestion{}, err
	}
	if owner != userID {
		return Suggestion{}, ErrNotFound
	}
	return item, nil
}

func (s *Service) applyToSection(ctx context.Context, item Suggestion) error {
	sec, err := s.Sections.GetByID(ctx, item.SectionID)
	if err != nil {
		return err
	}

	content := replaceInValues(sec.Content, item.OriginalText, item.SuggestedText)
	updated, ok := content.(map[string]any)
	if !ok {
		updated = sec.Content
	}

	score := engine.ScoreSection(engine.SectionType(sec.SectionType), flattenContent(updated))
	if err := s.Sections.UpdateContent(ctx, sec.ID, updated, score); err != nil {
		return err
	}

	all, err := s.Sections.ListByResume(ctx, item.ResumeID)
	if err != nil {
		return err
	}
	scores := make([]int, 0, len(all))
	for _, other := range all {
		if other.ID == sec.ID {
			scores = append(scores, score)
			continue
		}
		scores = append(scores, other.ATSScore)
	}
	return s.Resumes.UpdateOverallScore(ctx, item.ResumeID, engine.OverallScore(scores))
}

// replaceInValues substitutes old for new in every string value reachable
// through maps and slices, returning a deep copy.
func replaceInValues(node any, oldText, newText string) any {
	switch v := node.(type) {
	case string:
		return strings.ReplaceAll(v, oldText, newText)
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = replaceInValues(val, oldText, newText)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = replaceInValues(val, oldText, newText)
		}
		return out
	default:
		return v
	}
}

// flattenContent joins every string value in the content tree, keys sorted
// for determinism, so the scorer sees one text blob.
func flattenContent(content map[string]any) string {
	var parts []string
	collectStrings(content, &parts)
	return strings.Join(parts, "\n")
}

func collectStrings(node any, out *[]string) {
	switch v := node.(type) {
	case string:
		if strings.TrimSpace(v) != "" {
			*out = append(*out, v)
		}
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			collectStrings(v[key], out)
		}
	case []any:
		for _, val := range v {
			collectStrings(val, out)
		}
	}
}
