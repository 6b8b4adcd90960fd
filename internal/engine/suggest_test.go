package engine

import (
	"strings"
	"testing"
)

func TestGenerateSectionSuggestionsShortContent(t *testing.T) {
	got := GenerateSectionSuggestions(DefaultConfig(), 2, SectionSummary, "short", "")
	if len(got) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(got))
	}
	s := got[0]
	if s.Type != SuggestionContent || s.Priority != PriorityHigh {
		t.Fatalf("unexpected suggestion: %+v", s)
	}
	if s.Title != "Section too short" {
		t.Fatalf("title = %q", s.Title)
	}
	if s.Impact != 15 {
		t.Fatalf("impact = %d", s.Impact)
	}
	if s.SectionIndex != 2 {
		t.Fatalf("section index = %d", s.SectionIndex)
	}
}

func TestGenerateSectionSuggestionsJobKeywords(t *testing.T) {
	content := "Maintained reporting pipelines for finance stakeholders across quarterly planning cycles"
	job := "kubernetes terraform prometheus grafana ansible helm istio"

	got := GenerateSectionSuggestions(DefaultConfig(), 0, SectionSkills, content, job)
	keyword := 0
	for _, s := range got {
		if s.Type == SuggestionKeyword {
			keyword++
			if s.Priority != PriorityHigh || s.Impact != 10 {
				t.Fatalf("unexpected keyword suggestion: %+v", s)
			}
			if s.SuggestedText == "" {
				t.Fatalf("expected suggested text")
			}
		}
	}
	// Seven missing keywords but at most five suggestions.
	if keyword != 5 {
		t.Fatalf("expected 5 keyword suggestions, got %d", keyword)
	}
}

func TestKeywordHintVariesBySection(t *testing.T) {
	hints := map[string]string{
		"summary":    keywordHint(SectionSummary, "docker"),
		"experience": keywordHint(SectionExperience, "docker"),
		"skills":     keywordHint(SectionSkills, "docker"),
		"default":    keywordHint(SectionOther, "docker"),
	}
	seen := map[string]bool{}
	for name, hint := range hints {
		if !strings.Contains(hint, "docker") {
			t.Fatalf("%s hint missing keyword: %q", name, hint)
		}
		if seen[hint] {
			t.Fatalf("duplicate hint wording: %q", hint)
		}
		seen[hint] = true
	}
}

func TestGenerateResumeSuggestionsShortResume(t *testing.T) {
	got := GenerateResumeSuggestions(DefaultConfig(), "tiny resume with experience education skills mentioned")
	var found *Suggestion
	for i := range got {
		if got[i].Type == SuggestionFormat {
			found = &got[i]
		}
	}
	if found == nil {
		t.Fatalf("expected format suggestion for short resume")
	}
	if found.Priority != PriorityMedium || found.Impact != 15 || found.SectionIndex != -1 {
		t.Fatalf("unexpected suggestion: %+v", found)
	}
}

func TestGenerateResumeSuggestionsMissingSections(t *testing.T) {
	text := strings.Repeat("generic filler words about working hard every day ", 20)
	got := GenerateResumeSuggestions(DefaultConfig(), text)

	missing := map[string]bool{}
	for _, s := range got {
		if s.Type == SuggestionStructure {
			missing[s.Title] = true
		}
	}
	for _, want := range []string{"Missing experience section", "Missing education section", "Missing skills section"} {
		if !missing[want] {
			t.Fatalf("expected %q, got %v", want, missing)
		}
	}
}

func TestSortSuggestionsStable(t *testing.T) {
	items := []Suggestion{
		{Title: "low", Priority: PriorityLow},
		{Title: "medium-1", Priority: PriorityMedium},
		{Title: "critical", Priority: PriorityCritical},
		{Title: "medium-2", Priority: PriorityMedium},
		{Title: "high", Priority: PriorityHigh},
	}
	SortSuggestions(items)

	order := make([]string, 0, len(items))
	for _, s := range items {
		order = append(order, s.Title)
	}
	want := []string{"critical", "high", "medium-1", "medium-2", "low"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestConfigurableImpacts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShortSectionImpact = 42
	got := GenerateSectionSuggestions(cfg, 0, SectionOther, "x", "")
	if len(got) != 1 || got[0].Impact != 42 {
		t.Fatalf("expected configured impact 42, got %+v", got)
	}
}
