package engine

import (
	"reflect"
	"testing"
)

func TestAnalyzeSampleResume(t *testing.T) {
	analysis := Analyze(sampleResume, "", DefaultConfig())

	if len(analysis.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(analysis.Sections))
	}
	contact := analysis.Sections[0]
	if contact.Type != SectionContact || contact.OrderIndex != 0 {
		t.Fatalf("first section = %+v", contact)
	}
	if contact.Score != 50 {
		t.Fatalf("contact score = %d, want 50", contact.Score)
	}
	experience := analysis.Sections[1]
	if experience.Type != SectionExperience || experience.OrderIndex != 1 {
		t.Fatalf("second section = %+v", experience)
	}
	exp, ok := experience.Content.(ExperienceContent)
	if !ok {
		t.Fatalf("experience content has type %T", experience.Content)
	}
	if len(exp.Entries) != 1 || exp.Entries[0].Position != "Software Engineer" || exp.Entries[0].Company != "Acme" {
		t.Fatalf("experience entries = %+v", exp.Entries)
	}

	want := OverallScore([]int{contact.Score, experience.Score})
	if analysis.Scores.Overall != want {
		t.Fatalf("overall = %d, want %d", analysis.Scores.Overall, want)
	}
	if analysis.Scores.ImprovementPotential != 100-want {
		t.Fatalf("improvement potential = %d", analysis.Scores.ImprovementPotential)
	}
	if analysis.Gap != nil {
		t.Fatalf("expected no gap analysis without job description")
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	analysis := Analyze("", "", DefaultConfig())
	if len(analysis.Sections) != 0 {
		t.Fatalf("expected no sections, got %d", len(analysis.Sections))
	}
	if analysis.Scores.Overall != 0 {
		t.Fatalf("overall = %d, want 0", analysis.Scores.Overall)
	}
	if analysis.Scores.ImprovementPotential != 100 {
		t.Fatalf("improvement potential = %d, want 100", analysis.Scores.ImprovementPotential)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	first := Analyze(sampleResume, "kubernetes experience wanted", DefaultConfig())
	second := Analyze(sampleResume, "kubernetes experience wanted", DefaultConfig())
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical analyses across runs")
	}
}

func TestAnalyzeWithJobDescription(t *testing.T) {
	analysis := Analyze(sampleResume, "must know kubernetes and terraform", DefaultConfig())
	if analysis.Gap == nil {
		t.Fatalf("expected gap analysis")
	}
	foundKeyword := false
	for _, s := range analysis.Suggestions {
		if s.Type == SuggestionKeyword && s.SectionIndex >= 0 {
			foundKeyword = true
		}
	}
	if !foundKeyword {
		t.Fatalf("expected section keyword suggestions, got %+v", analysis.Suggestions)
	}
}

func TestAnalyzeSuggestionsSorted(t *testing.T) {
	analysis := Analyze(sampleResume, "kubernetes terraform helm istio grafana prometheus", DefaultConfig())
	last := 0
	for _, s := range analysis.Suggestions {
		rank := PriorityRank(s.Priority)
		if rank < last {
			t.Fatalf("suggestions not sorted by priority: %+v", analysis.Suggestions)
		}
		last = rank
	}
}

func TestLiveScoresBounds(t *testing.T) {
	for _, text := range []string{"", sampleResume, "a", "EXPERIENCE\nworked"} {
		analysis := Analyze(text, "", DefaultConfig())
		s := analysis.Scores
		for name, v := range map[string]int{
			"overall":               s.Overall,
			"ats_compatibility":     s.ATSCompatibility,
			"keyword_density":       s.KeywordDensity,
			"format_score":          s.FormatScore,
			"content_quality":       s.ContentQuality,
			"improvement_potential": s.ImprovementPotential,
		} {
			if v < 0 || v > 100 {
				t.Fatalf("%s = %d out of bounds for %q", name, v, text)
			}
		}
	}
}
