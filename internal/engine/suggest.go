package engine

import (
	"fmt"
	"sort"
	"strings"
)

// SuggestionType categorizes an improvement suggestion.
type SuggestionType string

const (
	SuggestionKeyword     SuggestionType = "keyword"
	SuggestionFormat      SuggestionType = "format"
	SuggestionContent     SuggestionType = "content"
	SuggestionStructure   SuggestionType = "structure"
	SuggestionAchievement SuggestionType = "achievement"
	SuggestionGrammar     SuggestionType = "grammar"
)

// Priority orders suggestions for display; critical is most urgent.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// PriorityRank maps a priority to its sort rank, critical=1 through low=4.
// Unknown values sort last.
func PriorityRank(p Priority) int {
	switch p {
	case PriorityCritical:
		return 1
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 3
	case PriorityLow:
		return 4
	default:
		return 5
	}
}

// Suggestion is one generated improvement recommendation. SectionIndex is the
// order index of the section it targets, or -1 for resume-wide suggestions.
type Suggestion struct {
	SectionIndex  int            `json:"section_index"`
	Type          SuggestionType `json:"type"`
	Priority      Priority       `json:"priority"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Reason        string         `json:"reason"`
	OriginalText  string         `json:"original_text,omitempty"`
	SuggestedText string         `json:"suggested_text,omitempty"`
	Impact        int            `json:"impact"`
}

// Config carries the product-tunable score-impact estimates for each
// suggestion kind. The values have no algorithmic derivation.
type Config struct {
	ShortSectionImpact   int
	MissingKeywordImpact int
	ShortResumeImpact    int
	LowDensityImpact     int
	MissingSectionImpact int
	MaxJobKeywords       int
}

// DefaultConfig returns the default impact estimates.
func DefaultConfig() Config {
	return Config{
		ShortSectionImpact:   15,
		MissingKeywordImpact: 10,
		ShortResumeImpact:    15,
		LowDensityImpact:     20,
		MissingSectionImpact: 10,
		MaxJobKeywords:       5,
	}
}

const minSectionContentLength = 10

// GenerateSectionSuggestions runs the per-section checks: a short-content
// check, then job-specific keyword gap checks when a job description is
// supplied.
func GenerateSectionSuggestions(cfg Config, sectionIndex int, sectionType SectionType, content, jobDescription string) []Suggestion {
	out := []Suggestion{}

	if len(strings.TrimSpace(content)) < minSectionContentLength {
		out = append(out, Suggestion{
			SectionIndex: sectionIndex,
			Type:         SuggestionContent,
			Priority:     PriorityHigh,
			Title:        "Section too short",
			Description:  "Expand this section with relevant detail; very short sections read as placeholders to screening software.",
			Reason:       "Sections under a few words carry no signal for keyword matching.",
			Impact:       cfg.ShortSectionImpact,
		})
	}

	if strings.TrimSpace(jobDescription) != "" {
		out = append(out, jobKeywordSuggestions(cfg, sectionIndex, sectionType, content, jobDescription)...)
	}
	return out
}

func jobKeywordSuggestions(cfg Config, sectionIndex int, sectionType SectionType, content, jobDescription string) []Suggestion {
	sectionKeywords := make(map[string]struct{})
	for _, kw := range ExtractKeywords(content) {
		sectionKeywords[kw] = struct{}{}
	}

	out := []Suggestion{}
	for _, kw := range ExtractKeywords(jobDescription) {
		if len(out) >= cfg.MaxJobKeywords {
			break
		}
		if _, ok := sectionKeywords[kw]; ok {
			continue
		}
		out = append(out, Suggestion{
			SectionIndex:  sectionIndex,
			Type:          SuggestionKeyword,
			Priority:      PriorityHigh,
			Title:         fmt.Sprintf("Add keyword %q", kw),
			Description:   keywordHint(sectionType, kw),
			Reason:        "The job description uses this term and the section does not.",
			SuggestedText: kw,
			Impact:        cfg.MissingKeywordImpact,
		})
	}
	return out
}

// keywordHint phrases the integration advice per section type.
func keywordHint(sectionType SectionType, keyword string) string {
	switch sectionType {
	case SectionSummary:
		return fmt.Sprintf("Work %q into your professional summary so it appears early in the document.", keyword)
	case SectionExperience:
		return fmt.Sprintf("Mention %q in an achievement bullet where you actually used it.", keyword)
	case SectionSkills:
		return fmt.Sprintf("Add %q to your skills list if you have real experience with it.", keyword)
	default:
		return fmt.Sprintf("Include %q in this section where it fits naturally.", keyword)
	}
}

const (
	minResumeLength      = 500
	minKeywordDensityPct = 2.0
)

// GenerateResumeSuggestions runs the resume-wide checks on the full text.
// The resulting suggestions carry SectionIndex -1.
func GenerateResumeSuggestions(cfg Config, fullText string) []Suggestion {
	out := []Suggestion{}

	if len(strings.TrimSpace(fullText)) < minResumeLength {
		out = append(out, Suggestion{
			SectionIndex: -1,
			Type:         SuggestionFormat,
			Priority:     PriorityMedium,
			Title:        "Resume is very short",
			Description:  "Add more detail about your experience, education and skills; recruiters expect at least half a page of substance.",
			Reason:       "Resumes under ~500 characters rarely survive automated screening.",
			Impact:       cfg.ShortResumeImpact,
		})
	}

	if density := KeywordDensity(fullText); density < minKeywordDensityPct {
		out = append(out, Suggestion{
			SectionIndex: -1,
			Type:         SuggestionKeyword,
			Priority:     PriorityHigh,
			Title:        "Low keyword density",
			Description:  "Use more role-specific terminology throughout the resume.",
			Reason:       "Fewer than 2% of the words are distinct significant terms, which weakens keyword matching.",
			Impact:       cfg.LowDensityImpact,
		})
	}

	lower := strings.ToLower(fullText)
	for _, required := range []string{"experience", "education", "skills"} {
		if strings.Contains(lower, required) {
			continue
		}
		out = append(out, Suggestion{
			SectionIndex: -1,
			Type:         SuggestionStructure,
			Priority:     PriorityMedium,
			Title:        fmt.Sprintf("Missing %s section", required),
			Description:  fmt.Sprintf("Add a clearly labeled %s section.", required),
			Reason:       "Screening software looks for the standard section headings.",
			Impact:       cfg.MissingSectionImpact,
		})
	}
	return out
}

// KeywordDensity returns the ratio of distinct significant tokens to total
// word count, as a percentage. Empty text has zero density.
func KeywordDensity(text string) float64 {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	return float64(len(ExtractKeywords(text))) / float64(words) * 100
}

// SortSuggestions orders suggestions by priority rank ascending; ties keep
// insertion order.
func SortSuggestions(items []Suggestion) {
	sort.SliceStable(items, func(i, j int) bool {
		return PriorityRank(items[i].Priority) < PriorityRank(items[j].Priority)
	})
}
