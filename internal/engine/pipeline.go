package engine

import "strings"

// AnalyzedSection is one fully processed section: classified, parsed and
// scored, in document order.
type AnalyzedSection struct {
	OrderIndex int         `json:"order_index"`
	Type       SectionType `json:"section_type"`
	Title      string      `json:"title"`
	Content    any         `json:"content"`
	RawText    string      `json:"raw_text"`
	Score      int         `json:"ats_score"`
}

// LiveScores is the computed snapshot shown to the user while editing.
// All fields are integers in [0, 100].
type LiveScores struct {
	Overall              int `json:"overall"`
	ATSCompatibility     int `json:"ats_compatibility"`
	KeywordDensity       int `json:"keyword_density"`
	FormatScore          int `json:"format_score"`
	ContentQuality       int `json:"content_quality"`
	ImprovementPotential int `json:"improvement_potential"`
}

// Analysis is the full deterministic output of the pipeline for one resume.
type Analysis struct {
	Sections    []AnalyzedSection `json:"sections"`
	Suggestions []Suggestion      `json:"suggestions"`
	Scores      LiveScores        `json:"scores"`
	Keywords    []string          `json:"keywords"`
	Gap         *GapAnalysis      `json:"gap,omitempty"`
}

// Analyze runs detect → classify → parse → score → suggest over raw resume
// text. It is pure and deterministic: identical input yields identical
// output. An optional job description adds keyword-gap suggestions and a gap
// analysis.
func Analyze(text, jobDescription string, cfg Config) Analysis {
	blocks := DetectSections(text)

	sections := make([]AnalyzedSection, 0, len(blocks))
	suggestions := []Suggestion{}
	for i, block := range blocks {
		sectionType := Classify(block.Title, block.Content)
		sections = append(sections, AnalyzedSection{
			OrderIndex: i,
			Type:       sectionType,
			Title:      block.Title,
			Content:    ParseContent(sectionType, block.Content),
			RawText:    block.Content,
			Score:      ScoreSection(sectionType, block.Content),
		})
		suggestions = append(suggestions, GenerateSectionSuggestions(cfg, i, sectionType, block.Content, jobDescription)...)
	}
	suggestions = append(suggestions, GenerateResumeSuggestions(cfg, text)...)
	SortSuggestions(suggestions)

	analysis := Analysis{
		Sections:    sections,
		Suggestions: suggestions,
		Scores:      ComputeLiveScores(sections, text),
		Keywords:    ExtractKeywords(text),
	}
	if strings.TrimSpace(jobDescription) != "" {
		gap := AnalyzeKeywordGap(text, "", jobDescription)
		analysis.Gap = &gap
	}
	return analysis
}

// ComputeLiveScores derives the six-field snapshot from scored sections and
// the full text. Overall is the unweighted mean of section scores; the
// weighted variants used by LLM-augmented analysis are not computed here.
func ComputeLiveScores(sections []AnalyzedSection, fullText string) LiveScores {
	scores := make([]int, 0, len(sections))
	var coreScores, qualityScores []int
	for _, s := range sections {
		scores = append(scores, s.Score)
		switch s.Type {
		case SectionContact, SectionExperience, SectionEducation, SectionSkills:
			coreScores = append(coreScores, s.Score)
		}
		switch s.Type {
		case SectionSummary, SectionExperience, SectionProjects:
			qualityScores = append(qualityScores, s.Score)
		}
	}

	overall := OverallScore(scores)
	if len(scores) == 0 {
		// No sections at all: everything scores zero and the full
		// improvement headroom remains.
		return LiveScores{ImprovementPotential: 100}
	}

	ats := overall
	if len(coreScores) > 0 {
		ats = OverallScore(coreScores)
	}
	quality := overall
	if len(qualityScores) > 0 {
		quality = OverallScore(qualityScores)
	}

	return LiveScores{
		Overall:              overall,
		ATSCompatibility:     ats,
		KeywordDensity:       clampScore(int(KeywordDensity(fullText) + 0.5)),
		FormatScore:          formatScore(sections, fullText),
		ContentQuality:       quality,
		ImprovementPotential: clampScore(100 - overall),
	}
}

// formatScore is a structural heuristic: credit for having several labeled
// sections, bullet usage, and a sane document length.
func formatScore(sections []AnalyzedSection, fullText string) int {
	score := 40
	if len(sections) >= 3 {
		score += 20
	}
	if strings.ContainsAny(fullText, "•-*") {
		score += 20
	}
	if n := len(fullText); n >= minResumeLength && n <= 10000 {
		score += 20
	}
	return clampScore(score)
}
