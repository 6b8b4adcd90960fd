package engine

import (
	"regexp"
	"strings"
)

var (
	linkedinRe = regexp.MustCompile(`(?i)linkedin\.com/in/[A-Za-z0-9\-_%]+`)
	githubRe   = regexp.MustCompile(`(?i)github\.com/[A-Za-z0-9\-_.]+`)
	locationRe = regexp.MustCompile(`[A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)*,\s*(?:[A-Z]{2}\b|[A-Z][a-zA-Z]+)`)
)

// ContactContent is the structured form of a contact section.
type ContactContent struct {
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	LinkedIn   string `json:"linkedin"`
	GitHub     string `json:"github"`
	Location   string `json:"location"`
	RawContent string `json:"raw_content"`
}

// SummaryContent is the structured form of a summary section.
type SummaryContent struct {
	Text      string   `json:"text"`
	WordCount int      `json:"word_count"`
	Keywords  []string `json:"keywords"`
}

// SkillsContent is the deduplicated skill list plus category buckets.
type SkillsContent struct {
	Skills    []string `json:"skills"`
	Technical []string `json:"technical"`
	Tools     []string `json:"tools"`
	Languages []string `json:"languages"`
	Soft      []string `json:"soft"`
}

// GenericContent is the fallback structure for sections without a
// type-specific parser.
type GenericContent struct {
	Text  string   `json:"text"`
	Items []string `json:"items"`
}

// ParseContent dispatches to the type-specific parser. Parsers are pure and
// best-effort: malformed input produces partial structures, never an error.
func ParseContent(sectionType SectionType, content string) any {
	switch sectionType {
	case SectionContact:
		return parseContact(content)
	case SectionSummary:
		return parseSummary(content)
	case SectionExperience:
		return parseExperience(content)
	case SectionEducation:
		return parseEducation(content)
	case SectionSkills:
		return parseSkills(content)
	case SectionProjects:
		return parseProjects(content)
	case SectionCertifications:
		return parseCertifications(content)
	case SectionAchievements, SectionLanguages, SectionVolunteer, SectionOther:
		return parseGeneric(content)
	default:
		return parseGeneric(content)
	}
}

func parseContact(content string) ContactContent {
	out := ContactContent{RawContent: content}
	if m := emailRe.FindString(content); m != "" {
		out.Email = m
	}
	if m := phoneRe.FindString(content); m != "" {
		out.Phone = strings.TrimSpace(m)
	}
	if m := linkedinRe.FindString(content); m != "" {
		out.LinkedIn = m
	}
	if m := githubRe.FindString(content); m != "" {
		out.GitHub = m
	}
	if m := locationRe.FindString(content); m != "" {
		out.Location = m
	}
	return out
}

func parseSummary(content string) SummaryContent {
	text := strings.TrimSpace(content)
	return SummaryContent{
		Text:      text,
		WordCount: len(strings.Fields(text)),
		Keywords:  ExtractKeywords(text),
	}
}

func parseSkills(content string) SkillsContent {
	normalized := content
	for _, bullet := range []string{"•", "▪", "◦", "*", "·"} {
		normalized = strings.ReplaceAll(normalized, bullet, ",")
	}
	normalized = strings.ReplaceAll(normalized, "\n", ",")

	out := SkillsContent{
		Skills:    []string{},
		Technical: []string{},
		Tools:     []string{},
		Languages: []string{},
		Soft:      []string{},
	}
	seen := make(map[string]struct{})
	for _, token := range strings.Split(normalized, ",") {
		skill := strings.TrimSpace(strings.Trim(strings.TrimSpace(token), "-"))
		if len(skill) <= 1 {
			continue
		}
		key := strings.ToLower(skill)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out.Skills = append(out.Skills, skill)
		switch {
		case matchesAny(key, technicalSkillKeywords):
			out.Technical = append(out.Technical, skill)
		case matchesAny(key, toolKeywords):
			out.Tools = append(out.Tools, skill)
		case matchesAny(key, spokenLanguageKeywords):
			out.Languages = append(out.Languages, skill)
		default:
			out.Soft = append(out.Soft, skill)
		}
	}
	return out
}

func matchesAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func parseGeneric(content string) GenericContent {
	out := GenericContent{
		Text:  strings.TrimSpace(content),
		Items: []string{},
	}
	for _, line := range strings.Split(content, "\n") {
		if text, ok := stripBullet(strings.TrimSpace(line)); ok {
			out.Items = append(out.Items, text)
		}
	}
	return out
}

func stripBullet(line string) (string, bool) {
	for _, bullet := range []string{"•", "-", "*", "▪", "◦"} {
		if strings.HasPrefix(line, bullet) {
			return strings.TrimSpace(strings.TrimPrefix(line, bullet)), true
		}
	}
	return "", false
}
