package engine

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`(\+?1[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
)

// classifierRule maps case-insensitive title substrings to a section type.
// Rule order is significant: the first match wins, so e.g. "Work Samples"
// classifies as experience via "work" before projects can see it.
type classifierRule struct {
	sectionType SectionType
	keywords    []string
}

var classifierRules = []classifierRule{
	{SectionSummary, []string{"summary", "profile", "objective", "about"}},
	{SectionExperience, []string{"experience", "employment", "work", "career", "professional"}},
	{SectionEducation, []string{"education", "academic", "university", "college", "school"}},
	{SectionSkills, []string{"skills", "competencies", "technical", "technologies"}},
	{SectionProjects, []string{"projects", "portfolio", "work samples"}},
	{SectionCertifications, []string{"certifications", "certificates", "credentials", "licenses"}},
	{SectionAchievements, []string{"achievements", "awards", "accomplishments", "recognition"}},
	{SectionLanguages, []string{"languages", "linguistic"}},
	{SectionVolunteer, []string{"volunteer", "community", "service"}},
}

// Classify maps a raw block to a canonical section type. Contact is checked
// first because it can match on content alone (email or phone present);
// everything else matches on the title. Unmatched blocks become Other.
func Classify(title, content string) SectionType {
	lowerTitle := strings.ToLower(title)
	lowerContent := strings.ToLower(content)

	if strings.Contains(lowerTitle, "contact") || strings.Contains(lowerTitle, "personal") ||
		strings.Contains(lowerContent, "contact") || strings.Contains(lowerContent, "personal") ||
		emailRe.MatchString(content) || phoneRe.MatchString(content) {
		return SectionContact
	}

	for _, rule := range classifierRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lowerTitle, kw) {
				return rule.sectionType
			}
		}
	}
	return SectionOther
}
