package engine

import (
	"regexp"
	"strings"
)

var (
	quantifiedRe = regexp.MustCompile(`\d+%|\d+\+|\$\d+|\d+x`)
	tenDigitRe   = regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`)
	cityStateRe  = regexp.MustCompile(`[A-Z][a-zA-Z]+,\s*[A-Z]{2}\b`)
)

// ScoreSection computes the ATS score for one section from its raw text
// content. The result is always in [0, 100].
func ScoreSection(sectionType SectionType, content string) int {
	var score int
	switch sectionType {
	case SectionContact:
		score = scoreContact(content)
	case SectionSummary:
		score = scoreSummary(content)
	case SectionExperience:
		score = scoreExperience(content)
	case SectionEducation:
		score = scoreEducation(content)
	case SectionSkills:
		score = scoreSkills(content)
	default:
		score = scoreGeneric(content)
	}
	return clampScore(score)
}

func scoreContact(content string) int {
	lower := strings.ToLower(content)
	score := 0
	if strings.Contains(content, "@") {
		score += 25
	}
	if tenDigitRe.MatchString(content) {
		score += 25
	}
	if strings.Contains(lower, "linkedin") {
		score += 20
	}
	if cityStateRe.MatchString(content) {
		score += 20
	}
	if strings.Contains(lower, "github") || strings.Contains(lower, "portfolio") {
		score += 10
	}
	return score
}

func scoreSummary(content string) int {
	wordCount := len(strings.Fields(content))
	var score int
	switch {
	case wordCount >= 50 && wordCount <= 150:
		score = 40
	case wordCount >= 30 && wordCount <= 200:
		score = 25
	default:
		score = 10
	}
	score += capAt(5*len(ExtractKeywords(content)), 30)
	if quantifiedRe.MatchString(content) {
		score += 20
	}
	score += 2 * countDistinct(content, summaryActionVerbs)
	return score
}

func scoreExperience(content string) int {
	score := capAt(10*len(quantifiedRe.FindAllString(content, -1)), 40)
	score += capAt(5*countDistinct(content, experienceActionVerbs), 30)
	score += capAt(3*len(ExtractKeywords(content)), 30)
	return score
}

func scoreEducation(content string) int {
	lower := strings.ToLower(content)
	score := 50
	if matchesAny(lower, degreeKeywords) {
		score += 25
	}
	if gpaRe.MatchString(content) {
		score += 15
	}
	if strings.Contains(lower, "honor") || strings.Contains(lower, "dean") {
		score += 10
	}
	return score
}

func scoreSkills(content string) int {
	count := 0
	for _, token := range strings.Split(content, ",") {
		if len(strings.TrimSpace(token)) > 2 {
			count++
		}
	}
	var score int
	switch {
	case count >= 8 && count <= 15:
		score = 50
	case count >= 5 && count <= 20:
		score = 35
	default:
		score = 20
	}
	score += 5 * countDistinct(content, technicalSkillKeywords)
	return score
}

func scoreGeneric(content string) int {
	wordCount := len(strings.Fields(content))
	score := 50
	if wordCount > 20 {
		score += 25
	}
	if wordCount > 50 {
		score += 15
	}
	score += capAt(2*len(ExtractKeywords(content)), 10)
	return score
}

// OverallScore is the unweighted mean of section scores, 0 when there are no
// sections.
func OverallScore(sectionScores []int) int {
	if len(sectionScores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range sectionScores {
		sum += s
	}
	return clampScore(sum / len(sectionScores))
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func capAt(value, limit int) int {
	if value > limit {
		return limit
	}
	return value
}
