package engine

import (
	"regexp"
	"strings"
)

var (
	durationRe = regexp.MustCompile(`(?i)(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{4}|\b(19|20)\d{2}\b`)
	yearRe     = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	gpaRe      = regexp.MustCompile(`(?i)gpa[:\s]*([0-4]\.\d+)`)
	entrySepRe = regexp.MustCompile(`^[-=_]{3,}$`)
)

// ExperienceEntry is one position within an experience section.
type ExperienceEntry struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	Duration     string   `json:"duration"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
}

// ExperienceContent is the structured form of an experience section.
type ExperienceContent struct {
	Entries []ExperienceEntry `json:"entries"`
}

// EducationEntry is one degree or program within an education section.
type EducationEntry struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	GPA            string `json:"gpa"`
	GraduationDate string `json:"graduation_date"`
}

// EducationContent is the structured form of an education section.
type EducationContent struct {
	Entries []EducationEntry `json:"entries"`
}

// ProjectEntry is one project within a projects section.
type ProjectEntry struct {
	Name         string   `json:"name"`
	URL          string   `json:"url"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// ProjectsContent is the structured form of a projects section.
type ProjectsContent struct {
	Entries []ProjectEntry `json:"entries"`
}

// CertificationEntry is one certification line, optionally split into name
// and issuer.
type CertificationEntry struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
}

// CertificationsContent is the structured form of a certifications section.
type CertificationsContent struct {
	Entries []CertificationEntry `json:"entries"`
}

// splitEntryBlocks splits section content into entry blocks on blank lines or
// separator lines of three or more dash/equals/underscore characters.
func splitEntryBlocks(content string) [][]string {
	var blocks [][]string
	var current []string
	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, current)
			current = nil
		}
	}
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || entrySepRe.MatchString(trimmed) {
			flush()
			continue
		}
		current = append(current, trimmed)
	}
	flush()
	return blocks
}

func parseExperience(content string) ExperienceContent {
	out := ExperienceContent{Entries: []ExperienceEntry{}}
	for _, block := range splitEntryBlocks(content) {
		entry := ExperienceEntry{Achievements: []string{}}
		var description []string
		for i, line := range block {
			if i == 0 {
				entry.Position, entry.Company = splitPositionCompany(line)
				continue
			}
			if text, ok := stripBullet(line); ok {
				entry.Achievements = append(entry.Achievements, text)
				continue
			}
			if entry.Duration == "" && durationRe.MatchString(line) {
				entry.Duration = line
				continue
			}
			description = append(description, line)
		}
		entry.Description = strings.Join(description, " ")
		if entry.Position != "" || entry.Company != "" {
			out.Entries = append(out.Entries, entry)
		}
	}
	return out
}

// splitPositionCompany splits "Position at Company" or "Position | Company"
// lines; without a separator the whole line is the position.
func splitPositionCompany(line string) (position, company string) {
	for _, sep := range []string{" at ", " | "} {
		if idx := strings.Index(line, sep); idx >= 0 {
			return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+len(sep):])
		}
	}
	return strings.TrimSpace(line), ""
}

func parseEducation(content string) EducationContent {
	out := EducationContent{Entries: []EducationEntry{}}
	for _, block := range splitEntryBlocks(content) {
		var entry EducationEntry
		for _, line := range block {
			lower := strings.ToLower(line)
			if entry.Degree == "" && matchesAny(lower, degreeKeywords) {
				entry.Degree = line
				continue
			}
			if m := gpaRe.FindStringSubmatch(line); m != nil {
				entry.GPA = m[1]
				continue
			}
			if yearRe.MatchString(line) {
				if entry.GraduationDate == "" {
					entry.GraduationDate = line
				}
				continue
			}
			if entry.Institution == "" {
				entry.Institution = line
			}
		}
		if entry.Degree != "" || entry.Institution != "" {
			out.Entries = append(out.Entries, entry)
		}
	}
	return out
}

func parseProjects(content string) ProjectsContent {
	out := ProjectsContent{Entries: []ProjectEntry{}}
	for _, block := range splitEntryBlocks(content) {
		entry := ProjectEntry{Technologies: []string{}}
		var description []string
		for i, line := range block {
			if i == 0 {
				entry.Name = line
				continue
			}
			if entry.URL == "" && strings.Contains(line, "http") {
				entry.URL = extractURL(line)
				continue
			}
			if text, ok := stripBullet(line); ok {
				description = append(description, text)
				continue
			}
			description = append(description, line)
		}
		entry.Description = strings.Join(description, " ")
		entry.Technologies = scanTechnologies(strings.Join(block, "\n"))
		if entry.Name != "" {
			out.Entries = append(out.Entries, entry)
		}
	}
	return out
}

func extractURL(line string) string {
	for _, token := range strings.Fields(line) {
		if strings.Contains(token, "http") {
			return strings.Trim(token, "()<>,")
		}
	}
	return strings.TrimSpace(line)
}

// scanTechnologies finds known technology names in the text, preserving the
// canonical casing of the table. Matches require non-letter boundaries so
// short names like "Go" do not fire inside words like "Django".
func scanTechnologies(text string) []string {
	lower := strings.ToLower(text)
	out := []string{}
	for _, tech := range knownTechnologies {
		if containsWord(lower, strings.ToLower(tech)) {
			out = append(out, tech)
		}
	}
	return out
}

func containsWord(haystack, needle string) bool {
	for from := 0; ; {
		idx := strings.Index(haystack[from:], needle)
		if idx < 0 {
			return false
		}
		start := from + idx
		end := start + len(needle)
		if (start == 0 || !isLetterByte(haystack[start-1])) &&
			(end == len(haystack) || !isLetterByte(haystack[end])) {
			return true
		}
		from = start + 1
	}
}

func isLetterByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func parseCertifications(content string) CertificationsContent {
	out := CertificationsContent{Entries: []CertificationEntry{}}
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if text, ok := stripBullet(trimmed); ok {
			trimmed = text
		}
		entry := CertificationEntry{Name: trimmed}
		for _, sep := range []string{" - ", " | "} {
			if idx := strings.Index(trimmed, sep); idx >= 0 {
				entry.Name = strings.TrimSpace(trimmed[:idx])
				entry.Issuer = strings.TrimSpace(trimmed[idx+len(sep):])
				break
			}
		}
		if entry.Name != "" {
			out.Entries = append(out.Entries, entry)
		}
	}
	return out
}
