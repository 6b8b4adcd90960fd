package engine

import (
	"fmt"
	"strings"
)

// Keyword tables are package-level read-only values. Nothing in this package
// mutates them, so the pipeline is safe to run concurrently for different
// resumes.

// headerKeywords is the fixed set the boundary detector matches against
// lowercased lines to recognize section headings without formatting cues.
var headerKeywords = []string{
	"experience",
	"employment",
	"education",
	"skills",
	"summary",
	"objective",
	"profile",
	"contact",
	"projects",
	"certifications",
	"achievements",
	"awards",
	"languages",
	"volunteer",
	"references",
	"interests",
}

// summaryActionVerbs is the base action-verb list used by the summary scorer.
var summaryActionVerbs = []string{
	"achieved", "improved", "increased", "developed", "managed", "led", "created",
}

// experienceActionVerbs extends the base list for the experience scorer.
var experienceActionVerbs = []string{
	"achieved", "improved", "increased", "developed", "managed", "led", "created",
	"delivered", "launched", "designed", "implemented", "built", "reduced",
	"optimized", "streamlined", "coordinated", "negotiated", "mentored",
	"automated", "spearheaded",
}

// technicalSkillKeywords feeds both the skills scorer and the skills parser's
// technical bucket.
var technicalSkillKeywords = []string{
	"python", "java", "javascript", "typescript", "golang", "ruby", "php",
	"sql", "nosql", "html", "css", "react", "angular", "vue", "node",
	"django", "flask", "spring", "rails", "laravel",
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform",
	"api", "rest", "graphql", "microservices",
	"machine learning", "data analysis", "etl",
}

// toolKeywords drives the tools bucket of the skills parser.
var toolKeywords = []string{
	"git", "jira", "jenkins", "figma", "photoshop", "excel", "tableau",
	"salesforce", "confluence", "postman", "grafana", "kafka", "redis",
	"elasticsearch", "linux",
}

// spokenLanguageKeywords drives the languages bucket of the skills parser.
var spokenLanguageKeywords = []string{
	"english", "spanish", "french", "german", "mandarin", "chinese",
	"japanese", "portuguese", "italian", "hindi", "arabic", "russian",
	"korean", "dutch",
}

// knownTechnologies is scanned case-insensitively by the projects parser.
var knownTechnologies = []string{
	"Python", "Java", "JavaScript", "TypeScript", "Go", "Ruby", "PHP", "C++",
	"C#", "Swift", "Kotlin", "Rust", "SQL", "PostgreSQL", "MySQL", "MongoDB",
	"Redis", "React", "Angular", "Vue", "Node.js", "Django", "Flask", "Spring",
	"Rails", "Laravel", "AWS", "Azure", "GCP", "Docker", "Kubernetes",
	"Terraform", "GraphQL", "Kafka", "Elasticsearch",
}

// degreeKeywords recognizes degree lines in education content.
var degreeKeywords = []string{
	"bachelor", "master", "phd", "doctorate", "associate", "diploma", "certificate",
}

// importantRoleTerms get a higher importance score in gap analysis.
var importantRoleTerms = []string{
	"manager", "senior", "lead", "director", "analyst", "developer", "engineer",
}

// roleKeywords maps a target role to keywords an ATS typically screens for.
// generalKeywords is the fallback for unknown roles.
var roleKeywords = map[string][]string{
	"software engineer": {
		"programming", "debugging", "testing", "agile", "scrum", "architecture",
		"algorithms", "deployment", "automation", "version control",
	},
	"data analyst": {
		"analytics", "visualization", "reporting", "statistics", "modeling",
		"dashboards", "forecasting", "queries", "insights", "metrics",
	},
	"product manager": {
		"roadmap", "stakeholders", "prioritization", "strategy", "research",
		"requirements", "metrics", "launch", "backlog", "discovery",
	},
	"project manager": {
		"planning", "budgeting", "scheduling", "stakeholders", "delivery",
		"milestones", "coordination", "reporting", "risk", "scope",
	},
	"marketing manager": {
		"campaigns", "branding", "analytics", "content", "engagement",
		"conversion", "segmentation", "positioning", "growth", "channels",
	},
}

var generalKeywords = []string{
	"leadership", "communication", "management", "analysis", "development",
	"strategy", "collaboration", "optimization", "innovation", "results",
}

const minKeywordLength = 3 // tokens must be strictly longer than this

// ExtractKeywords tokenizes text, lowercases it, keeps tokens longer than
// three characters and deduplicates preserving first occurrence.
func ExtractKeywords(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) <= minKeywordLength {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

func isWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '+' || r == '#':
		// keep c++ / c# style tokens intact
		return true
	default:
		return false
	}
}

// MissingKeyword is one keyword absent from the resume, with an importance
// estimate and a templated fix.
type MissingKeyword struct {
	Keyword    string `json:"keyword"`
	Importance int    `json:"importance"`
	Suggestion string `json:"suggestion"`
}

// GapAnalysis is the result of comparing a resume against a role or job
// description keyword set.
type GapAnalysis struct {
	Matching []string         `json:"matching"`
	Missing  []MissingKeyword `json:"missing"`
}

// AnalyzeKeywordGap compares resume text against the keyword list for a target
// role, or against keywords extracted from a job description when one is
// supplied. Missing means the keyword does not occur as a substring of the
// resume text.
func AnalyzeKeywordGap(resumeText, targetRole, jobDescription string) GapAnalysis {
	var wanted []string
	if strings.TrimSpace(jobDescription) != "" {
		wanted = ExtractKeywords(jobDescription)
	} else {
		wanted = keywordsForRole(targetRole)
	}

	lower := strings.ToLower(resumeText)
	out := GapAnalysis{Matching: []string{}, Missing: []MissingKeyword{}}
	for _, kw := range wanted {
		if strings.Contains(lower, strings.ToLower(kw)) {
			out.Matching = append(out.Matching, kw)
			continue
		}
		out.Missing = append(out.Missing, MissingKeyword{
			Keyword:    kw,
			Importance: keywordImportance(kw),
			Suggestion: fmt.Sprintf("Add %q to your resume where it reflects real experience.", kw),
		})
	}
	return out
}

func keywordsForRole(role string) []string {
	key := strings.ToLower(strings.TrimSpace(role))
	if kws, ok := roleKeywords[key]; ok {
		return kws
	}
	return generalKeywords
}

func keywordImportance(keyword string) int {
	lower := strings.ToLower(keyword)
	for _, term := range importantRoleTerms {
		if strings.Contains(lower, term) {
			return 90
		}
	}
	return 70
}

func countDistinct(text string, words []string) int {
	lower := strings.ToLower(text)
	n := 0
	for _, w := range words {
		if strings.Contains(lower, w) {
			n++
		}
	}
	return n
}
