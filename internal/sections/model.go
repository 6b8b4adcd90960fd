package sections

import "time"

// Section is one persisted resume section row, ordered by OrderIndex within
// its resume.
type Section struct {
	ID          string
	ResumeID    string
	SectionType string
	Title       string
	Content     map[string]any
	OrderIndex  int
	ATSScore    int
	CreatedAt   time.Time
}
