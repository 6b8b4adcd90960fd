package suggestions

import "time"

// Suggestion lifecycle states. Applied and dismissed are terminal.
const (
	StatusPending   = "pending"
	StatusApplied   = "applied"
	StatusDismissed = "dismissed"
)

// Suggestion is one persisted improvement recommendation. SectionID is empty
// for resume-wide suggestions.
type Suggestion struct {
	ID            string
	ResumeID      string
	SectionID     string
	Kind          string
	Priority      string
	Title         string
	Description   string
	Reason        string
	OriginalText  string
	SuggestedText string
	Impact        int
	Position      int // insertion ordinal, breaks ties within a priority
	Status        string
	AppliedAt     *time.Time
	CreatedAt     time.Time
}
