package resumes

import "time"

// Resume sources.
const (
	SourceUpload = "upload"
	SourceText   = "text"
)

// Resume is one analyzed resume owned by a user. RawText is the extracted
// plain text the analysis pipeline ran over; Quality grades how cleanly that
// text came out of the source file.
type Resume struct {
	ID           string
	UserID       string
	FileName     string
	Source       string
	RawText      string
	Quality      string
	OverallScore int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
