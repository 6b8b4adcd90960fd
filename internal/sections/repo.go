package sections

import "context"

// Repo defines persistence operations for resume sections.
type Repo interface {
	ReplaceForResume(ctx context.Context, resumeID string, items []Section) error
	ListByResume(ctx context.Context, resumeID string) ([]Section, error)
	GetByID(ctx context.Context, sectionID string) (Section, error)
	UpdateContent(ctx context.Context, sectionID string, content map[string]any, atsScore int) error
	DeleteByResume(ctx context.Context, resumeID string) error
}
