package suggestions

import (
	"context"
	"time"
)

// Repo defines persistence operations for suggestions.
type Repo interface {
	CreateBatch(ctx context.Context, items []Suggestion) error
	ListByResume(ctx context.Context, resumeID string) ([]Suggestion, error)
	GetByID(ctx context.Context, suggestionID string) (Suggestion, error)
	SetStatus(ctx context.Context, suggestionID string, status string, appliedAt *time.Time) error
	DeletePendingByResume(ctx context.Context, resumeID string) error
	DeleteByResume(ctx context.Context, resumeID string) error
}
