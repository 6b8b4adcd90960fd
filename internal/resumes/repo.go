package resumes

import (
	"context"
	"time"
)

// Repo defines persistence operations for resumes.
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	GetByID(ctx context.Context, userID, resumeID string) (Resume, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error)
	UpdateAnalysis(ctx context.Context, resumeID, rawText, quality string, overallScore int, updatedAt time.Time) error
	UpdateOverallScore(ctx context.Context, resumeID string, score int, updatedAt time.Time) error
	Delete(ctx context.Context, userID, resumeID string) error
	OwnerOf(ctx context.Context, resumeID string) (string, error)
}
