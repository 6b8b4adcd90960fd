package suggestions

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Suggestion // suggestionId -> suggestion
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Suggestion),
	}
}

var _ Repo = (*MemoryRepo)(nil)

// CreateBatch stores a set of suggestions.
func (r *MemoryRepo) CreateBatch(ctx context.Context, items []Suggestion) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		r.data[item.ID] = item
	}
	return nil
}

// ListByResume returns suggestions for a resume, priority first then in the
// order they were generated.
func (r *MemoryRepo) ListByResume(ctx context.Context, resumeID string) ([]Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Suggestion
	for _, item := range r.data {
		if item.ResumeID == resumeID {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := priorityRank(out[i].Priority), priorityRank(out[j].Priority)
		if ri != rj {
			return ri < rj
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Position < out[j].Position
	})
	return out, nil
}

// GetByID returns a suggestion by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, suggestionID string) (Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return Suggestion{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.data[suggestionID]
	if !ok {
		return Suggestion{}, ErrNotFound
	}
	return item, nil
}

// SetStatus updates a suggestion's status and applied timestamp.
func (r *MemoryRepo) SetStatus(ctx context.Context, suggestionID string, status string, appliedAt *time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.data[suggestionID]
	if !ok {
		return ErrNotFound
	}
	item.Status = status
	item.AppliedAt = appliedAt
	r.data[suggestionID] = item
	return nil
}

// DeletePendingByResume removes pending suggestions for a resume, keeping
// applied and dismissed history.
func (r *MemoryRepo) DeletePendingByResume(ctx context.Context, resumeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, item := range r.data {
		if item.ResumeID == resumeID && item.Status == StatusPending {
			delete(r.data, id)
		}
	}
	return nil
}

// DeleteByResume removes all suggestions for a resume.
func (r *MemoryRepo) DeleteByResume(ctx context.Context, resumeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, item := range r.data {
		if item.ResumeID == resumeID {
			delete(r.data, id)
		}
	}
	return nil
}

func priorityRank(priority string) int {
	switch priority {
	case "critical":
		return 1
	case "high":
		return 2
	case "medium":
		return 3
	case "low":
		return 4
	default:
		return 5
	}
}
