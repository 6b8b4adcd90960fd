package sections

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Section // resumeId -> sections
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]Section),
	}
}

var _ Repo = (*MemoryRepo)(nil)

// ReplaceForResume swaps the full section set for a resume.
func (r *MemoryRepo) ReplaceForResume(ctx context.Context, resumeID string, items []Section) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := make([]Section, len(items))
	copy(copied, items)
	sort.Slice(copied, func(i, j int) bool {
		return copied[i].OrderIndex < copied[j].OrderIndex
	})
	r.data[resumeID] = copied
	return nil
}

// ListByResume returns sections in document order.
func (r *MemoryRepo) ListByResume(ctx context.Context, resumeID string) ([]Section, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := r.data[resumeID]
	out := make([]Section, len(items))
	copy(out, items)
	return out, nil
}

// GetByID returns a section by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, sectionID string) (Section, error) {
	if err := ctx.Err(); err != nil {
		return Section{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, items := range r.data {
		for i := range items {
			if items[i].ID == sectionID {
				return items[i], nil
			}
		}
	}
	return Section{}, ErrNotFound
}

// UpdateContent replaces a section's content and score.
func (r *MemoryRepo) UpdateContent(ctx context.Context, sectionID string, content map[string]any, atsScore int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for resumeID, items := range r.data {
		for i := range items {
			if items[i].ID == sectionID {
				items[i].Content = content
				items[i].ATSScore = atsScore
				r.data[resumeID] = items
				return nil
			}
		}
	}
	return ErrNotFound
}

// DeleteByResume removes all sections for a resume.
func (r *MemoryRepo) DeleteByResume(ctx context.Context, resumeID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, resumeID)
	return nil
}
