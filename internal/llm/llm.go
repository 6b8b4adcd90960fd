// Package llm abstracts optional language-model providers used to augment
// heuristic suggestions. The heuristic pipeline never depends on a provider
// being configured.
package llm

import (
	"context"
	"errors"
)

// Client abstracts LLM providers for resume improvement suggestions.
type Client interface {
	SuggestImprovements(ctx context.Context, input SuggestInput) ([]RewriteSuggestion, error)
}

// SuggestInput captures the inputs for an improvement request.
type SuggestInput struct {
	ResumeText     string
	JobDescription string
	TargetRole     string
}

// RewriteSuggestion is a provider-produced rewrite for a span of resume text.
type RewriteSuggestion struct {
	Title         string
	Description   string
	OriginalText  string
	SuggestedText string
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm: provider not configured")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// SuggestImprovements returns ErrNotConfigured.
func (PlaceholderClient) SuggestImprovements(ctx context.Context, input SuggestInput) ([]RewriteSuggestion, error) {
	_ = ctx
	_ = input
	return nil, ErrNotConfigured
}

// New returns the client for the named provider, defaulting to the placeholder.
func New(provider string) Client {
	switch provider {
	default:
		return PlaceholderClient{}
	}
}
