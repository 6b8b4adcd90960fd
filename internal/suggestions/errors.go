package suggestions

import "errors"

// ErrNotFound indicates the suggestion does not exist or is not visible to the caller.
var ErrNotFound = errors.New("suggestion not found")

// ErrInvalidTransition indicates the suggestion already reached a terminal state.
var ErrInvalidTransition = errors.New("suggestion is not pending")
