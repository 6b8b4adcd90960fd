package sections

import "errors"

// ErrNotFound indicates the section does not exist.
var ErrNotFound = errors.New("section not found")
