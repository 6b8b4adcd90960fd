package resumes

import "errors"

// ErrNotFound indicates the resume does not exist or belongs to another user.
var ErrNotFound = errors.New("resume not found")

// ErrInvalidInput indicates the request is missing required fields.
var ErrInvalidInput = errors.New("invalid input")

// ErrUnsupportedFile indicates the uploaded file type cannot be extracted.
var ErrUnsupportedFile = errors.New("unsupported file type")

// ErrEmptyText indicates extraction produced no usable text.
var ErrEmptyText = errors.New("no extractable text")
