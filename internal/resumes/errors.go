package resumes

import "errors"

// Sentinel errors for the resumes domain.
var (
	ErrNotFound     = errors.New("resume not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Error codes used in HTTP responses.
const (
	CodeNotFound        = "not_found"
	CodeValidationError = "validation_error"
	CodeInternalError   = "internal_error"
)
