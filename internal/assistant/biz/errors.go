package biz

import (
	"errors"
	"fmt"
)

// Local store errors
var (
	ErrAssistantNotFound = errors.New("assistant not found")
	ErrAssistantExists   = errors.New("assistant id already exists locally")
)

// Import errors
var (
	ErrRemoteAssistantNotFound = errors.New("assistant not found on the OpenAI platform")
	ErrAlreadyImported         = errors.New("assistant has already been imported")
)

// ValidationError is a field outside its declared domain.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidationError reports whether err is a ValidationError
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

func invalid(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
