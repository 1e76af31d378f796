// Package persistence provides standardized error types for persistence
// operations.
package persistence

import (
	"errors"
	"fmt"
)

// Standard persistence error types that all implementations should use.
var (
	// ErrJourneyNotFound indicates no journey exists under the given name.
	ErrJourneyNotFound = errors.New("journey not found")
)

// JourneyError wraps journey-related errors with additional context.
type JourneyError struct {
	Op      string // Operation being performed (e.g., "GetByName", "Save")
	Journey string // Journey name if applicable
	Err     error  // Underlying error
}

func (e *JourneyError) Error() string {
	return fmt.Sprintf("%s operation failed for journey %q: %v", e.Op, e.Journey, e.Err)
}

func (e *JourneyError) Unwrap() error {
	return e.Err
}

// Is implements error comparison for journey errors.
func (e *JourneyError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewJourneyError creates a new journey error with context.
func NewJourneyError(op, journey string, err error) *JourneyError {
	return &JourneyError{
		Op:      op,
		Journey: journey,
		Err:     err,
	}
}

// IsJourneyNotFound checks if an error indicates a journey was not found.
func IsJourneyNotFound(err error) bool {
	return errors.Is(err, ErrJourneyNotFound)
}
