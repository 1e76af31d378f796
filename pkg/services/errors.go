// Package services provides standardized error types for service layer operations.
package services

import (
	"errors"
	"fmt"
)

// Business Logic Errors - These indicate client errors (4xx responses).
var (
	// Validation Errors (400 Bad Request).
	ErrInvalidRequest      = errors.New("invalid request")
	ErrJourneyNameRequired = errors.New("journey name is required")
	ErrInvalidJourneyType  = errors.New("invalid journey type")
	ErrInvalidFieldType    = errors.New("invalid field type")
	ErrInvalidSchema       = errors.New("invalid schema")
	ErrInvalidCondition    = errors.New("invalid condition")
	ErrFieldNotFound       = errors.New("field not found")

	// Business Logic Conflicts (409 Conflict).
	ErrJourneyNameTaken = errors.New("journey name already in use")
)

// ServiceError wraps service-level errors with additional context.
type ServiceError struct {
	Op      string // Operation name
	Code    string // Error code for API responses
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// IsValidationError checks if an error is a validation error that should return HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrJourneyNameRequired) ||
		errors.Is(err, ErrInvalidJourneyType) ||
		errors.Is(err, ErrInvalidFieldType) ||
		errors.Is(err, ErrInvalidSchema) ||
		errors.Is(err, ErrInvalidCondition) ||
		errors.Is(err, ErrFieldNotFound)
}

// IsConflictError checks if an error is a business logic conflict that should return HTTP 409.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrJourneyNameTaken)
}

// NewValidationError creates a new validation error with context.
func NewValidationError(op, code, message string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
