package errors

import (
	"net/http"
	"strings"
)

// FieldViolation describes a single failed validation rule.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every field violation of a request instead of
// stopping at the first one. It implements the AppError interface.
type ValidationError struct {
	violations []FieldViolation
}

// NewValidationError creates a ValidationError from the collected violations.
func NewValidationError(violations ...FieldViolation) *ValidationError {
	return &ValidationError{violations: violations}
}

// Add appends a violation and returns the error for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.violations = append(e.violations, FieldViolation{Field: field, Message: message})

	return e
}

// HasViolations reports whether any violation was recorded.
func (e *ValidationError) HasViolations() bool {
	return len(e.violations) > 0
}

// Violations returns the recorded violations in insertion order.
func (e *ValidationError) Violations() []FieldViolation {
	return e.violations
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message()
}

// HTTPCode returns the HTTP status code
func (e *ValidationError) HTTPCode() int {
	return http.StatusBadRequest
}

// ErrorCode returns the business error code
func (e *ValidationError) ErrorCode() string {
	return "VALIDATION_FAILED"
}

// Message returns the user-friendly error message
func (e *ValidationError) Message() string {
	return "Input validation failed."
}

// Details returns every violation as "field: message" joined with "; ".
func (e *ValidationError) Details() string {
	parts := make([]string, 0, len(e.violations))
	for _, v := range e.violations {
		parts = append(parts, v.Field+": "+v.Message)
	}

	return strings.Join(parts, "; ")
}
