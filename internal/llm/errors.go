package llm

import (
	"fmt"
)

// ServiceError is returned when the reasoning service cannot be reached, times
// out, or answers with a transport-level failure.
type ServiceError struct {
	Provider Provider
	Message  string
	Cause    error
}

func (e *ServiceError) Error() string {
	prefix := "service error"
	if e.Provider != "" {
		prefix = string(e.Provider) + " " + prefix
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// SchemaViolationError is returned when a response cannot be parsed into the
// requested schema. Raw holds the cleaned response text.
type SchemaViolationError struct {
	Schema  string
	Message string
	Raw     string
	Cause   error
}

func (e *SchemaViolationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("response does not match schema %s: %s: %v", e.Schema, e.Message, e.Cause)
	}
	return fmt.Sprintf("response does not match schema %s: %s", e.Schema, e.Message)
}

func (e *SchemaViolationError) Unwrap() error {
	return e.Cause
}
