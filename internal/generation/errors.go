package generation

import "fmt"

// InputError is returned when the job description is unusable
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid generation input: %s", e.Message)
}

// ConstraintError is returned when a schema-valid response still breaks a
// content constraint (project count, list bounds, empty category names).
// It is a hard failure; values are never trimmed or padded to fit.
type ConstraintError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ConstraintError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generated content violates constraint on %s: %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("generated content violates constraint on %s: %s", e.Field, e.Message)
}

func (e *ConstraintError) Unwrap() error {
	return e.Cause
}
