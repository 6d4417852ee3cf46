package typesetting

import (
	"fmt"
	"strings"
)

// BackendError is a single failed compilation attempt
type BackendError struct {
	Backend string
	Message string
	Cause   error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %s", e.Backend, e.Message)
}

func (e *BackendError) Unwrap() error {
	return e.Cause
}

// ChainError collects the failure of every backend in a chain, in the order
// they were tried
type ChainError struct {
	Failures []*BackendError
}

func (e *ChainError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = f.Error()
	}
	return "all compilation services failed: " + strings.Join(parts, "; ")
}

// RetryError is returned once every retry attempt has failed
type RetryError struct {
	Attempts int
	Last     error
}

func (e *RetryError) Error() string {
	return fmt.Sprintf("compilation failed after %d attempts: %v", e.Attempts, e.Last)
}

func (e *RetryError) Unwrap() error {
	return e.Last
}

// InputError reports LaTeX source that cannot be sent at all
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid typesetting input: %s", e.Message)
}
