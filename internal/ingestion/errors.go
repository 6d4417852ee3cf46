package ingestion

import "fmt"

// ExtractionError reports a document whose text could not be read
type ExtractionError struct {
	Source  string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	msg := e.Message
	if e.Source != "" {
		msg = fmt.Sprintf("%s: %s", e.Source, msg)
	}
	if e.Cause != nil {
		return fmt.Sprintf("text extraction failed: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("text extraction failed: %s", msg)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
