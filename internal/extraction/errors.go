package extraction

import "fmt"

// InputError is returned when the resume text cannot be processed at all
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid extraction input: %s", e.Message)
}
