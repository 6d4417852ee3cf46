package assembly

import "fmt"

// MalformedStateError indicates a stage received state that earlier stages
// should never produce. It signals a programming error, not bad user input.
type MalformedStateError struct {
	Message string
}

func (e *MalformedStateError) Error() string {
	return fmt.Sprintf("malformed pipeline state: %s", e.Message)
}
