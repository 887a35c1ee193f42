package parse

import (
	"errors"
	"fmt"
)

// ExhaustedError reports that every parse attempt for a generation request
// failed. It carries the last raw response so callers can log or inspect it
// before substituting a default record.
type ExhaustedError struct {
	Attempts int
	Raw      string
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("no valid structured payload after %d attempts", e.Attempts)
}

// IsExhausted reports whether err means retries ran out, as opposed to a
// transport failure that should abort the run.
func IsExhausted(err error) bool {
	var exhausted *ExhaustedError
	return errors.As(err, &exhausted)
}
