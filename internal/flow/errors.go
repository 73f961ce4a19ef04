package flow

import (
	"errors"
	"fmt"
)

// ErrRetriesExhausted is matched by every ExhaustedError.
var ErrRetriesExhausted = errors.New("max number of retries")

// ValidationFailedError reports a rejected candidate for a field. The flow
// hands it to the Reporter; it is never returned from Run.
type ValidationFailedError struct {
	Field Field
}

// Error returns a user-friendly error message.
func (e *ValidationFailedError) Error() string {
	switch e.Field {
	case FieldHost:
		return "the host is not reachable over https"
	case FieldAccount:
		return "the account address cannot receive mail"
	default:
		return fmt.Sprintf("the %s was not accepted", e.Field)
	}
}

// Is allows errors.Is() to work with wrapped errors.
func (e *ValidationFailedError) Is(target error) bool {
	_, ok := target.(*ValidationFailedError)
	return ok
}

// ExhaustedError is returned when a field's retry budget runs out.
type ExhaustedError struct {
	// Field is the field that could not be completed.
	Field Field
	// Attempts is the number of candidates read for Field.
	Attempts int
}

// Error returns a user-friendly error message with actionable guidance.
func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s after %d %s attempts. Start the program again to reconfigure or raise the retry limit",
		ErrRetriesExhausted, e.Attempts, e.Field)
}

// Unwrap returns ErrRetriesExhausted.
func (e *ExhaustedError) Unwrap() error {
	return ErrRetriesExhausted
}
