package record

import (
	"errors"
	"fmt"
)

// errMissingKey is wrapped by ParseError when a required key is absent.
var errMissingKey = errors.New("missing required key")

// ParseError indicates the record file exists but is not a valid record.
// The remedy is to delete the file and enter the values again.
type ParseError struct {
	// Path is the record file.
	Path string
	// Cause is the underlying decoding or validation error.
	Cause error
}

// Error returns a user-friendly error message with actionable guidance.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing the file '%s' failed, try deleting the file and retype the values. Cause of the error: %v",
		e.Path, e.Cause)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is allows errors.Is() to work with wrapped errors.
func (e *ParseError) Is(target error) bool {
	_, ok := target.(*ParseError)
	return ok
}

// IOError indicates the record file could not be read or written.
type IOError struct {
	// Path is the record file.
	Path string
	// Cause is the underlying filesystem error.
	Cause error
}

// Error returns a user-friendly error message with actionable guidance.
func (e *IOError) Error() string {
	return fmt.Sprintf("file '%s' is not accessible. Have you closed every program accessing the file? Cause of error: %v",
		e.Path, e.Cause)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Cause
}

// Is allows errors.Is() to work with wrapped errors.
func (e *IOError) Is(target error) bool {
	_, ok := target.(*IOError)
	return ok
}
