package session

import (
	"fmt"
	"net/http"
)

// TransportError indicates the login request could not be sent or no
// response was received.
type TransportError struct {
	// Host is the service the request was addressed to.
	Host string
	// Cause is the underlying error, with the login URL redacted.
	Cause error
}

// Error returns a user-friendly error message.
func (e *TransportError) Error() string {
	return fmt.Sprintf("could not send login request to %s: %v", e.Host, e.Cause)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// Is allows errors.Is() to work with wrapped errors.
func (e *TransportError) Is(target error) bool {
	_, ok := target.(*TransportError)
	return ok
}

// AuthRejectedError indicates the service answered the login request with a
// non-success status. Only produced when strict status checking is enabled.
type AuthRejectedError struct {
	// Host is the service that rejected the login.
	Host string
	// StatusCode is the HTTP status of the response.
	StatusCode int
}

// Error returns a user-friendly error message with actionable guidance.
func (e *AuthRejectedError) Error() string {
	return fmt.Sprintf("authentication failed for %s, status code %d (%s), is the password correct?",
		e.Host, e.StatusCode, http.StatusText(e.StatusCode))
}

// Is allows errors.Is() to work with wrapped errors.
func (e *AuthRejectedError) Is(target error) bool {
	_, ok := target.(*AuthRejectedError)
	return ok
}
