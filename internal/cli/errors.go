package cli

import (
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"ctconn/internal/flow"
	"ctconn/internal/record"
	"ctconn/internal/session"
)

// ConnectionErrorType categorizes the type of connection error.
type ConnectionErrorType int

const (
	// ConnectionErrorUnknown indicates an unclassified connection error.
	ConnectionErrorUnknown ConnectionErrorType = iota
	// ConnectionErrorTLS indicates a TLS/certificate verification error.
	ConnectionErrorTLS
	// ConnectionErrorNetwork indicates a network connectivity error (e.g., refused, unreachable).
	ConnectionErrorNetwork
	// ConnectionErrorTimeout indicates a connection timeout.
	ConnectionErrorTimeout
	// ConnectionErrorDNS indicates a DNS resolution failure.
	ConnectionErrorDNS
)

// String returns a human-readable name for the connection error type.
func (t ConnectionErrorType) String() string {
	switch t {
	case ConnectionErrorTLS:
		return "TLS certificate error"
	case ConnectionErrorNetwork:
		return "Network error"
	case ConnectionErrorTimeout:
		return "Connection timeout"
	case ConnectionErrorDNS:
		return "DNS resolution error"
	default:
		return "Connection error"
	}
}

// ConnectionError indicates a connection failure to a host.
// It wraps the underlying error and provides categorization for better user feedback.
type ConnectionError struct {
	// Host is the host that could not be reached.
	Host string
	// Type categorizes the connection error.
	Type ConnectionErrorType
	// Reason is the underlying error.
	Reason error
}

// Error returns a user-friendly error message with actionable guidance.
func (e *ConnectionError) Error() string {
	reason := FormatConnectionErrorReason(e.Reason)
	switch e.Type {
	case ConnectionErrorTLS:
		return fmt.Sprintf("TLS certificate verification failed for %s: %s\n"+
			"Check that the host is spelled correctly and serves a valid certificate.", e.Host, reason)
	case ConnectionErrorDNS:
		return fmt.Sprintf("DNS resolution failed for %s: %s\n"+
			"Check the host name, it should look like \"xxx.church.tools\".", e.Host, reason)
	case ConnectionErrorTimeout:
		return fmt.Sprintf("Connection to %s timed out: %s", e.Host, reason)
	case ConnectionErrorNetwork:
		return fmt.Sprintf("Connection failed to %s: %s\n"+
			"Check your network connection.", e.Host, reason)
	default:
		return fmt.Sprintf("Connection failed to %s: %s", e.Host, reason)
	}
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error {
	return e.Reason
}

// Is allows errors.Is() to work with wrapped errors.
func (e *ConnectionError) Is(target error) bool {
	_, ok := target.(*ConnectionError)
	return ok
}

// ClassifyConnectionError analyzes an error and returns a ConnectionError with the appropriate type.
// If the error is nil, returns nil.
func ClassifyConnectionError(err error, host string) *ConnectionError {
	if err == nil {
		return nil
	}

	connErr := &ConnectionError{Host: host, Reason: err}

	var dnsErr *net.DNSError
	switch {
	case isTLSError(err):
		connErr.Type = ConnectionErrorTLS
	case errors.As(err, &dnsErr):
		connErr.Type = ConnectionErrorDNS
	case isTimeoutError(err):
		connErr.Type = ConnectionErrorTimeout
	case isNetworkError(err.Error()):
		connErr.Type = ConnectionErrorNetwork
	default:
		connErr.Type = ConnectionErrorUnknown
	}
	return connErr
}

// isTLSError checks if the error is related to TLS/certificate issues.
func isTLSError(err error) bool {
	if err == nil {
		return false
	}

	var certErr x509.CertificateInvalidError
	var hostErr x509.HostnameError
	var unknownAuthErr x509.UnknownAuthorityError
	var systemRootsErr x509.SystemRootsError

	if errors.As(err, &certErr) || errors.As(err, &hostErr) ||
		errors.As(err, &unknownAuthErr) || errors.As(err, &systemRootsErr) {
		return true
	}

	// "certificate" is checked broadly as it covers most TLS-related error messages
	errStr := err.Error()
	tlsKeywords := []string{
		"x509:",
		"certificate",
		"tls:",
		"TLS handshake",
	}

	for _, keyword := range tlsKeywords {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}

	return false
}

// isTimeoutError checks if the error is a timeout.
func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}

	errStr := err.Error()
	return strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded")
}

// isNetworkError checks if the error string indicates a network connectivity issue.
func isNetworkError(errStr string) bool {
	networkKeywords := []string{
		"connection refused",
		"connection reset",
		"network is unreachable",
		"no route to host",
		"dial tcp",
		"connect:",
	}

	for _, keyword := range networkKeywords {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}

// FormatConnectionErrorReason extracts a concise reason from a connection error.
// It removes verbose prefixes and presents the core issue.
func FormatConnectionErrorReason(err error) string {
	if err == nil {
		return "unknown error"
	}

	errStr := err.Error()

	// TLS errors often have verbose prefixes like "Post https://...: x509: ..."
	if idx := strings.Index(errStr, "x509:"); idx != -1 {
		return strings.TrimSpace(errStr[idx:])
	}

	if idx := strings.Index(errStr, "connect:"); idx != -1 {
		return strings.TrimSpace(errStr[idx:])
	}

	if colonIdx := strings.LastIndex(errStr, ":"); strings.Contains(errStr, "dial tcp") && colonIdx != -1 {
		return strings.TrimSpace(errStr[colonIdx+1:])
	}

	return errStr
}

// Explain turns an error from the acquisition flow into the message shown
// to the operator. Transport failures are classified; everything else
// already carries its own guidance.
func Explain(err error) string {
	if err == nil {
		return ""
	}

	var transportErr *session.TransportError
	if errors.As(err, &transportErr) {
		return ClassifyConnectionError(transportErr.Cause, transportErr.Host).Error()
	}

	var parseErr *record.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Sprintf("%s\nTo delete the file, run:\n  ctconn logout", parseErr.Error())
	}

	var exhausted *flow.ExhaustedError
	if errors.As(err, &exhausted) {
		return exhausted.Error()
	}

	return err.Error()
}
