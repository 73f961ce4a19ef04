package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"ctconn/pkg/logging"

	"golang.org/x/net/publicsuffix"
)

// loginURLFormat is the login endpoint. The secret travels in the query
// string; this is the service's wire contract and is kept as is.
const loginURLFormat = "https://%s/?q=login/ajax?email=%s&password=%s"

// ClientConfig configures the authentication client.
type ClientConfig struct {
	// Transport is used for the login request. Defaults to http.DefaultTransport.
	Transport http.RoundTripper

	// Timeout bounds the login request. Zero means no timeout beyond the transport's own.
	Timeout time.Duration

	// StrictStatus turns non-2xx responses into AuthRejectedError. When false,
	// any response counts as a successful sign-in.
	StrictStatus bool
}

// Client performs the authentication handshake.
type Client struct {
	transport    http.RoundTripper
	timeout      time.Duration
	strictStatus bool
}

// NewClient creates a Client from cfg.
func NewClient(cfg ClientConfig) *Client {
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &Client{
		transport:    transport,
		timeout:      cfg.Timeout,
		strictStatus: cfg.StrictStatus,
	}
}

// Authenticate sends one login request embedding host, account and secret.
//
// On success the returned Session takes ownership of creds. On failure creds
// are left with the caller, who is responsible for releasing them.
//
// Only transport success is checked: the response body is never inspected,
// so a service that answers 200 to a wrong password still yields a Session
// unless StrictStatus is set.
func (c *Client) Authenticate(ctx context.Context, creds *Credentials) (*Session, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	httpClient := &http.Client{
		Transport: c.transport,
		Timeout:   c.timeout,
		Jar:       jar,
	}

	var req *http.Request
	creds.Secret.Expose(func(b []byte) {
		req, err = http.NewRequestWithContext(ctx, http.MethodPost,
			fmt.Sprintf(loginURLFormat, creds.Host, creds.Account, b), nil)
	})
	if err != nil {
		return nil, &TransportError{Host: creds.Host, Cause: redact(err, creds)}
	}

	logging.Debug("Session", "Sending login request to %s", RedactedLoginURL(creds))
	resp, err := httpClient.Do(req)
	if err != nil {
		logging.Audit(logging.AuditEvent{
			Action:  "login",
			Outcome: "transport_failure",
			Host:    creds.Host,
			Account: creds.Account,
		})
		return nil, &TransportError{Host: creds.Host, Cause: redact(err, creds)}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if c.strictStatus && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		logging.Audit(logging.AuditEvent{
			Action:  "login",
			Outcome: "rejected",
			Host:    creds.Host,
			Account: creds.Account,
		})
		return nil, &AuthRejectedError{Host: creds.Host, StatusCode: resp.StatusCode}
	}

	sess := newSession(creds, httpClient)
	logging.Audit(logging.AuditEvent{
		Action:  "login",
		Outcome: "success",
		Host:    creds.Host,
		Account: creds.Account,
		Target:  sess.ID.String(),
	})
	return sess, nil
}

// RedactedLoginURL returns the login URL with the secret masked, for logs
// and error messages.
func RedactedLoginURL(creds *Credentials) string {
	return fmt.Sprintf(loginURLFormat, creds.Host, creds.Account, creds.Secret.Mask())
}

// errMalformedLoginURL replaces parse errors, whose text may quote part of the secret.
var errMalformedLoginURL = errors.New("account or secret contains characters that cannot be sent in the login URL")

// redact replaces the URL recorded in a *url.Error, which would otherwise
// carry the secret in its query string.
func redact(err error, creds *Credentials) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = RedactedLoginURL(creds)
		if urlErr.Op == "parse" {
			urlErr.Err = errMalformedLoginURL
		}
	}
	return err
}
