package session

import (
	"net/http"
	"time"

	"ctconn/internal/secret"

	"github.com/google/uuid"
)

// Credentials are the three accepted values for one authentication attempt.
// The secret is owned by the Credentials; Release wipes it.
type Credentials struct {
	Host    string
	Account string
	Secret  *secret.String
}

// NewCredentials assembles credentials and takes ownership of sec.
func NewCredentials(host, account string, sec *secret.String) *Credentials {
	return &Credentials{Host: host, Account: account, Secret: sec}
}

// Release wipes the secret. Safe to call more than once.
func (c *Credentials) Release() {
	if c == nil {
		return
	}
	c.Secret.Release()
}

// Session is a signed-in connection to the remote service. It can only be
// obtained from Client.Authenticate.
type Session struct {
	// ID identifies the session in logs.
	ID uuid.UUID

	// CreatedAt is when the handshake completed.
	CreatedAt time.Time

	creds  *Credentials
	client *http.Client
}

func newSession(creds *Credentials, client *http.Client) *Session {
	return &Session{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		creds:     creds,
		client:    client,
	}
}

// Host returns the host the session is bound to.
func (s *Session) Host() string { return s.creds.Host }

// Account returns the account the session signed in with.
func (s *Session) Account() string { return s.creds.Account }

// Credentials returns the credentials the session owns.
func (s *Session) Credentials() *Credentials { return s.creds }

// HTTPClient returns the client carrying the session cookies.
func (s *Session) HTTPClient() *http.Client { return s.client }

// Close releases the session's credentials.
func (s *Session) Close() {
	if s == nil {
		return
	}
	s.creds.Release()
}
