package flow

import (
	"context"
	"fmt"
	"strings"

	"ctconn/internal/record"
	"ctconn/internal/secret"
	"ctconn/internal/session"
	"ctconn/pkg/logging"
)

// Field names one of the three collected values.
type Field int

const (
	FieldHost Field = iota
	FieldAccount
	FieldSecret
)

func (f Field) String() string {
	switch f {
	case FieldHost:
		return "host"
	case FieldAccount:
		return "account"
	case FieldSecret:
		return "secret"
	default:
		return "unknown"
	}
}

// State is the position of a Flow in the acquisition sequence.
type State int

const (
	StateCollectingHost State = iota
	StateCollectingAccount
	StateCollectingSecret
	StateAuthenticating
	StateSuccess
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateCollectingHost:
		return "CollectingHost"
	case StateCollectingAccount:
		return "CollectingAccount"
	case StateCollectingSecret:
		return "CollectingSecret"
	case StateAuthenticating:
		return "Authenticating"
	case StateSuccess:
		return "Success"
	case StateExhausted:
		return "Exhausted"
	default:
		return "Unknown"
	}
}

const (
	hostPrompt    = `Host of your ChurchTools site without a trailing "." (for example "xxx.church.tools"): `
	accountPrompt = "Email address of the user: "
	secretPrompt  = "Password of that user: "
)

// Validator checks host and account candidates.
type Validator interface {
	HostReachable(ctx context.Context, host string) bool
	AddressDeliverable(ctx context.Context, address string) bool
}

// Authenticator performs the login handshake. On success the returned
// session owns creds; on failure the caller keeps them.
type Authenticator interface {
	Authenticate(ctx context.Context, creds *session.Credentials) (*session.Session, error)
}

// RecordStore persists accepted values between runs.
type RecordStore interface {
	Enabled() bool
	Mode() record.Mode
	Load() (*record.Record, error)
	Save(rec *record.Record) error
}

// Options configures a Flow.
type Options struct {
	// Retries bounds the attempts per field. Zero means unbounded.
	Retries int

	// Reporter receives progress. Defaults to NopReporter.
	Reporter Reporter

	// Store is consulted by Acquire. Nil disables persistence.
	Store RecordStore
}

// Flow collects host, account and secret with a bounded number of attempts
// per field and authenticates with them.
//
// A Flow is single use and not safe for concurrent use.
type Flow struct {
	source    Source
	validator Validator
	auth      Authenticator
	store     RecordStore
	reporter  Reporter
	retries   int

	state    State
	host     string
	account  string
	attempts [3]int
}

// New creates a Flow reading candidates from source.
func New(source Source, validator Validator, auth Authenticator, opts Options) *Flow {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Flow{
		source:    source,
		validator: validator,
		auth:      auth,
		store:     opts.Store,
		reporter:  reporter,
		retries:   opts.Retries,
		state:     StateCollectingHost,
	}
}

// Prefill accepts host without asking for or validating it, so Run starts
// at CollectingAccount.
func (f *Flow) Prefill(host string) {
	if f.state != StateCollectingHost {
		return
	}
	f.host = host
	f.state = StateCollectingAccount
}

// State returns the current state.
func (f *Flow) State() State { return f.state }

// Attempts returns how many candidates have been read for field.
func (f *Flow) Attempts(field Field) int {
	if field < FieldHost || field > FieldSecret {
		return 0
	}
	return f.attempts[field]
}

// Acquire consults the record store before running the interactive flow.
//
// A full record authenticates directly with its stored values and skips all
// collection, including a host given through Prefill. A host-only record prefills the host. After an interactive
// success the accepted values are written back to the store; if that write
// fails the session is closed and the record error is returned.
func (f *Flow) Acquire(ctx context.Context) (*session.Session, error) {
	if f.store == nil || !f.store.Enabled() {
		return f.Run(ctx)
	}

	rec, err := f.store.Load()
	if err != nil {
		return nil, err
	}
	if rec != nil {
		if f.store.Mode() == record.ModeFull && rec.Complete() {
			if f.state == StateCollectingAccount && f.host != rec.Host {
				logging.Warn("Flow", "Ignoring host %s, the stored record for %s is used instead", f.host, rec.Host)
			}
			logging.Info("Flow", "Using stored credentials for %s", rec.Host)
			f.state = StateAuthenticating
			sess, err := Direct(ctx, f.auth, rec.Host, rec.Account, rec.Secret)
			if err != nil {
				return nil, err
			}
			f.state = StateSuccess
			return sess, nil
		}
		rec.Release()
		logging.Info("Flow", "Using stored host %s", rec.Host)
		f.Prefill(rec.Host)
	}

	sess, err := f.Run(ctx)
	if err != nil {
		return nil, err
	}

	creds := sess.Credentials()
	if err := f.store.Save(&record.Record{Host: creds.Host, Account: creds.Account, Secret: creds.Secret}); err != nil {
		sess.Close()
		return nil, err
	}
	return sess, nil
}

// Run collects the fields that are still missing and authenticates.
//
// A rejected host or account consumes one attempt and is asked again. A
// failed login of any kind consumes one secret attempt and asks for the
// secret only. Running out of attempts for any field returns an
// ExhaustedError without touching later fields.
func (f *Flow) Run(ctx context.Context) (*session.Session, error) {
	var err error
	if f.state == StateCollectingHost {
		f.host, err = f.collectLine(ctx, FieldHost, hostPrompt, f.validator.HostReachable)
		if err != nil {
			return nil, err
		}
		f.state = StateCollectingAccount
	}
	if f.state == StateCollectingAccount {
		f.account, err = f.collectLine(ctx, FieldAccount, accountPrompt, f.validator.AddressDeliverable)
		if err != nil {
			return nil, err
		}
		f.state = StateCollectingSecret
	}
	if f.state != StateCollectingSecret {
		return nil, fmt.Errorf("flow cannot run from state %s", f.state)
	}
	return f.authenticate(ctx)
}

func (f *Flow) collectLine(ctx context.Context, field Field, prompt string, accept func(context.Context, string) bool) (string, error) {
	budget := NewRetryBudget(f.retries)
	for budget.Take() {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		f.attempts[field]++
		line, err := f.source.ReadLine(prompt)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", field, err)
		}
		candidate := strings.TrimSpace(line)

		f.reporter.Checking(field, candidate)
		ok := accept(ctx, candidate)
		f.reporter.Checked(field, ok)
		if ok {
			logging.Debug("Flow", "Accepted %s %q after %d attempts", field, candidate, budget.Used())
			return candidate, nil
		}
		logging.Debug("Flow", "Rejected %s %q", field, candidate)
		f.reporter.Rejected(field, &ValidationFailedError{Field: field}, budget.Remaining())
	}
	return "", f.exhausted(field, budget)
}

func (f *Flow) authenticate(ctx context.Context) (*session.Session, error) {
	budget := NewRetryBudget(f.retries)
	for budget.Take() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f.state = StateCollectingSecret
		f.attempts[FieldSecret]++
		sec, err := f.source.ReadSecret(secretPrompt)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", FieldSecret, err)
		}

		f.state = StateAuthenticating
		creds := session.NewCredentials(f.host, f.account, sec)
		f.reporter.Checking(FieldSecret, sec.Mask())
		sess, err := f.auth.Authenticate(ctx, creds)
		f.reporter.Checked(FieldSecret, err == nil)
		if err == nil {
			f.state = StateSuccess
			return sess, nil
		}

		creds.Release()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logging.Debug("Flow", "Login attempt %d for %s failed: %v", budget.Used(), f.account, err)
		f.reporter.Rejected(FieldSecret, err, budget.Remaining())
	}
	return nil, f.exhausted(FieldSecret, budget)
}

func (f *Flow) exhausted(field Field, budget *RetryBudget) error {
	f.state = StateExhausted
	err := &ExhaustedError{Field: field, Attempts: budget.Used()}
	logging.Warn("Flow", "%s", err)
	return err
}

// Direct authenticates once with values supplied by the caller.
//
// It performs no validation and has no retry budget; it shares no state with
// any Flow. Direct takes ownership of sec and releases it on failure.
func Direct(ctx context.Context, auth Authenticator, host, account string, sec *secret.String) (*session.Session, error) {
	creds := session.NewCredentials(host, account, sec)
	sess, err := auth.Authenticate(ctx, creds)
	if err != nil {
		creds.Release()
		return nil, err
	}
	return sess, nil
}
