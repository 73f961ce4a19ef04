package record

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"ctconn/internal/secret"
	"ctconn/pkg/logging"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the record file name inside the ctconn config directory.
const DefaultFileName = "credentials.yaml"

// Mode selects what a Store persists.
type Mode string

const (
	// ModeOff disables persistence. Load finds nothing and Save is a no-op.
	ModeOff Mode = "off"
	// ModeHostOnly persists only the host.
	ModeHostOnly Mode = "host"
	// ModeFull persists host, account and secret in plain text.
	ModeFull Mode = "full"
)

// ParseMode converts a configuration value into a Mode. The empty string is ModeOff.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeOff:
		return ModeOff, nil
	case ModeHostOnly:
		return ModeHostOnly, nil
	case ModeFull:
		return ModeFull, nil
	default:
		return ModeOff, fmt.Errorf("unknown persistence mode %q (expected off, host or full)", s)
	}
}

// Record is a previously accepted set of values. Account and Secret are
// only set for records written in ModeFull.
type Record struct {
	Host    string
	Account string
	Secret  *secret.String
}

// Complete reports whether the record carries all three values.
func (r *Record) Complete() bool {
	return r != nil && r.Host != "" && r.Account != "" && r.Secret.Len() > 0
}

// Release wipes the record's secret, if any.
func (r *Record) Release() {
	if r == nil {
		return
	}
	r.Secret.Release()
}

// fileRecord is the on-disk layout.
type fileRecord struct {
	Host    string `yaml:"host"`
	Account string `yaml:"account,omitempty"`
	Secret  string `yaml:"secret,omitempty"`
}

// Store persists a single Record to a YAML file.
//
// SECURITY: in ModeFull the secret is written in plain text. The file is
// created with 0600 permissions inside a 0700 directory, which is the only
// protection it gets. Secret values are never logged.
type Store struct {
	path string
	mode Mode
}

// NewStore creates a store for the file at path.
func NewStore(path string, mode Mode) *Store {
	return &Store{path: path, mode: mode}
}

// Path returns the record file location.
func (s *Store) Path() string { return s.path }

// Mode returns the persistence mode.
func (s *Store) Mode() Mode { return s.mode }

// Enabled reports whether the store reads and writes records.
func (s *Store) Enabled() bool { return s.mode == ModeHostOnly || s.mode == ModeFull }

// Load reads the record file.
//
// A missing file, or a disabled store, yields (nil, nil). In ModeHostOnly any
// account or secret present in the file is ignored.
func (s *Store) Load() (*Record, error) {
	if !s.Enabled() {
		return nil, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.Debug("Record", "No record file at %s", s.path)
			return nil, nil
		}
		return nil, &IOError{Path: s.path, Cause: err}
	}
	defer secret.Wipe(data, secret.DefaultPad)

	var raw fileRecord
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ParseError{Path: s.path, Cause: err}
	}
	if raw.Host == "" {
		return nil, &ParseError{Path: s.path, Cause: fmt.Errorf("%w: host", errMissingKey)}
	}

	rec := &Record{Host: raw.Host}
	if s.mode == ModeFull {
		if raw.Account == "" {
			return nil, &ParseError{Path: s.path, Cause: fmt.Errorf("%w: account", errMissingKey)}
		}
		if raw.Secret == "" {
			return nil, &ParseError{Path: s.path, Cause: fmt.Errorf("%w: secret", errMissingKey)}
		}
		rec.Account = raw.Account
		rec.Secret = secret.FromString(raw.Secret)
	}

	logging.Debug("Record", "Loaded record for host %s from %s", rec.Host, s.path)
	return rec, nil
}

// Save writes rec to the record file, replacing any previous content.
// Only the host is written unless the store is in ModeFull.
func (s *Store) Save(rec *Record) error {
	if !s.Enabled() || rec == nil {
		return nil
	}

	raw := fileRecord{Host: rec.Host}
	if s.mode == ModeFull {
		raw.Account = rec.Account
		rec.Secret.Expose(func(b []byte) {
			raw.Secret = string(b)
		})
	}

	data, err := yaml.Marshal(&raw)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	defer secret.Wipe(data, secret.DefaultPad)

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return s.auditWriteFailure(rec, &IOError{Path: s.path, Cause: err})
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return s.auditWriteFailure(rec, &IOError{Path: s.path, Cause: err})
	}

	logging.Audit(logging.AuditEvent{
		Action:  "record_write",
		Outcome: "success",
		Host:    rec.Host,
		Account: raw.Account,
		Target:  s.path,
	})
	return nil
}

// Delete removes the record file. A missing file is not an error.
func (s *Store) Delete() error {
	if err := os.Remove(s.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return &IOError{Path: s.path, Cause: err}
	}
	logging.Audit(logging.AuditEvent{
		Action:  "record_delete",
		Outcome: "success",
		Target:  s.path,
	})
	return nil
}

func (s *Store) auditWriteFailure(rec *Record, err error) error {
	logging.Error("Record", err, "Failed to write record for host %s", rec.Host)
	logging.Audit(logging.AuditEvent{
		Action:  "record_write",
		Outcome: "failure",
		Host:    rec.Host,
		Target:  s.path,
		Error:   err.Error(),
	})
	return err
}
