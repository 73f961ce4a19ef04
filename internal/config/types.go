package config

import (
	"time"

	"ctconn/internal/record"
)

// Config is the top-level configuration structure for ctconn.
type Config struct {
	// Retries bounds the attempts per field while collecting credentials.
	// Zero means unbounded.
	Retries int `yaml:"retries"`

	// Persistence selects what is remembered between runs: off, host or full.
	Persistence record.Mode `yaml:"persistence"`

	// RecordFile is where the credential record is kept. A leading "~/" is
	// expanded to the user's home directory.
	RecordFile string `yaml:"recordFile"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"logLevel"`

	// HTTPTimeout bounds the liveness probe and the login request.
	// Zero leaves the transport defaults in place.
	HTTPTimeout time.Duration `yaml:"httpTimeout"`

	// StrictStatus treats non-2xx login responses as rejected credentials.
	StrictStatus bool `yaml:"strictStatus"`

	// VerifySMTP lets the deliverability check talk to the account's mail server.
	VerifySMTP bool `yaml:"verifySMTP"`
}
