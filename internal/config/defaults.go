package config

import (
	"path/filepath"

	"ctconn/internal/record"
)

const (
	// DefaultRetries is the per-field attempt bound.
	DefaultRetries = 3

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"
)

// GetDefaultConfig returns the default configuration for a config directory.
func GetDefaultConfig(configPath string) Config {
	return Config{
		Retries:     DefaultRetries,
		Persistence: record.ModeOff,
		RecordFile:  filepath.Join(configPath, record.DefaultFileName),
		LogLevel:    DefaultLogLevel,
	}
}
