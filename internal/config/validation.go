package config

import (
	"fmt"
	"strings"

	"ctconn/internal/record"
	"ctconn/pkg/logging"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value interface{}) {
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	})
}

// Validate checks every field and reports all problems at once.
// Persistence and LogLevel are normalized in place.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.Retries < 0 {
		errs.Add("retries", "must be zero (unbounded) or a positive number", c.Retries)
	}

	mode, err := record.ParseMode(string(c.Persistence))
	if err != nil {
		errs.Add("persistence", "must be one of: off, host, full", c.Persistence)
	} else {
		c.Persistence = mode
	}

	if mode != record.ModeOff && strings.TrimSpace(c.RecordFile) == "" {
		errs.Add("recordFile", "is required when persistence is enabled", c.RecordFile)
	}

	if level, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs.Add("logLevel", "must be one of: debug, info, warn, error", c.LogLevel)
	} else {
		c.LogLevel = strings.ToLower(level.String())
	}

	if c.HTTPTimeout < 0 {
		errs.Add("httpTimeout", "must not be negative", c.HTTPTimeout)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
