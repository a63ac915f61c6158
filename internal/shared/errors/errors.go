// Package errors defines the gateway error taxonomy and the JSON failure
// envelope returned by the HTTP surface.
package errors

import (
	"errors"
	"fmt"
)

// Failure is the body written for every failed gateway request.
type Failure struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// NewFailure builds a failure envelope carrying message.
func NewFailure(message string) Failure {
	return Failure{OK: false, Error: message}
}

// ConfigurationError reports a required configuration value that is missing.
// It is raised before any network attempt.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is not configured", e.Key)
}

// NewConfigurationError returns a ConfigurationError for key.
func NewConfigurationError(key string) error {
	return &ConfigurationError{Key: key}
}

// SubmissionError reports a failed distributor call: transport failure,
// timeout, or a non-2xx response. StatusCode is zero when no response arrived.
type SubmissionError struct {
	StatusCode int
	Err        error
}

func (e *SubmissionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("order submission failed with HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("order submission failed: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// ValidationError reports a malformed inbound request.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string { return e.Detail }

// NewValidationError returns a ValidationError with detail.
func NewValidationError(detail string) error {
	return &ValidationError{Detail: detail}
}

// IsConfiguration reports whether err wraps a ConfigurationError.
func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsSubmission reports whether err wraps a SubmissionError.
func IsSubmission(err error) bool {
	var target *SubmissionError
	return errors.As(err, &target)
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
