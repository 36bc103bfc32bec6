// Package errors provides centralized error definitions and error handling
// utilities for extedit. It defines sentinel errors for the edit lifecycle,
// a typed EditError with context wrapping, and classification helpers.
//
// Creating errors:
//
//	err := errors.NewEditError("failed to create initial file", cause)
//	err = err.WithFilename("/tmp/extedit-123")
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrEditInProgress) { ... }
//
//	var editErr *errors.EditError
//	if errors.As(err, &editErr) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Edit lifecycle sentinel errors
var (
	// ErrEditInProgress indicates that an edit cycle is already active on this session.
	ErrEditInProgress = New("already editing a file")
	// ErrEmptyCommand indicates that the configured editor command is empty.
	ErrEmptyCommand = New("editor command is empty")
	// ErrUnknownEncoding indicates that the configured encoding name could not be resolved.
	ErrUnknownEncoding = New("unknown text encoding")
	// ErrEditorCrashed indicates that the editor process terminated abnormally.
	ErrEditorCrashed = New("editor process crashed")
	// ErrNonZeroExit indicates that the editor exited with a non-zero code.
	ErrNonZeroExit = New("editor exited with non-zero code")
)

// Process-related sentinel errors
var (
	// ErrAlreadyRunning is returned when Start is called on an already running process.
	ErrAlreadyRunning = New("process already running")
	// ErrNotStarted is returned when an operation requires a started process but none exists.
	ErrNotStarted = New("process not started")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	retryable  bool
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsRetryable returns whether the error is retryable.
func (e *baseError) IsRetryable() bool {
	return e.retryable
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// EditError represents errors arising during an edit cycle.
//
// Example:
//
//	err := errors.NewEditError("failed to read back edited file", cause)
//	err = err.WithFilename("/tmp/extedit-42")
//	fmt.Println(err) // "edit error [file=/tmp/extedit-42]: failed to read back edited file: ..."
type EditError struct {
	baseError
	Filename string
}

// NewEditError creates a new EditError.
func NewEditError(message string, cause error) *EditError {
	return &EditError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithFilename adds the affected filename to the error context.
func (e *EditError) WithFilename(name string) *EditError {
	e.Filename = name
	return e
}

// WithSeverity sets the error severity.
func (e *EditError) WithSeverity(s Severity) *EditError {
	e.severity = s
	return e
}

// WithRetryable sets whether the error is retryable.
func (e *EditError) WithRetryable(r bool) *EditError {
	e.retryable = r
	return e
}

// Error returns the formatted error message.
func (e *EditError) Error() string {
	var parts []string
	if e.Filename != "" {
		parts = append(parts, fmt.Sprintf("file=%s", e.Filename))
	}

	prefix := "edit error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("edit error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *EditError) Is(target error) bool {
	if _, ok := target.(*EditError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ConfigError represents errors in the extedit configuration.
type ConfigError struct {
	baseError
	Key string
}

// NewConfigError creates a new ConfigError for the given configuration key.
func NewConfigError(key, message string, cause error) *ConfigError {
	return &ConfigError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			retryable:  false,
			userFacing: true,
		},
		Key: key,
	}
}

// Error returns the formatted error message.
func (e *ConfigError) Error() string {
	prefix := "config error"
	if e.Key != "" {
		prefix = fmt.Sprintf("config error [key=%s]", e.Key)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ConfigError) Is(target error) bool {
	if _, ok := target.(*ConfigError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// IsUserFacing reports whether an error is safe to display to end users.
// Errors that don't implement the classification default to false.
func IsUserFacing(err error) bool {
	var classified interface{ IsUserFacing() bool }
	if errors.As(err, &classified) {
		return classified.IsUserFacing()
	}
	return false
}

// IsRetryable reports whether an operation may succeed on retry.
// Errors that don't implement the classification default to false.
func IsRetryable(err error) bool {
	var classified interface{ IsRetryable() bool }
	if errors.As(err, &classified) {
		return classified.IsRetryable()
	}
	return false
}
