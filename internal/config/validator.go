package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"extedit/internal/textenc"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "editor.command")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateEditor()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateEditor validates the EditorConfig
func (c *Config) validateEditor() []ValidationError {
	var errors []ValidationError

	if len(c.Editor.Command) == 0 {
		errors = append(errors, ValidationError{
			Field:   "editor.command",
			Value:   c.Editor.Command,
			Message: "must contain at least the editor executable",
		})
	} else if c.Editor.Command[0] == "" {
		errors = append(errors, ValidationError{
			Field:   "editor.command",
			Value:   c.Editor.Command,
			Message: "executable must not be empty",
		})
	}

	for pattern, command := range c.Editor.Commands {
		if _, err := glob.Compile(pattern); err != nil {
			errors = append(errors, ValidationError{
				Field:   "editor.commands",
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
		if len(command) == 0 {
			errors = append(errors, ValidationError{
				Field:   "editor.commands",
				Value:   pattern,
				Message: "command override must contain at least the editor executable",
			})
		}
	}

	if _, err := textenc.Lookup(c.Editor.Encoding); err != nil {
		errors = append(errors, ValidationError{
			Field:   "editor.encoding",
			Value:   c.Editor.Encoding,
			Message: "unknown text encoding",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
