package errors

import (
	"fmt"
	"strings"
)

// Configuration-related error constructors.

// ConfigParseError creates an error for YAML parsing failures.
func ConfigParseError(configPath string, parseErr error) *Error {
	return &Error{
		Kind:    ErrConfig,
		Message: fmt.Sprintf("failed to parse configuration: %s", configPath),
		Cause:   parseErr,
		Details: map[string]string{
			"path": configPath,
		},
		Suggestion: `Check your config.yaml for syntax errors:
  1. Ensure proper YAML indentation (use spaces, not tabs)
  2. Lists need a '- ' prefix

Regenerate a default file with:
  menuentry config init --force`,
	}
}

// ConfigValidationError creates an error for invalid configuration values.
func ConfigValidationError(field, message string, validOptions []string) *Error {
	suggestion := fmt.Sprintf("Fix the %q field in your config.yaml", field)
	if len(validOptions) > 0 {
		suggestion += fmt.Sprintf("\n  Valid options: %s", strings.Join(validOptions, ", "))
	}

	return &Error{
		Kind:    ErrConfig,
		Message: fmt.Sprintf("invalid configuration: %s", message),
		Details: map[string]string{
			"field": field,
		},
		Suggestion: suggestion,
	}
}

// ConfigExists creates an error when config init would overwrite a file.
func ConfigExists(configPath string) *Error {
	return &Error{
		Kind:    ErrConfig,
		Message: fmt.Sprintf("configuration file already exists: %s", configPath),
		Details: map[string]string{
			"path": configPath,
		},
		Suggestion: "Use --force to overwrite it.",
	}
}

// NoHomeDirectory creates an error for a session without a usable home directory.
func NoHomeDirectory(cause error) *Error {
	return &Error{
		Kind:       ErrConfig,
		Message:    "cannot determine the home directory",
		Cause:      cause,
		Suggestion: "Set HOME, or pass --user-dir explicitly.",
	}
}
