package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arthur-debert/nanoboard/nanoboard/store"
)

// CLIError is a user-facing error with context and suggestions.
type CLIError struct {
	Operation   string
	Cause       string
	Details     string
	Suggestions []string
	Underlying  error
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var msg strings.Builder

	if e.Operation != "" {
		fmt.Fprintf(&msg, "failed to %s", e.Operation)
	} else {
		msg.WriteString("operation failed")
	}
	if e.Cause != "" {
		fmt.Fprintf(&msg, ": %s", e.Cause)
	}
	if e.Details != "" {
		fmt.Fprintf(&msg, " (%s)", e.Details)
	}
	if len(e.Suggestions) > 0 {
		msg.WriteString("\n\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			fmt.Fprintf(&msg, "\n  %d. %s", i+1, suggestion)
		}
	}
	return msg.String()
}

// Unwrap returns the underlying error for error chain compatibility
func (e *CLIError) Unwrap() error {
	return e.Underlying
}

// NewValidationError reports an argument the CLI refuses to pass on.
func NewValidationError(operation, field, value string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("invalid %s: %q", field, value),
		Suggestions: suggestions,
	}
}

// NewNotFoundError reports a board, list, card or comment that could not be resolved.
func NewNotFoundError(operation, resource, ref string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("%s %q not found", resource, ref),
		Suggestions: suggestions,
	}
}

// NewAmbiguousError reports a title matching more than one entity.
func NewAmbiguousError(operation, resource, ref string, ids []string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("%s title %q is ambiguous", resource, ref),
		Details:     "matches " + strings.Join(ids, ", "),
		Suggestions: []string{fmt.Sprintf("Refer to the %s by id", resource)},
	}
}

// NewConfigError reports an unusable configuration.
func NewConfigError(operation string, underlying error, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       "configuration error",
		Details:     underlying.Error(),
		Suggestions: suggestions,
		Underlying:  underlying,
	}
}

// NewStoreError wraps a failure to open or read the board store.
func NewStoreError(operation string, underlying error, suggestions ...string) *CLIError {
	cause := "store operation failed"
	details := ""
	if underlying != nil {
		details = underlying.Error()
		errStr := strings.ToLower(details)
		switch {
		case strings.Contains(errStr, "permission denied"):
			cause = "insufficient permissions to access the data directory"
		case strings.Contains(errStr, "database is locked"), strings.Contains(errStr, "locked by another process"):
			cause = "storage is locked by another process"
		case strings.Contains(errStr, "corrupt"):
			cause = "stored boards could not be read"
		}
	}
	return &CLIError{
		Operation:   operation,
		Cause:       cause,
		Details:     details,
		Suggestions: suggestions,
		Underlying:  underlying,
	}
}

// resultError converts a rejected mutation into a CLIError. Applied and
// no-change results return nil.
func resultError(operation string, res store.Result) error {
	err := res.Err()
	if err == nil {
		return nil
	}
	cliErr := &CLIError{Operation: operation, Details: res.Reason, Underlying: err}
	switch {
	case errors.Is(err, store.ErrNotFound):
		cliErr.Cause = "not found"
		cliErr.Suggestions = []string{"Run 'nanoboard board show <board>' to see current ids"}
	case errors.Is(err, store.ErrInvalidRange):
		cliErr.Cause = "position out of range"
	case errors.Is(err, store.ErrCorrupted):
		cliErr.Cause = "stored boards are inconsistent"
		cliErr.Suggestions = []string{"Restore the slot from a backup or an export archive"}
	}
	return cliErr
}
