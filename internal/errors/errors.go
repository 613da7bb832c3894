// Package errors provides sentinel and structured errors for the vmi CLI.
package errors

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates a malformed template, inventory, or config file.
	ErrValidation = errors.New("validation error")

	// ErrConnectivity indicates the configuration store could not be reached.
	ErrConnectivity = errors.New("connectivity error")

	// ErrPermission indicates insufficient permissions on the configuration store.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound indicates an asset, template, or config object was not found.
	ErrNotFound = errors.New("not found")
)

// DetailError is a user-facing error with optional location and hint.
type DetailError struct {
	// Type is a short category such as "validation failed".
	Type string

	Message string

	// Location is a file path, asset path or config object name.
	Location string

	// Field is the offending key for config file errors.
	Field string

	// Context holds extra labelled values, printed in key order.
	Context map[string]string

	Hint string

	// Cause is usually one of the sentinels above.
	Cause error
}

// Error renders the error as an indented block:
//
//	Error: <type>
//	  Location: ...
//	  Field: ...
//
//	  <message>
//
//	Hint: ...
func (e *DetailError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s\n", e.Type)

	labels := []struct{ key, val string }{
		{"Location", e.Location},
		{"Field", e.Field},
	}
	for _, k := range slices.Sorted(maps.Keys(e.Context)) {
		labels = append(labels, struct{ key, val string }{k, e.Context[k]})
	}
	for _, l := range labels {
		if l.val != "" {
			fmt.Fprintf(&b, "  %s: %s\n", l.key, l.val)
		}
	}

	fmt.Fprintf(&b, "\n  %s\n", e.Message)
	if e.Hint != "" {
		fmt.Fprintf(&b, "\nHint: %s\n", e.Hint)
	}
	return b.String()
}

// Unwrap returns the cause.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, location, field, hint string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Field:    field,
		Hint:     hint,
		Cause:    ErrValidation,
	}
}

// NewConnectivityError creates a connectivity error with details.
func NewConnectivityError(message string, context map[string]string, hint string) error {
	return &DetailError{
		Type:    "connectivity failed",
		Message: message,
		Context: context,
		Hint:    hint,
		Cause:   ErrConnectivity,
	}
}

// NewNotFoundError creates a not found error with details.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
