package errors

import (
	"fmt"
)

// TemplateLookupError reports a required asset (view-mode list, layout
// mapping, or config template) missing at its expected path.
type TemplateLookupError struct {
	// Path is the asset path relative to the asset root.
	Path string

	// Asset is a human-readable description of what was being loaded.
	Asset string

	// Cause is the underlying filesystem error, if any.
	Cause error
}

// Error implements the error interface.
func (e *TemplateLookupError) Error() string {
	if e.Asset != "" {
		return fmt.Sprintf("%s file does not exist: %s", e.Asset, e.Path)
	}
	return fmt.Sprintf("template file does not exist: %s", e.Path)
}

// Unwrap makes TemplateLookupError match ErrNotFound.
func (e *TemplateLookupError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrNotFound, e.Cause}
	}
	return []error{ErrNotFound}
}

// TemplateParseError reports document text that is not valid YAML.
type TemplateParseError struct {
	// Source names the document being parsed (asset path or config name).
	Source string

	// Cause is the parser error.
	Cause error
}

// Error implements the error interface.
func (e *TemplateParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("parsing %s: %v", e.Source, e.Cause)
	}
	return fmt.Sprintf("parsing template: %v", e.Cause)
}

// Unwrap makes TemplateParseError match ErrValidation.
func (e *TemplateParseError) Unwrap() []error {
	return []error{ErrValidation, e.Cause}
}

// OracleError reports a failed field-existence check. The cause is the
// oracle's own error, unmodified.
type OracleError struct {
	// Field is the field identifier being checked.
	Field string

	// Cause is the error returned by the oracle.
	Cause error
}

// Error implements the error interface.
func (e *OracleError) Error() string {
	return fmt.Sprintf("checking field %s: %v", e.Field, e.Cause)
}

// Unwrap returns the oracle's error.
func (e *OracleError) Unwrap() error {
	return e.Cause
}
