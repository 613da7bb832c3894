package errors

import "errors"

// Exit codes returned by the vmi binary.
const (
	ExitSuccess = 0

	// ExitGeneralError covers unclassified failures and diff finding changes.
	ExitGeneralError = 1

	// ExitValidationError: a template, inventory, flag or config file is invalid.
	ExitValidationError = 2

	// ExitConnectivityError: the configuration store could not be reached.
	ExitConnectivityError = 3

	// ExitPermissionDenied: the store refused the operation.
	ExitPermissionDenied = 4

	// ExitNotFound: an asset, layout or config object is missing.
	ExitNotFound = 5
)

// ExitError carries an explicit exit code through cobra.
type ExitError struct {
	Err  error
	Code int

	// Printed is set when the command layer already reported the error.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// sentinelCodes is checked in order; the first match wins.
var sentinelCodes = []struct {
	sentinel error
	code     int
}{
	{ErrValidation, ExitValidationError},
	{ErrConnectivity, ExitConnectivityError},
	{ErrPermission, ExitPermissionDenied},
	{ErrNotFound, ExitNotFound},
}

// ExitCodeFromError returns the explicit code of an *ExitError in the
// chain, else the code of the first sentinel err matches, else
// ExitGeneralError.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	for _, sc := range sentinelCodes {
		if errors.Is(err, sc.sentinel) {
			return sc.code
		}
	}
	return ExitGeneralError
}
