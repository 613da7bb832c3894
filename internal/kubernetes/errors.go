package kubernetes

import (
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"

	oerrors "github.com/viewmodes/vmi/internal/errors"
)

// ClassifyError maps Kubernetes API errors onto the CLI's sentinel errors
// so exit codes reflect the failure. Not-found is left to the caller.
func ClassifyError(err error, action string) error {
	switch {
	case err == nil:
		return nil
	case apierrors.IsForbidden(err), apierrors.IsUnauthorized(err):
		return fmt.Errorf("%s: %w: %w", action, oerrors.ErrPermission, err)
	case apierrors.IsServiceUnavailable(err), apierrors.IsTimeout(err), apierrors.IsServerTimeout(err):
		return fmt.Errorf("%s: %w: %w", action, oerrors.ErrConnectivity, err)
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}
