// Package store persists configuration objects.
//
// A Store replaces a whole named document on Save, the way the host CMS's
// editable config does: open or create the object, set all of its data,
// save. Two backends exist: YAML files in a directory and Kubernetes
// ConfigMaps.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/viewmodes/vmi/internal/document"
	oerrors "github.com/viewmodes/vmi/internal/errors"
)

// ErrNotFound is returned by Get when no object has the requested name.
var ErrNotFound = fmt.Errorf("config object %w", oerrors.ErrNotFound)

// ErrInvalidName is returned for names that cannot identify a config object.
var ErrInvalidName = errors.New("invalid config object name")

// Store reads and writes configuration objects by name.
// Implementations are safe for concurrent use.
type Store interface {
	// Get returns the stored document, or ErrNotFound.
	Get(ctx context.Context, name string) (*document.Value, error)

	// Save replaces the whole body of the named object, creating it if needed.
	Save(ctx context.Context, name string, doc *document.Value) error

	// List returns the names of stored objects starting with prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)

	// Delete removes the named object. Deleting a missing object is not an error.
	Delete(ctx context.Context, name string) error
}

// ValidateName checks that name can be used as a config object name.
// Names are dotted identifiers such as core.entity_view_display.node.article.full.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	case strings.ContainsAny(name, " \t\n"):
		return fmt.Errorf("%w: %q contains whitespace", ErrInvalidName, name)
	}
	return nil
}

// IsNotFound reports whether err means the object is not stored.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Exists reports whether name is stored.
func Exists(ctx context.Context, s Store, name string) (bool, error) {
	_, err := s.Get(ctx, name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}
