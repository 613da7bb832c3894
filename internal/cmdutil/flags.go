// Package cmdutil provides shared command utilities for the vmi subcommands.
// It centralizes flag groups, store and asset construction, and output
// formatting helpers.
package cmdutil

import (
	"fmt"

	"github.com/spf13/cobra"

	oerrors "github.com/viewmodes/vmi/internal/errors"
)

// BundleFlags holds flags for commands that bind templates to bundles
// (render, apply, diff).
type BundleFlags struct {
	Bundles    []string
	EntityType string
}

// AddTo registers the bundle flags on the given cobra command.
func (f *BundleFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.Bundles, "bundle", "b", nil,
		"Content bundle (machine name) to bind the template to (can be repeated)")
	cmd.Flags().StringVar(&f.EntityType, "entity-type", "",
		"Entity type of the bundle (default: from config, node)")
}

// Validate checks that at least one bundle was given and none is empty.
func (f *BundleFlags) Validate() error {
	if len(f.Bundles) == 0 {
		return fmt.Errorf("%w: --bundle is required", oerrors.ErrValidation)
	}
	for _, b := range f.Bundles {
		if b == "" {
			return fmt.Errorf("%w: --bundle must not be empty", oerrors.ErrValidation)
		}
	}
	return nil
}

// Single returns the only bundle, or an error when several were given.
func (f *BundleFlags) Single() (string, error) {
	if err := f.Validate(); err != nil {
		return "", err
	}
	if len(f.Bundles) > 1 {
		return "", fmt.Errorf("%w: exactly one --bundle is accepted", oerrors.ErrValidation)
	}
	return f.Bundles[0], nil
}
