// Package field provides the `vmi field` command group.
//
// Field configs record which fields a bundle has. The renderer only keeps
// supported fields that have a field config in the store.
package field

import (
	"github.com/spf13/cobra"

	"github.com/viewmodes/vmi/internal/config"
)

// NewFieldCmd creates the field command group.
func NewFieldCmd(gc *config.GlobalConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "field",
		Short: "Manage field configs of bundles",
		Long: `Commands for recording which fields a bundle has.

A supported field is kept in a rendered display only when its field config
(field.field.<entity_type>.<bundle>.<field>) is in the configuration store
and is not marked status: new.`,
	}

	cmd.AddCommand(
		NewAddCmd(gc),
		NewListCmd(gc),
		NewRemoveCmd(gc),
	)

	return cmd
}
