package field

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viewmodes/vmi/internal/cmdutil"
	"github.com/viewmodes/vmi/internal/config"
	"github.com/viewmodes/vmi/internal/output"
	"github.com/viewmodes/vmi/internal/viewmode"
)

// NewRemoveCmd creates the field rm command.
func NewRemoveCmd(gc *config.GlobalConfig) *cobra.Command {
	var entityTypeFlag string

	cmd := &cobra.Command{
		Use:     "rm <bundle> <field>...",
		Aliases: []string{"remove"},
		Short:   "Forget fields on a bundle",
		Long: `Delete the field configs of the given fields. Removing a field that is
not recorded is not an error.

Examples:
  vmi field rm article field_video`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cmdutil.OpenStore(gc)
			if err != nil {
				return err
			}

			entityType := cmdutil.EntityType(gc, entityTypeFlag)
			for _, field := range args[1:] {
				name := viewmode.FieldIdentifier(entityType, args[0], field)
				if err := s.Delete(cmd.Context(), name); err != nil {
					return cmdutil.PrintError(fmt.Sprintf("deleting %s", name), err)
				}
				output.Info(output.FormatConfigLine(name, output.StatusDeleted))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&entityTypeFlag, "entity-type", "",
		"Entity type of the bundle (default: from config, node)")

	return cmd
}
