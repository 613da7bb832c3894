package field

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viewmodes/vmi/internal/cmdutil"
	"github.com/viewmodes/vmi/internal/config"
	"github.com/viewmodes/vmi/internal/document"
	"github.com/viewmodes/vmi/internal/output"
	"github.com/viewmodes/vmi/internal/store"
	"github.com/viewmodes/vmi/internal/viewmode"
)

// NewAddCmd creates the field add command.
func NewAddCmd(gc *config.GlobalConfig) *cobra.Command {
	var (
		entityTypeFlag  string
		placeholderFlag bool
	)

	cmd := &cobra.Command{
		Use:   "add <bundle> <field>...",
		Short: "Record fields on a bundle",
		Long: `Save a field config for each field on the bundle.

With --placeholder the configs are saved with status: new, which the
renderer treats as absent.

Examples:
  vmi field add article body field_image
  vmi field add article field_video --placeholder`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cmdutil.OpenStore(gc)
			if err != nil {
				return err
			}

			entityType := cmdutil.EntityType(gc, entityTypeFlag)
			bundle := args[0]

			for _, field := range args[1:] {
				name := viewmode.FieldIdentifier(entityType, bundle, field)
				doc := store.NewFieldConfig(entityType, bundle, field)
				if placeholderFlag {
					doc.Set("status", document.NewString(store.FieldStatusNew))
				}

				status := output.StatusCreated
				current, err := s.Get(cmd.Context(), name)
				switch {
				case err == nil && document.Equal(current, doc):
					output.Info(output.FormatConfigLine(name, output.StatusUnchanged))
					continue
				case err == nil:
					status = output.StatusConfigured
				case !store.IsNotFound(err):
					return cmdutil.PrintError(fmt.Sprintf("reading %s", name), err)
				}

				if err := s.Save(cmd.Context(), name, doc); err != nil {
					return cmdutil.PrintError(fmt.Sprintf("saving %s", name), err)
				}
				output.Info(output.FormatConfigLine(name, status))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&entityTypeFlag, "entity-type", "",
		"Entity type of the bundle (default: from config, node)")
	cmd.Flags().BoolVar(&placeholderFlag, "placeholder", false,
		"Save as status: new (counts as absent)")

	return cmd
}
