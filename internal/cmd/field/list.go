package field

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/viewmodes/vmi/internal/cmdutil"
	"github.com/viewmodes/vmi/internal/config"
	"github.com/viewmodes/vmi/internal/output"
	"github.com/viewmodes/vmi/internal/store"
)

type fieldRow struct {
	Field   string `json:"field"`
	Config  string `json:"config"`
	Present bool   `json:"present"`
}

// NewListCmd creates the field ls command.
func NewListCmd(gc *config.GlobalConfig) *cobra.Command {
	var entityTypeFlag string

	cmd := &cobra.Command{
		Use:     "ls <bundle>",
		Aliases: []string{"list"},
		Short:   "List recorded fields of a bundle",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cmdutil.ResolveFormat(gc, output.FormatTable)
			if err != nil {
				return err
			}

			s, err := cmdutil.OpenStore(gc)
			if err != nil {
				return err
			}

			entityType := cmdutil.EntityType(gc, entityTypeFlag)
			prefix := store.FieldPrefix(entityType, args[0])
			names, err := s.List(cmd.Context(), prefix)
			if err != nil {
				return cmdutil.PrintError("listing fields", err)
			}

			oracle := store.NewOracle(s)
			rows := make([]fieldRow, 0, len(names))
			for _, name := range names {
				field := strings.TrimPrefix(name, prefix)
				present, err := oracle.FieldExists(cmd.Context(), entityType, args[0], field)
				if err != nil {
					return cmdutil.PrintError("reading "+name, err)
				}
				rows = append(rows, fieldRow{Field: field, Config: name, Present: present})
			}

			if format != output.FormatTable {
				return cmdutil.WriteStructured(cmd.OutOrStdout(), rows, format)
			}

			if len(rows) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No fields recorded for %s %s\n", entityType, args[0])
				return nil
			}

			tbl := output.NewTable("FIELD", "STATUS", "CONFIG").
				StyleColumn(1, fieldStatusStyle)
			for _, r := range rows {
				status := "present"
				if !r.Present {
					status = store.FieldStatusNew
				}
				tbl.Row(r.Field, status, r.Config)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tbl.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&entityTypeFlag, "entity-type", "",
		"Entity type of the bundle (default: from config, node)")

	return cmd
}

func fieldStatusStyle(status string) lipgloss.Style {
	if status == store.FieldStatusNew {
		return output.StatusStyle(output.StatusUnchanged)
	}
	return output.StatusStyle(output.StatusCreated)
}
