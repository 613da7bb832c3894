package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/viewmodes/vmi/internal/cmdutil"
	"github.com/viewmodes/vmi/internal/config"
	oerrors "github.com/viewmodes/vmi/internal/errors"
	"github.com/viewmodes/vmi/internal/inventory"
	"github.com/viewmodes/vmi/internal/output"
)

type viewModeRow struct {
	inventory.ViewMode
	Layouts []string `json:"layouts"`
}

// NewViewModesCmd creates the view-modes command.
func NewViewModesCmd(gc *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:     "view-modes",
		Aliases: []string{"vm"},
		Short:   "List the view mode inventory",
		Long: `List the view modes in the inventory together with the layouts that
render each of them.

Examples:
  # Table of view modes
  vmi view-modes

  # As JSON
  vmi view-modes -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := cmdutil.ResolveFormat(gc, output.FormatTable)
			if err != nil {
				return err
			}

			assets, err := cmdutil.OpenAssets(gc)
			if err != nil {
				return cmdutil.PrintError("opening assets", err)
			}
			modes, err := inventory.LoadViewModes(assets)
			if err != nil {
				return cmdutil.PrintError("loading view modes", err)
			}
			layouts, err := inventory.LoadLayoutsMapping(assets)
			if err != nil {
				return cmdutil.PrintError("loading layouts mapping", err)
			}

			rows := make([]viewModeRow, 0, len(modes))
			for _, m := range modes {
				row := viewModeRow{ViewMode: m, Layouts: []string{}}
				for _, l := range layouts.ForViewMode(m.ID) {
					row.Layouts = append(row.Layouts, l.ID)
				}
				rows = append(rows, row)
			}

			if format != output.FormatTable {
				return cmdutil.WriteStructured(cmd.OutOrStdout(), rows, format)
			}

			tbl := output.NewTable("ID", "LABEL", "LAYOUTS")
			for _, r := range rows {
				tbl.Row(r.ID, r.Label, strings.Join(r.Layouts, ", "))
			}
			fmt.Fprintln(cmd.OutOrStdout(), tbl.String())
			return nil
		},
	}
}

// NewLayoutsCmd creates the layouts command.
func NewLayoutsCmd(gc *config.GlobalConfig) *cobra.Command {
	var checkFlag bool

	cmd := &cobra.Command{
		Use:   "layouts",
		Short: "List the layout to view mode mapping",
		Long: `List the layouts and the view modes each one renders.

With --check, verify that every mapped view mode exists in the inventory
and has a template. Problems are reported and the command exits 2.

Examples:
  vmi layouts
  vmi layouts --check
  vmi layouts --assets-dir ./viewmodes --check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := cmdutil.ResolveFormat(gc, output.FormatTable)
			if err != nil {
				return err
			}

			assets, err := cmdutil.OpenAssets(gc)
			if err != nil {
				return cmdutil.PrintError("opening assets", err)
			}
			layouts, err := inventory.LoadLayoutsMapping(assets)
			if err != nil {
				return cmdutil.PrintError("loading layouts mapping", err)
			}

			if checkFlag {
				return runLayoutsCheck(cmd, assets, layouts)
			}

			if format != output.FormatTable {
				return cmdutil.WriteStructured(cmd.OutOrStdout(), layouts, format)
			}

			tbl := output.NewTable("LAYOUT", "LABEL", "VIEW MODES")
			for _, l := range layouts {
				tbl.Row(l.ID, l.Label, strings.Join(l.ViewModes, ", "))
			}
			fmt.Fprintln(cmd.OutOrStdout(), tbl.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkFlag, "check", false,
		"Verify mapped view modes exist and have templates")

	return cmd
}

func runLayoutsCheck(cmd *cobra.Command, assets inventory.AssetResolver, layouts inventory.Layouts) error {
	modes, err := inventory.LoadViewModes(assets)
	if err != nil {
		return cmdutil.PrintError("loading view modes", err)
	}

	problems := inventory.CheckMapping(assets, modes, layouts)
	if len(problems) > 0 {
		output.Error(fmt.Sprintf("layouts mapping has %d problem(s)", len(problems)))
		output.Details(inventory.FormatProblems(problems))
		return &oerrors.ExitError{
			Code:    oerrors.ExitValidationError,
			Err:     fmt.Errorf("%w: layouts mapping check failed", oerrors.ErrValidation),
			Printed: true,
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), output.FormatCheckmark(
		fmt.Sprintf("%d layouts, %d view modes: mapping is consistent", len(layouts), len(modes))))
	return nil
}
