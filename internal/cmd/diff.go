package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viewmodes/vmi/internal/cmdutil"
	"github.com/viewmodes/vmi/internal/config"
	oerrors "github.com/viewmodes/vmi/internal/errors"
	"github.com/viewmodes/vmi/internal/mapping"
	"github.com/viewmodes/vmi/internal/output"
)

// errDifferences signals that diff found changes.
var errDifferences = errors.New("differences found")

// NewDiffCmd creates the diff command.
func NewDiffCmd(gc *config.GlobalConfig) *cobra.Command {
	var (
		bf        cmdutil.BundleFlags
		linesFlag bool
	)

	cmd := &cobra.Command{
		Use:   "diff <layout> <view-mode>",
		Short: "Show what apply would change",
		Long: `Compare the stored entity view display of each bundle with a fresh
render. Nothing is saved.

Exit status is 0 when nothing would change and 1 when apply would create or
modify a configuration.

Examples:
  vmi diff vmi_tout tout_large --bundle article
  vmi diff vmi_tout tout_large -b article -b page --lines`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bf.Validate(); err != nil {
				return err
			}

			m, err := cmdutil.NewMapper(gc)
			if err != nil {
				return err
			}

			useColor := output.IsTTY() && !output.IsNoColor()
			styles := output.GetStyles()
			if !useColor {
				styles = output.NoColorStyles()
			}

			entityType := cmdutil.EntityType(gc, bf.EntityType)
			items := make([]output.DiffItem, 0, len(bf.Bundles))
			changed := false
			for _, b := range bf.Bundles {
				res, err := m.Diff(cmd.Context(), mapping.Request{
					Layout:     args[0],
					ViewMode:   args[1],
					EntityType: entityType,
					Bundle:     b,
				}, mapping.DiffOptions{UseColor: useColor, Lines: linesFlag})
				if err != nil {
					return cmdutil.PrintError(fmt.Sprintf("diff failed for %s", b), err)
				}
				changed = changed || res.HasChanges()
				items = append(items, output.DiffItem{Name: res.ConfigName, Status: res.Status, Diff: res.Diff})
			}

			fmt.Fprintln(cmd.OutOrStdout(), output.RenderDiff(items, styles))

			if changed {
				return &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: errDifferences, Printed: true}
			}
			return nil
		},
	}

	bf.AddTo(cmd)
	cmd.Flags().BoolVar(&linesFlag, "lines", false,
		"Show a line diff of the YAML instead of a structural diff")
	return cmd
}
