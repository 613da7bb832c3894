package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viewmodes/vmi/internal/cmdutil"
	"github.com/viewmodes/vmi/internal/config"
	"github.com/viewmodes/vmi/internal/mapping"
	"github.com/viewmodes/vmi/internal/output"
)

// NewApplyCmd creates the apply command.
func NewApplyCmd(gc *config.GlobalConfig) *cobra.Command {
	var (
		bf              cmdutil.BundleFlags
		concurrencyFlag int
	)

	cmd := &cobra.Command{
		Use:   "apply <layout> <view-mode>",
		Short: "Map a view mode to a layout for one or more bundles",
		Long: `Render the layout template of a view mode for each bundle and save the
result into the configuration store.

The whole document of each entity view display is replaced. Bundles are
applied in parallel; the first failure stops the remaining bundles. A bundle
that fails to render leaves its stored configuration untouched.

Arguments:
  layout      Layout ID from the layouts mapping
  view-mode   View mode ID rendered by the layout

Examples:
  # Apply to one bundle in the local file store
  vmi apply vmi_tout tout_large --bundle article

  # Apply to several bundles in a Kubernetes namespace
  vmi apply vmi_tout tout_large -b article -b page --store kubernetes -n cms`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bf.Validate(); err != nil {
				return err
			}

			m, err := cmdutil.NewMapper(gc)
			if err != nil {
				return err
			}

			entityType := cmdutil.EntityType(gc, bf.EntityType)
			reqs := make([]mapping.Request, 0, len(bf.Bundles))
			for _, b := range bf.Bundles {
				reqs = append(reqs, mapping.Request{
					Layout:     args[0],
					ViewMode:   args[1],
					EntityType: entityType,
					Bundle:     b,
				})
			}

			concurrency := gc.Concurrency(concurrencyFlag, cmd.Flags().Changed("concurrency"))
			output.Debug("applying", "layout", args[0], "viewMode", args[1], "bundles", len(reqs), "concurrency", concurrency)

			var results []*mapping.Result
			title := fmt.Sprintf("Applying %s to %d bundle(s)", args[1], len(reqs))
			err = output.RunWithSpinner(cmd.Context(), title, func(ctx context.Context) error {
				var applyErr error
				results, applyErr = m.ApplyAll(ctx, reqs, concurrency)
				return applyErr
			})

			counts := map[string]int{}
			for _, res := range results {
				if res == nil {
					continue
				}
				counts[res.Status]++
				output.Info(output.FormatConfigLine(res.ConfigName, res.Status))
				if len(res.Pruned) > 0 {
					output.ConfigLogger(res.ConfigName).Debug("removed absent fields", "fields", res.Pruned)
				}
			}

			if err != nil {
				return cmdutil.PrintError("apply failed", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), output.FormatCheckmark(fmt.Sprintf(
				"%d created, %d configured, %d unchanged",
				counts[output.StatusCreated], counts[output.StatusConfigured], counts[output.StatusUnchanged])))
			return nil
		},
	}

	bf.AddTo(cmd)
	cmd.Flags().IntVar(&concurrencyFlag, "concurrency", config.DefaultConcurrency,
		"Number of bundles applied in parallel (default: from config)")

	return cmd
}
