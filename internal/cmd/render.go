package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viewmodes/vmi/internal/cmdutil"
	"github.com/viewmodes/vmi/internal/config"
	"github.com/viewmodes/vmi/internal/document"
	"github.com/viewmodes/vmi/internal/mapping"
	"github.com/viewmodes/vmi/internal/output"
)

// NewRenderCmd creates the render command.
func NewRenderCmd(gc *config.GlobalConfig) *cobra.Command {
	var bf cmdutil.BundleFlags

	cmd := &cobra.Command{
		Use:   "render <layout> <view-mode>",
		Short: "Render an entity view display without saving it",
		Long: `Render the layout template of a view mode for one bundle.

The template placeholder is replaced with the bundle name and references to
supported fields the bundle does not have are removed. Field existence is
read from the configuration store (see 'vmi field').

Arguments:
  layout      Layout ID from the layouts mapping
  view-mode   View mode ID rendered by the layout

Examples:
  vmi render vmi_tout tout_large --bundle article
  vmi render vmi_tout tout_large -b article -o json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := bf.Single()
			if err != nil {
				return err
			}
			format, err := cmdutil.ResolveFormat(gc, output.FormatYAML)
			if err != nil {
				return err
			}

			m, err := cmdutil.NewMapper(gc)
			if err != nil {
				return err
			}

			res, err := m.Render(cmd.Context(), mapping.Request{
				Layout:     args[0],
				ViewMode:   args[1],
				EntityType: cmdutil.EntityType(gc, bf.EntityType),
				Bundle:     bundle,
			})
			if err != nil {
				return cmdutil.PrintError("render failed", err)
			}

			if len(res.Pruned) > 0 {
				output.ConfigLogger(res.ConfigName).Info("removed absent fields", "fields", res.Pruned)
			}

			return writeRendered(cmd, res.ConfigName, res.Document, format)
		},
	}

	bf.AddTo(cmd)
	return cmd
}

func writeRendered(cmd *cobra.Command, name string, doc *document.Value, format output.Format) error {
	w := cmd.OutOrStdout()
	if format == output.FormatJSON {
		body, err := doc.Interface()
		if err != nil {
			return err
		}
		return cmdutil.WriteJSON(w, map[string]interface{}{
			"name":     name,
			"document": body,
		})
	}

	fmt.Fprintf(w, "# %s\n", name)
	return cmdutil.WriteDocument(w, doc, output.FormatYAML)
}
