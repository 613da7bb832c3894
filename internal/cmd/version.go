package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viewmodes/vmi/internal/cmdutil"
	"github.com/viewmodes/vmi/internal/config"
	"github.com/viewmodes/vmi/internal/output"
	"github.com/viewmodes/vmi/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(gc *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Get()

			format, err := cmdutil.ResolveFormat(gc, output.FormatTable)
			if err != nil {
				return err
			}
			if format == output.FormatJSON {
				return cmdutil.WriteJSON(cmd.OutOrStdout(), info)
			}

			fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return nil
		},
	}
}
