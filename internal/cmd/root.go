// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	cmdconfig "github.com/viewmodes/vmi/internal/cmd/config"
	"github.com/viewmodes/vmi/internal/cmd/field"
	"github.com/viewmodes/vmi/internal/config"
	"github.com/viewmodes/vmi/internal/output"
)

// NewRootCmd creates the root command for the vmi CLI.
func NewRootCmd() *cobra.Command {
	var (
		flags      config.GlobalFlags
		timestamps bool
	)

	// Filled in PersistentPreRunE and shared with every sub-command.
	gc := &config.GlobalConfig{}

	rootCmd := &cobra.Command{
		Use:   "vmi",
		Short: "View modes inventory",
		Long: `vmi maps view modes onto layout templates for content bundles.

It resolves a layout template for a bundle, prunes references to fields the
bundle does not have, and saves the resulting entity view display into a
configuration store (a directory of YAML files or Kubernetes ConfigMaps).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			flags.Changed = cmd.Flags().Changed
			return initializeGlobals(gc, flags, cmd.Flags().Changed("timestamps"), timestamps)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.Config, "config", "", "Path to config file (env: VMI_CONFIG)")
	pf.BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable verbose output")
	pf.BoolVar(&timestamps, "timestamps", true, "Show timestamps in log output")
	pf.StringVarP(&flags.Output, "output", "o", "", "Output format: yaml, json, table")
	pf.StringVar(&flags.Store, "store", "", "Configuration store: file or kubernetes (env: VMI_STORE_BACKEND)")
	pf.StringVar(&flags.StoreDir, "store-dir", "", "Directory of the file store (env: VMI_STORE_DIR)")
	pf.StringVar(&flags.AssetsDir, "assets-dir", "", "Directory overriding the bundled inventories and templates (env: VMI_ASSETS_DIR)")
	pf.StringVar(&flags.Kubeconfig, "kubeconfig", "", "Path to kubeconfig file (env: VMI_STORE_KUBERNETES_KUBECONFIG)")
	pf.StringVar(&flags.Context, "context", "", "Kubernetes context to use")
	pf.StringVarP(&flags.Namespace, "namespace", "n", "", "Namespace of the ConfigMap store (env: VMI_STORE_KUBERNETES_NAMESPACE)")

	rootCmd.AddCommand(
		NewViewModesCmd(gc),
		NewLayoutsCmd(gc),
		NewRenderCmd(gc),
		NewApplyCmd(gc),
		NewDiffCmd(gc),
		field.NewFieldCmd(gc),
		cmdconfig.NewConfigCmd(gc),
		NewVersionCmd(gc),
	)

	return rootCmd
}

// initializeGlobals loads configuration, then sets up logging.
func initializeGlobals(gc *config.GlobalConfig, flags config.GlobalFlags, timestampsSet, timestamps bool) error {
	loaded, err := config.LoadGlobal(flags)
	if err != nil {
		output.SetupLogging(output.LogConfig{Verbose: flags.Verbose})
		return err
	}
	*gc = *loaded

	// flag > config > default (nil = true)
	logCfg := output.LogConfig{Verbose: flags.Verbose}
	if timestampsSet {
		logCfg.Timestamps = output.BoolPtr(timestamps)
	} else if gc.Config.Log.Timestamps != nil {
		logCfg.Timestamps = gc.Config.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	if gc.Verbose {
		output.Debug("initializing CLI",
			"config", gc.ConfigPath,
			"configFound", gc.ConfigFound,
			"store", gc.StoreBackend,
		)
		config.LogResolvedValues(gc.Values)
	}

	return nil
}
