package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/viewmodes/vmi/internal/config"
	oerrors "github.com/viewmodes/vmi/internal/errors"
	"github.com/viewmodes/vmi/internal/output"
)

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(gc *config.GlobalConfig) *cobra.Command {
	var forceFlag bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Write a default configuration file to ~/.vmi/config.yaml, or to the
path given by --config / VMI_CONFIG.

Examples:
  # Initialize configuration
  vmi config init

  # Overwrite existing configuration
  vmi config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := gc.ConfigPath
			if path == "" {
				paths, err := config.DefaultPaths()
				if err != nil {
					return oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
				}
				path = paths.ConfigFile
			}

			if _, err := os.Stat(path); err == nil && !forceFlag {
				return &oerrors.DetailError{
					Type:     "validation failed",
					Message:  "configuration already exists",
					Location: path,
					Hint:     "Use --force to overwrite existing configuration.",
					Cause:    oerrors.ErrValidation,
				}
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
				return oerrors.Wrap(oerrors.ErrPermission, fmt.Sprintf("could not create %s", filepath.Dir(path)))
			}

			if err := os.WriteFile(path, []byte(config.DefaultConfigTemplate), 0o600); err != nil {
				return oerrors.Wrap(oerrors.ErrPermission, fmt.Sprintf("could not write %s", path))
			}

			fmt.Fprintln(cmd.OutOrStdout(), output.FormatCheckmark("Configuration initialized at "+path))
			fmt.Fprintln(cmd.OutOrStdout(), "Validate with: vmi config vet")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&forceFlag, "force", "f", false,
		"Overwrite existing configuration")

	return cmd
}
