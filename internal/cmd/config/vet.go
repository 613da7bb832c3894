package config

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viewmodes/vmi/internal/config"
	oerrors "github.com/viewmodes/vmi/internal/errors"
	"github.com/viewmodes/vmi/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(gc *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the vmi configuration file against the embedded CUE schema.

The config path is resolved using precedence:
  --config flag > VMI_CONFIG env > ~/.vmi/config.yaml

Examples:
  vmi config vet
  vmi config vet --config ./vmi.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output.Debug("validating config", "path", gc.ConfigPath)

			validator, err := config.NewValidator()
			if err != nil {
				return fmt.Errorf("creating validator: %w", err)
			}

			if err := validator.ValidateFile(gc.ConfigPath); err != nil {
				var validationErrs config.ValidationErrors
				if errors.As(err, &validationErrs) {
					w := cmd.ErrOrStderr()
					fmt.Fprintln(w, "Error: config validation failed")
					fmt.Fprintf(w, "  File: %s\n\n", gc.ConfigPath)
					for _, e := range validationErrs {
						fmt.Fprintf(w, "  %s: %s\n", e.Field, e.Message)
					}
					return &oerrors.ExitError{Code: oerrors.ExitValidationError, Err: err, Printed: true}
				}
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), output.FormatCheckmark("Config file is valid: "+gc.ConfigPath))
			return nil
		},
	}
}
