package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/mvi-reducer/internal/config"
	"github.com/oshokin/mvi-reducer/internal/service/counter"
	"github.com/oshokin/mvi-reducer/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// force allows init-config to overwrite an existing file.
	force bool

	// rootCmd runs the counter screen.
	rootCmd = &cobra.Command{
		Use:   "mvi-counter",
		Short: "Run the counter screen on top of the reducer engine.",
		Long: `Runs a terminal counter screen driven by the reducer engine.

Type commands on stdin (click, reset, state, event, quit). A background index
source updates the screen on a timer; its failures show up as dialogs instead
of stopping the program. Settings come from a YAML file and MVI_* variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return counter.Run(ctx, &counter.Options{
				ConfigPath: configPath,
				In:         cmd.InOrStdin(),
				Out:        cmd.OutOrStdout(),
			})
		},
	}

	// initConfigCmd writes the default settings file.
	initConfigCmd = &cobra.Command{
		Use:   "init-config",
		Short: "Write a settings file with default values.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force {
				if _, err := os.Stat(configPath); err == nil {
					return fmt.Errorf("%s already exists, use --force to overwrite", configPath)
				}
			}

			if err := config.Save(configPath, config.Default()); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "settings written to %s\n", configPath)

			return nil
		},
	}
)

// Execute runs the mvi-counter CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	initConfigCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	rootCmd.AddCommand(initConfigCmd)
}
