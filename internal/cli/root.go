package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// configPath to the configuration YAML file. Empty means the default
	// search path (configs/ and ~/.config/sundial).
	configPath string

	// rootCmd represents the base command; subcommands either run the daemon
	// or talk to a running one.
	rootCmd = &cobra.Command{
		Use:   "sundial",
		Short: "Adjust display color temperature with the sun.",
		Long: `Sundial drives the display color temperature through the day:
warm at night, cool during the day, with smooth transitions around
sunrise and sunset (or a fixed schedule).

Run "sundial daemon" (or plain "sundial") to start the background
service, then use the other subcommands to inspect or control it.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Bare invocation runs the daemon.
			return runDaemon()
		},
	}
)

// Execute runs the sundial CLI and exits with non-zero status on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file")
}
