package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/sandbox-teardown/cmd/sandbox-teardown/handlers"
)

// Teardown returns the teardown command.
func Teardown() *cobra.Command {
	var opts handlers.TeardownOptions

	cmd := &cobra.Command{
		Use:   "teardown",
		Short: "Tear down a sandbox reservation",
		Long: `Teardown releases everything a sandbox reservation holds:

  1. Disconnects all active routes
  2. Powers off or deletes the deployed apps, according to their
     auto_delete and auto_power_off parameters
  3. Cleans up the reservation's connectivity
  4. Purges stored artifacts, when enabled

Progress is written to the reservation output.

Configuration is read from the file given with --config and from
SANDBOX_* environment variables (a .env file is loaded if present).
Flags override both.

Example:
  sandbox-teardown teardown --reservation 7d3b0c6e -c teardown.yaml
  sandbox-teardown teardown -r 7d3b0c6e --dry-run

WARNING: Deleted apps cannot be recovered.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Teardown(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ReservationID, "reservation", "r", "", "Reservation to tear down (overrides SANDBOX_RESERVATION_ID)")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Log every change instead of applying it")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().StringVar(&opts.LogFormat, "log-format", "", "Log format: auto, console or json")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "Log level: debug, info, warn or error")

	return cmd
}
