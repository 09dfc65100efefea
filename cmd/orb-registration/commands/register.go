package commands

import (
	"github.com/spf13/cobra"

	"github.com/worldcoin/orb-registration/cmd/orb-registration/handlers"
)

// Register returns the command for provisioning fresh pearl units.
//
// Each unit gets a locally generated identity, a management record,
// a channel assignment, an access token, and a personalized pair of
// persistent images under the artifacts directory.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: orb-registration.yaml)
//	--count, -n: Number of units to provision in this run (default: 1)
//	--tui: Show a live progress dashboard instead of log lines
//
// Environment variables:
//
//	FM_CLI_ORB_MANAGER_INTERNAL_TOKEN: management API token (if not in config)
//	HARDWARE_TOKEN_PRODUCTION: inventory API token (if not in config)
func Register() *cobra.Command {
	var (
		configPath string
		count      int
		useTUI     bool
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Provision and register fresh pearl units",
		Long: `Provision fresh pearl units one after another.

For every unit this command generates an ed25519 keypair, derives the
orb identity from it, registers the orb with the management API, assigns
its update channel, fetches its access token, and writes a personalized
artifact bundle (keys, name, token, and both persistent images).

The shared base images are built once per run, before the first unit.
A failure in any step aborts the unit and the remainder of the run;
completed units keep their artifact bundles.

Examples:
  # Provision a single unit using orb-registration.yaml
  orb-registration register

  # Provision ten units with a live dashboard
  orb-registration register -n 10 --tui

  # Use a specific config file
  orb-registration register -c stage.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Register(cmd.Context(), configPath, count, useTUI)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: orb-registration.yaml)")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of units to provision")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "Show a live progress dashboard")

	return cmd
}
