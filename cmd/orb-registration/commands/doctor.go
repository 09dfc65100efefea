package commands

import (
	"github.com/spf13/cobra"

	"github.com/worldcoin/orb-registration/cmd/orb-registration/handlers"
)

// Doctor returns the command for checking the registration station.
//
// It verifies that every external tool the flows shell out to is on
// PATH and that the configuration resolves into a supported profile.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: orb-registration.yaml)
func Doctor() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the registration station setup",
		Long: `Check that this machine can run registration flows.

Verifies the external tools (ssh-keygen, mke2fs, mount, cloudflared, ...)
are installed and that the configuration file, if present, resolves into
a supported platform/backend profile. Exits non-zero when a required
tool is missing or the configuration is invalid.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Doctor(configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: orb-registration.yaml)")

	return cmd
}
