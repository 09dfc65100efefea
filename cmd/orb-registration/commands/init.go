package commands

import (
	"github.com/spf13/cobra"

	"github.com/worldcoin/orb-registration/cmd/orb-registration/handlers"
)

// Init returns the command for interactively creating a station
// configuration.
//
// This command guides operators through creating the configuration YAML
// file using an interactive wizard with text inputs and single-select
// prompts.
//
// Flags:
//
//	--output, -o: Path to output file (default "orb-registration.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a station configuration",
		Long: `Interactively create a station configuration file.

This command walks you through configuring the registration station
step by step. It will ask about:

  - Target backend (stage or prod)
  - Release mark (dev or prod inventory entries)
  - Hardware platform and version
  - Manufacturer
  - Update channel
  - Optional artifact bundle upload

Backend credentials are never written to the file; set them through
the environment before running a flow.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "orb-registration.yaml", "Output file path")

	return cmd
}
