package commands

import (
	"github.com/spf13/cobra"

	"github.com/worldcoin/orb-registration/cmd/orb-registration/handlers"
)

// Batch returns the command for registering pre-provisioned diamond
// units in bulk.
//
// Exactly one input file must be given:
//
//	--ids-file: newline-delimited orb identifiers; each is registered
//	  with the management API and the operator inventory
//	--pairs-file: whitespace-delimited "<orb-id> <orb-name>" lines;
//	  each is recorded directly in the operator inventory with the
//	  supplied name, without touching the management API
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: orb-registration.yaml)
func Batch() *cobra.Command {
	var (
		configPath string
		idsPath    string
		pairsPath  string
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Register pre-provisioned diamond units from an input file",
		Long: `Register diamond units whose identities were provisioned elsewhere.

Identifiers shorter than eight characters are left-zero-padded and
uppercase hex is lowered; anything longer than eight characters is
rejected. Re-running a batch is safe: orbs the management API already
knows keep their existing name.

The first failing unit aborts the remainder of the batch.

Examples:
  # Register identifiers against both backends
  orb-registration batch --ids-file orbs.txt

  # Record pre-named units in the inventory only
  orb-registration batch --pairs-file orbs-with-names.txt`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Batch(cmd.Context(), configPath, idsPath, pairsPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: orb-registration.yaml)")
	cmd.Flags().StringVar(&idsPath, "ids-file", "", "File with one orb identifier per line")
	cmd.Flags().StringVar(&pairsPath, "pairs-file", "", "File with \"<orb-id> <orb-name>\" per line")
	cmd.MarkFlagsMutuallyExclusive("ids-file", "pairs-file")

	return cmd
}
