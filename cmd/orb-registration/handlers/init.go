package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/worldcoin/orb-registration/internal/config"
	"github.com/worldcoin/orb-registration/internal/config/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive configuration wizard.
	runWizard = wizard.RunWizard

	// writeConfigFile writes the config to a file.
	writeConfigFile = config.Write
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg := result.ToConfig()

	if err := writeConfigFile(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)

	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("orb-registration - station setup")
	fmt.Println("================================")
	fmt.Println()
	fmt.Println("This wizard creates the registration station configuration.")
	fmt.Println("Backend credentials stay out of the file; they are read from the")
	fmt.Println("environment when a flow runs.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	// Summary
	fmt.Println("Station Summary")
	fmt.Println("---------------")
	fmt.Printf("  Platform:         %s\n", cfg.Platform)
	fmt.Printf("  Backend:          %s\n", cfg.Backend)
	fmt.Printf("  Release:          %s\n", cfg.Release)
	fmt.Printf("  Hardware Version: %s\n", cfg.HardwareVersion)
	fmt.Printf("  Manufacturer:     %s\n", cfg.Manufacturer)
	fmt.Printf("  Channel:          %s\n", cfg.Channel)
	if cfg.Upload.Enabled {
		fmt.Printf("  Upload:           s3://%s/%s\n", cfg.Upload.Bucket, cfg.Upload.Prefix)
	}
	fmt.Println()

	// Next steps
	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Println("  1. Set the backend credentials:")
	fmt.Printf("     export %s=<management-token>\n", config.EnvManagementToken)
	fmt.Printf("     export %s=<inventory-token>\n", config.EnvInventoryToken)
	fmt.Println()
	fmt.Println("  2. Check the station:")
	fmt.Println("     orb-registration doctor")
	fmt.Println()
	if cfg.Platform == string(config.PlatformPearl) {
		fmt.Println("  3. Provision units:")
		fmt.Println("     orb-registration register -n <count>")
	} else {
		fmt.Println("  3. Register units:")
		fmt.Println("     orb-registration batch --ids-file <file>")
	}
	fmt.Println()
}
