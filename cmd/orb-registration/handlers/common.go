// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic
// and inject their collaborators through package-level factory variables
// so tests can swap them out.
package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/worldcoin/orb-registration/internal/config"
	"github.com/worldcoin/orb-registration/internal/orchestration"
	"github.com/worldcoin/orb-registration/internal/platform/cfaccess"
	"github.com/worldcoin/orb-registration/internal/platform/inventory"
	"github.com/worldcoin/orb-registration/internal/platform/manage"
	"github.com/worldcoin/orb-registration/internal/platform/s3"
	"github.com/worldcoin/orb-registration/internal/provisioning"
	"github.com/worldcoin/orb-registration/internal/provisioning/batch"
	"github.com/worldcoin/orb-registration/internal/ui"
	"github.com/worldcoin/orb-registration/internal/ui/tui"
)

// defaultConfigFile is looked for in the working directory when no
// --config flag is given.
const defaultConfigFile = "orb-registration.yaml"

// Registrar interface for testing - matches orchestration.Registrar.
type Registrar interface {
	RegisterUnits(ctx context.Context, count int) (*provisioning.State, error)
	RegisterIDs(ctx context.Context, ids []string) (*provisioning.State, error)
	RegisterPairs(ctx context.Context, pairs []batch.Pair) (*provisioning.State, error)
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads config from file.
	loadConfigFile = config.LoadFile

	// newProfile resolves the config into an execution profile.
	newProfile = config.NewProfile

	// fetchAccessToken obtains the short-lived access gateway token.
	fetchAccessToken = cfaccess.FetchToken

	// newManagementClient creates a management API client.
	newManagementClient = func(baseURL, authToken, accessToken string) provisioning.ManagementClient {
		return manage.NewClient(baseURL, authToken, accessToken)
	}

	// newInventoryClient creates an operator inventory client.
	newInventoryClient = func(endpoint, authToken string) provisioning.InventoryClient {
		return inventory.NewClient(endpoint, authToken)
	}

	// newBundleUploader builds the optional artifact bundle uploader.
	newBundleUploader = newS3Uploader

	// newRegistrar creates the workflow orchestrator.
	newRegistrar = func(deps orchestration.Deps) Registrar {
		return orchestration.NewRegistrar(deps)
	}

	// runRegisterTUI wraps a run with the live dashboard.
	runRegisterTUI = tui.RunRegisterTUI

	// readIDsFile parses a newline-delimited identifier file.
	readIDsFile = batch.ReadIDs

	// readPairsFile parses a "<orb-id> <orb-name>" pair file.
	readPairsFile = batch.ReadPairs

	// isInteractive reports whether stdout is a terminal.
	isInteractive = ui.IsInteractive
)

// loadConfig loads and validates the station configuration.
// If configPath is empty, it looks for orb-registration.yaml in the
// current directory.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		configPath = defaultConfigFile
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("no config file found: %w\nRun 'orb-registration init' to create one", err)
		}
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newS3Uploader builds the bundle uploader when upload is configured.
// A nil uploader disables offsite replication in the orchestrator.
func newS3Uploader(ctx context.Context, cfg config.UploadConfig) (provisioning.BundleUploader, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	client, err := s3.NewClient(ctx, cfg.Endpoint, cfg.Region, "", "")
	if err != nil {
		return nil, fmt.Errorf("failed to create upload client: %w", err)
	}
	if err := client.EnsureBucket(ctx, cfg.Bucket); err != nil {
		return nil, err
	}
	return s3.NewBundleStore(client, cfg.Bucket, cfg.Prefix), nil
}

// newConsoleObserver returns the styled line observer for non-TUI runs.
// Color is dropped off-terminal and under NO_COLOR.
func newConsoleObserver() *ui.ConsoleObserver {
	color := isInteractive() && os.Getenv("NO_COLOR") == ""
	return ui.NewConsoleObserver(os.Stdout, color)
}
