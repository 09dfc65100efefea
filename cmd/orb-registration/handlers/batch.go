package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/worldcoin/orb-registration/internal/config"
	"github.com/worldcoin/orb-registration/internal/orchestration"
	"github.com/worldcoin/orb-registration/internal/provisioning"
	"github.com/worldcoin/orb-registration/internal/tools"
)

// Batch registers pre-provisioned diamond units from an input file.
//
// Exactly one of idsPath and pairsPath must be given. The ids flow
// registers each identifier with the management API and the operator
// inventory; the pairs flow records the supplied names directly in the
// inventory and never touches the management API, so it also skips the
// interactive gateway login.
func Batch(ctx context.Context, configPath, idsPath, pairsPath string) error {
	if (idsPath == "") == (pairsPath == "") {
		return errors.New("exactly one of --ids-file and --pairs-file is required")
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	profile, err := newProfile(cfg)
	if err != nil {
		return err
	}
	if profile.Platform != config.PlatformDiamond {
		return fmt.Errorf("batch registers diamond units; the configured platform is %s (use 'orb-registration register')", profile.Platform)
	}

	console := newConsoleObserver()
	deps := orchestration.Deps{
		Profile:   profile,
		Inventory: newInventoryClient(profile.InventoryURL, cfg.InventoryToken),
		Observer:  console,
		Preflight: cfg.IsPrerequisitesCheckEnabled(),
	}

	start := time.Now()
	var state *provisioning.State
	var runErr error

	if idsPath != "" {
		ids, err := readIDsFile(idsPath)
		if err != nil {
			return fmt.Errorf("failed to read ids file: %w", err)
		}

		accessToken, err := fetchAccessToken(ctx, tools.ExecRunner{}, profile.ManagementURL)
		if err != nil {
			return fmt.Errorf("failed to obtain access gateway token: %w", err)
		}
		deps.Management = newManagementClient(profile.ManagementURL, cfg.ManagementToken, accessToken)

		state, runErr = newRegistrar(deps).RegisterIDs(ctx, ids)
	} else {
		pairs, err := readPairsFile(pairsPath)
		if err != nil {
			return fmt.Errorf("failed to read pairs file: %w", err)
		}

		state, runErr = newRegistrar(deps).RegisterPairs(ctx, pairs)
	}

	console.Summary(state, "", time.Since(start))

	if runErr != nil {
		return fmt.Errorf("batch registration failed: %w", runErr)
	}
	return nil
}
