package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/worldcoin/orb-registration/internal/artifacts"
	"github.com/worldcoin/orb-registration/internal/config"
	"github.com/worldcoin/orb-registration/internal/identity"
	"github.com/worldcoin/orb-registration/internal/image"
	"github.com/worldcoin/orb-registration/internal/orchestration"
	"github.com/worldcoin/orb-registration/internal/provisioning"
	"github.com/worldcoin/orb-registration/internal/tools"
)

// Register provisions count fresh pearl units.
//
// This function orchestrates the complete interactive workflow:
//  1. Loads the station configuration and resolves the execution profile
//  2. Obtains the short-lived access gateway token, once for the run
//  3. Wires the backend clients, the image builder, and the artifact store
//  4. Runs the registration phases (base images once, then one per unit)
//  5. Prints the run summary, including partial completions on failure
//
// A fatal error in any phase aborts the remaining units; completed units
// keep their artifact bundles.
func Register(ctx context.Context, configPath string, count int, useTUI bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	profile, err := newProfile(cfg)
	if err != nil {
		return err
	}
	if profile.Platform != config.PlatformPearl {
		return fmt.Errorf("register provisions pearl units; the configured platform is %s (use 'orb-registration batch')", profile.Platform)
	}

	runner := tools.ExecRunner{}
	gateway := tools.NewGateway(runner)

	// One interactive login per run; every management call reuses the token.
	accessToken, err := fetchAccessToken(ctx, runner, profile.ManagementURL)
	if err != nil {
		return fmt.Errorf("failed to obtain access gateway token: %w", err)
	}

	uploader, err := newBundleUploader(ctx, cfg.Upload)
	if err != nil {
		return err
	}

	deps := orchestration.Deps{
		Profile:    profile,
		Management: newManagementClient(profile.ManagementURL, cfg.ManagementToken, accessToken),
		Inventory:  newInventoryClient(profile.InventoryURL, cfg.InventoryToken),
		Identities: identity.NewGenerator(cfg.WorkDir, gateway),
		Uploader:   uploader,
		Store:      artifacts.NewStore(cfg.ArtifactsDir),
		WorkDir:    cfg.WorkDir,
		Preflight:  cfg.IsPrerequisitesCheckEnabled(),
	}

	start := time.Now()
	console := newConsoleObserver()

	var state *provisioning.State
	if useTUI && isInteractive() {
		phases := orchestration.UnitPhaseNames(count, deps.Preflight)
		state, err = runRegisterTUI(string(profile.Backend), string(profile.Platform), phases,
			func(observer provisioning.Observer) (*provisioning.State, error) {
				d := deps
				d.Observer = observer
				d.Images = image.NewBuilder(gateway, observer)
				return newRegistrar(d).RegisterUnits(ctx, count)
			})
	} else {
		deps.Observer = console
		deps.Images = image.NewBuilder(gateway, console)
		state, err = newRegistrar(deps).RegisterUnits(ctx, count)
	}

	console.Summary(state, cfg.ArtifactsDir, time.Since(start))

	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	return nil
}
