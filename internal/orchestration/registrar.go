// Package orchestration provides high-level workflow coordination for
// registration runs.
//
// This package assembles the provisioning phases for each flow and runs
// them over a shared context. It defines the order and wiring but
// delegates the actual work to the provisioners.
package orchestration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/worldcoin/orb-registration/internal/artifacts"
	"github.com/worldcoin/orb-registration/internal/config"
	"github.com/worldcoin/orb-registration/internal/provisioning"
	"github.com/worldcoin/orb-registration/internal/provisioning/baseimage"
	"github.com/worldcoin/orb-registration/internal/provisioning/batch"
	"github.com/worldcoin/orb-registration/internal/provisioning/unit"
)

// Deps carries the collaborators a Registrar wires into each run.
type Deps struct {
	Profile    *config.Profile
	Management provisioning.ManagementClient
	Inventory  provisioning.InventoryClient
	Images     provisioning.ImageBuilder
	Identities provisioning.IdentityGenerator
	Uploader   provisioning.BundleUploader // nil disables offsite replication
	Store      *artifacts.Store
	WorkDir    string
	Observer   provisioning.Observer

	// Preflight runs the host tool check as the first phase of every run.
	Preflight bool
}

// Registrar orchestrates the registration workflows.
type Registrar struct {
	deps Deps
}

// NewRegistrar creates a new registrar.
func NewRegistrar(deps Deps) *Registrar {
	return &Registrar{deps: deps}
}

// RegisterUnits provisions count fresh pearl units: shared base images
// once, then one full identity/registration/artifact cycle per unit.
// The returned state lists the units that completed, also on error.
func (r *Registrar) RegisterUnits(ctx context.Context, count int) (*provisioning.State, error) {
	if r.deps.Profile.Platform != config.PlatformPearl {
		return nil, fmt.Errorf("interactive provisioning requires the pearl platform, profile is %s", r.deps.Profile.Platform)
	}
	if count < 1 {
		return nil, fmt.Errorf("unit count must be at least 1, got %d", count)
	}

	if err := os.MkdirAll(r.deps.WorkDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create working directory: %w", err)
	}

	mountDir, cleanup, err := makeMountPoint()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	pctx := r.newRunContext(ctx)
	pctx.MountDir = mountDir

	phases := r.basePhases()
	phases = append(phases, baseimage.NewProvisioner())
	for i := 1; i <= count; i++ {
		phases = append(phases, unit.NewProvisioner(i, count))
	}

	err = provisioning.RunPhases(pctx, phases)
	return pctx.State, err
}

// RegisterIDs registers pre-provisioned diamond units by identifier with
// both backends.
func (r *Registrar) RegisterIDs(ctx context.Context, ids []string) (*provisioning.State, error) {
	if r.deps.Profile.Platform != config.PlatformDiamond {
		return nil, fmt.Errorf("batch registration requires the diamond platform, profile is %s", r.deps.Profile.Platform)
	}
	if len(ids) == 0 {
		return nil, errors.New("no orb ids to register")
	}

	pctx := r.newRunContext(ctx)
	phases := append(r.basePhases(), batch.NewIDsProvisioner(ids))

	err := provisioning.RunPhases(pctx, phases)
	return pctx.State, err
}

// RegisterPairs records pre-named diamond units in the operator inventory.
func (r *Registrar) RegisterPairs(ctx context.Context, pairs []batch.Pair) (*provisioning.State, error) {
	if r.deps.Profile.Platform != config.PlatformDiamond {
		return nil, fmt.Errorf("batch registration requires the diamond platform, profile is %s", r.deps.Profile.Platform)
	}
	if len(pairs) == 0 {
		return nil, errors.New("no orb pairs to register")
	}

	pctx := r.newRunContext(ctx)
	phases := append(r.basePhases(), batch.NewPairsProvisioner(pairs))

	err := provisioning.RunPhases(pctx, phases)
	return pctx.State, err
}

// newRunContext builds the provisioning context for one run.
func (r *Registrar) newRunContext(ctx context.Context) *provisioning.Context {
	pctx := provisioning.NewContext(ctx, r.deps.Profile, r.deps.Observer)
	pctx.Management = r.deps.Management
	pctx.Inventory = r.deps.Inventory
	pctx.Images = r.deps.Images
	pctx.Identities = r.deps.Identities
	pctx.Uploader = r.deps.Uploader
	pctx.Store = r.deps.Store
	pctx.WorkDir = r.deps.WorkDir
	return pctx
}

func (r *Registrar) basePhases() []provisioning.Phase {
	if !r.deps.Preflight {
		return nil
	}
	return []provisioning.Phase{provisioning.NewPreflightPhase()}
}

// UnitPhaseNames returns the phase names RegisterUnits runs, in order.
// Progress displays seed their phase list with it.
func UnitPhaseNames(count int, preflight bool) []string {
	names := make([]string, 0, count+2)
	if preflight {
		names = append(names, provisioning.NewPreflightPhase().Name())
	}
	names = append(names, baseimage.NewProvisioner().Name())
	for i := 1; i <= count; i++ {
		names = append(names, unit.NewProvisioner(i, count).Name())
	}
	return names
}

// makeMountPoint creates the temporary mount point images are attached
// to. The returned cleanup removes it.
func makeMountPoint() (string, func(), error) {
	tmp, err := os.MkdirTemp("", "orb-registration-")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create mount point: %w", err)
	}

	mount := filepath.Join(tmp, "loop")
	if err := os.Mkdir(mount, 0o755); err != nil {
		_ = os.RemoveAll(tmp)
		return "", nil, fmt.Errorf("failed to create mount point: %w", err)
	}

	return mount, func() { _ = os.RemoveAll(tmp) }, nil
}
