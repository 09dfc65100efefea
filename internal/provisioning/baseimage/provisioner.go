// Package baseimage builds the shared persistent image templates once
// per run, before any unit is processed.
package baseimage

import (
	"fmt"

	"github.com/worldcoin/orb-registration/internal/provisioning"
)

// Provisioner handles base image construction.
type Provisioner struct{}

// NewProvisioner creates a new base image provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "base images"
}

// Provision implements the provisioning.Phase interface. It builds both
// templates in the working directory and records them in the run state
// for the unit phases to copy.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	base, err := ctx.Images.BuildBase(ctx, ctx.WorkDir, ctx.MountDir)
	if err != nil {
		return fmt.Errorf("failed to build base images: %w", err)
	}

	ctx.State.BaseImages = base
	return nil
}
