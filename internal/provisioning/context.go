package provisioning

import (
	"context"

	"github.com/worldcoin/orb-registration/internal/artifacts"
	"github.com/worldcoin/orb-registration/internal/config"
	"github.com/worldcoin/orb-registration/internal/identity"
	"github.com/worldcoin/orb-registration/internal/image"
)

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	// Base image templates (populated by the base image provisioner)
	BaseImages *image.BaseImages

	// Orbs that completed every registration step, in completion order
	Registered []identity.OrbID
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Profile    *config.Profile
	State      *State
	Management ManagementClient
	Inventory  InventoryClient
	Images     ImageBuilder
	Identities IdentityGenerator
	Uploader   BundleUploader // nil disables offsite replication
	Store      *artifacts.Store
	WorkDir    string
	MountDir   string
	Observer   Observer
}

// NewContext creates a new provisioning context.
func NewContext(ctx context.Context, profile *config.Profile, observer Observer) *Context {
	return &Context{
		Context:  ctx,
		Profile:  profile,
		State:    NewState(),
		Observer: observer,
	}
}
