// Package provisioning provides shared types and interfaces for orb
// provisioning runs.
//
// The provisioning domain is organized into focused subpackages:
//   - baseimage/ — persistent image template construction
//   - unit/ — single-orb identity generation, registration, and artifact assembly
//   - batch/ — bulk registration of pre-provisioned identifiers
//
// This root package contains the shared interfaces, run state, and
// observer types used across subpackages.
package provisioning

import (
	"context"

	"github.com/worldcoin/orb-registration/internal/artifacts"
	"github.com/worldcoin/orb-registration/internal/identity"
	"github.com/worldcoin/orb-registration/internal/image"
)

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the provisioning logic for this phase.
	Provision(ctx *Context) error
}

// ManagementClient defines the management backend operations used during
// provisioning. Implemented by internal/platform/manage.Client.
type ManagementClient interface {
	// CreateOrFetch registers an orb and returns its backend-assigned name.
	// When the orb is already known the existing name is returned and
	// existed is true.
	CreateOrFetch(ctx context.Context, id identity.OrbID, buildVersion, manufacturer, platform string) (name string, existed bool, err error)

	// SetChannel assigns the release channel the orb updates from.
	SetChannel(ctx context.Context, id identity.OrbID, channel string) error

	// IssueToken requests a fresh provisioning token for the orb.
	IssueToken(ctx context.Context, id identity.OrbID) (string, error)
}

// InventoryClient defines the inventory backend operations used during
// provisioning. Implemented by internal/platform/inventory.Client.
type InventoryClient interface {
	// RegisterDevice records the orb in the operator inventory.
	RegisterDevice(ctx context.Context, id identity.OrbID, name, deviceType string, isDevelopment bool) error
}

// ImageBuilder defines the persistent image operations used during
// provisioning. Implemented by internal/image.Builder.
type ImageBuilder interface {
	// BuildBase constructs the shared base images in workDir.
	BuildBase(ctx context.Context, workDir, mountDir string) (*image.BaseImages, error)

	// Personalize installs the orb name and token into a unit's copy of a
	// base image.
	Personalize(ctx context.Context, imagePath, mountDir, namePath, tokenPath string) error
}

// IdentityGenerator defines identity creation for factory-provisioned
// units. Implemented by internal/identity.Generator.
type IdentityGenerator interface {
	// Generate creates a fresh keypair and derives the orb ID from it.
	Generate(ctx context.Context) (identity.OrbID, identity.KeyMaterial, error)
}

// BundleUploader defines offsite artifact replication. Implemented by
// internal/platform/s3.BundleStore. A nil uploader disables replication.
type BundleUploader interface {
	// UploadBundle copies every file of an assembled bundle to the
	// artifact store.
	UploadBundle(ctx context.Context, b *artifacts.Bundle) error
}
