package config

import (
	"fmt"
	"strings"
)

// Platform identifies the hardware variant being registered.
type Platform string

const (
	// PlatformPearl is the interactive variant: identities are generated
	// locally and each unit gets personalized persistent images.
	PlatformPearl Platform = "pearl"

	// PlatformDiamond is the batch variant: identities are supplied
	// externally and no images are built.
	PlatformDiamond Platform = "diamond"
)

// IsValid returns true if the platform is a known value.
func (p Platform) IsValid() bool {
	switch p {
	case PlatformPearl, PlatformDiamond:
		return true
	}
	return false
}

// ValidPlatforms returns all known platforms.
func ValidPlatforms() []Platform {
	return []Platform{PlatformPearl, PlatformDiamond}
}

// PlatformFromHardware derives the platform from a hardware version
// string such as PEARL_EVT1 or DIAMOND_EVT2.
func PlatformFromHardware(hardwareVersion string) (Platform, error) {
	switch {
	case strings.HasPrefix(hardwareVersion, "PEARL_"):
		return PlatformPearl, nil
	case strings.HasPrefix(hardwareVersion, "DIAMOND_"):
		return PlatformDiamond, nil
	default:
		return "", fmt.Errorf("unknown hardware version format: %s", hardwareVersion)
	}
}

// Backend identifies the environment the registration targets.
type Backend string

const (
	BackendStage Backend = "stage"
	BackendProd  Backend = "prod"
)

// IsValid returns true if the backend is a known value.
func (b Backend) IsValid() bool {
	switch b {
	case BackendStage, BackendProd:
		return true
	}
	return false
}

// ValidBackends returns all known backends.
func ValidBackends() []Backend {
	return []Backend{BackendStage, BackendProd}
}

// Release marks registered units as development or production devices in
// the inventory service.
type Release string

const (
	ReleaseDev  Release = "dev"
	ReleaseProd Release = "prod"
)

// IsValid returns true if the release is a known value.
func (r Release) IsValid() bool {
	switch r {
	case ReleaseDev, ReleaseProd:
		return true
	}
	return false
}

// ValidReleases returns all known releases.
func ValidReleases() []Release {
	return []Release{ReleaseDev, ReleaseProd}
}
