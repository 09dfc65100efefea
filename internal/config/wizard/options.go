package wizard

import (
	"github.com/charmbracelet/huh"

	"github.com/worldcoin/orb-registration/internal/config"
)

// BackendOptions lists the target environments.
var BackendOptions = []huh.Option[string]{
	huh.NewOption("stage - internal staging backends", string(config.BackendStage)),
	huh.NewOption("prod - production backends", string(config.BackendProd)),
}

// PlatformOptions lists the hardware variants.
var PlatformOptions = []huh.Option[string]{
	huh.NewOption("pearl - interactive provisioning with image construction", string(config.PlatformPearl)),
	huh.NewOption("diamond - batch registration of pre-provisioned units", string(config.PlatformDiamond)),
}

// ReleaseOptions lists the device release marks.
var ReleaseOptions = []huh.Option[string]{
	huh.NewOption("dev - units are marked as development devices", string(config.ReleaseDev)),
	huh.NewOption("prod - units are marked as production devices", string(config.ReleaseProd)),
}

// HardwareVersionPlaceholder returns an example hardware version for the
// given platform.
func HardwareVersionPlaceholder(platform string) string {
	if platform == string(config.PlatformDiamond) {
		return "DIAMOND_EVT2"
	}
	return "PEARL_EVT1"
}

// DefaultRelease returns the release mark implied by a backend choice.
// Stage registrations are almost always development units.
func DefaultRelease(backend string) string {
	if backend == string(config.BackendProd) {
		return string(config.ReleaseProd)
	}
	return string(config.ReleaseDev)
}
