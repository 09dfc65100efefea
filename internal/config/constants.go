package config

// Environment variables the loader falls back to for credentials.
const (
	// EnvManagementToken supplies the management API bearer token.
	EnvManagementToken = "FM_CLI_ORB_MANAGER_INTERNAL_TOKEN"

	// EnvInventoryToken supplies the inventory GraphQL bearer token.
	EnvInventoryToken = "HARDWARE_TOKEN_PRODUCTION"
)

// Defaults applied when the configuration file omits a value.
const (
	DefaultManufacturer = "TFH_Jabil"
	DefaultChannel      = "general"
	DefaultWorkDir      = "build"
	DefaultArtifactsDir = "artifacts"
)
