package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errHardwareVersionRequired = errors.New("hardware version is required")
	errChannelRequired         = errors.New("channel is required")
	errManufacturerRequired    = errors.New("manufacturer is required")
	errBucketRequired          = errors.New("bucket is required")
	errRegionRequired          = errors.New("region is required")
)
