package plugin

import "errors"

// Plugin loading errors.
var (
	// ErrNoCommandDir is returned when the command directory cannot be read.
	ErrNoCommandDir = errors.New("command directory not readable")

	// ErrUnitNotFound is returned when a loaded unit cannot be located.
	ErrUnitNotFound = errors.New("plugin unit not found")
)
