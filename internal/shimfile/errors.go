package shimfile

import "errors"

// Sidecar loading errors.
var (
	// ErrPathTooLong is returned when the shim executable's own path
	// exceeds the fixed maximum and no sidecar path can be derived.
	ErrPathTooLong = errors.New("shimfile: executable path too long")

	// ErrNoTarget is reported when a sidecar parses without a usable
	// path entry; nothing can be launched from it.
	ErrNoTarget = errors.New("shimfile: no target path in sidecar")
)
