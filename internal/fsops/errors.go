package fsops

import "errors"

// Sentinel errors for path validation. Operations check these before
// touching anything; per-file failures during a pass are collected,
// not raised.
var (
	// ErrInvalidPath means the path is missing or not a directory.
	ErrInvalidPath = errors.New("path does not exist or is not a directory")

	// ErrUnsafePath means the path sits under a protected prefix.
	ErrUnsafePath = errors.New("path is under a protected location")
)
