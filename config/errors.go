package config

import "errors"

// Validation errors.
var (
	// ErrInvalidCapacity indicates a non-positive history capacity.
	ErrInvalidCapacity = errors.New("config: history capacity must be positive")

	// ErrMissingKeyBinding indicates an empty preview key name.
	ErrMissingKeyBinding = errors.New("config: preview key bindings must not be empty")

	// ErrWatcherClosed indicates use of a closed watcher.
	ErrWatcherClosed = errors.New("config: watcher is closed")
)
