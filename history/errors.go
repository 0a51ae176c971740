package history

import "errors"

// History errors.
var (
	// ErrEmpty indicates a lookup on a ring with no recorded regions.
	ErrEmpty = errors.New("history: ring is empty")

	// ErrInvalidCapacity indicates a non-positive ring capacity.
	ErrInvalidCapacity = errors.New("history: capacity must be positive")
)
