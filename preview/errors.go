package preview

import "errors"

// Session lifecycle errors.
var (
	// ErrEmptyHistory indicates a start attempt with nothing recorded.
	ErrEmptyHistory = errors.New("preview: history is empty")

	// ErrSessionActive indicates a reentrant start attempt.
	ErrSessionActive = errors.New("preview: session already active")

	// ErrNoSession indicates an operation that requires a live session.
	ErrNoSession = errors.New("preview: no active session")

	// ErrInvalidCursor indicates the ring emptied underneath a live
	// session; the session has already been force-quit when this is
	// returned.
	ErrInvalidCursor = errors.New("preview: cursor invalidated by history change")
)
