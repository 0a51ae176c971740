// Package hook provides named observer callbacks for preview session
// lifecycle events.
package hook

import (
	"github.com/dshills/regionring/region"
)

// Event describes a preview session transition delivered to hooks.
type Event struct {
	// SessionID identifies the preview session.
	SessionID string

	// Index is the history offset the session cursor pointed at when
	// the event fired.
	Index int

	// Region is the history entry under the cursor.
	Region region.Region

	// Accepted is true on session end when the previewed region was
	// activated, false when the session was cancelled.
	Accepted bool
}

// Func is a hook callback. Hooks run synchronously on the session's
// goroutine; a panicking hook is recovered and skipped so one bad
// observer cannot break the session.
type Func func(Event)
