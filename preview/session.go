package preview

import (
	"github.com/dshills/regionring/host"
	"github.com/dshills/regionring/region"
)

// State identifies where a session is in its lifecycle.
type State int

const (
	// StateInactive means no session exists.
	StateInactive State = iota

	// StatePreviewing is the only interactive state.
	StatePreviewing

	// StateAccepted is terminal: the previewed region became the live
	// selection.
	StateAccepted

	// StateCancelled is terminal: the session ended without accepting.
	StateCancelled
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StatePreviewing:
		return "previewing"
	case StateAccepted:
		return "accepted"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Session is one preview interaction. Sessions are created by
// Manager.Start and live until Accept or Quit; the Manager releases
// them afterward, but a held pointer stays readable for its terminal
// state.
type Session struct {
	id     string
	state  State
	cursor int

	highlight host.HighlightID

	// last is the ring entry under the cursor, kept so end-of-session
	// effects do not depend on the ring still holding it.
	last region.Region

	// Selection triple saved at start for restoration on cancel.
	savedActive bool
	savedPoint  region.Offset
	savedMark   region.Offset
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns the session's current state.
func (s *Session) State() State {
	return s.state
}

// Cursor returns the history offset the session points at.
func (s *Session) Cursor() int {
	return s.cursor
}

// Region returns the history entry under the cursor.
func (s *Session) Region() region.Region {
	return s.last
}
