package host

import (
	"github.com/dshills/regionring/region"
)

// HighlightID identifies a highlight created by a Highlighter.
type HighlightID string

// Editor abstracts the host's selection state for the current buffer.
type Editor interface {
	// Selection state
	SelectionActive() bool
	Point() region.Offset
	Mark() (region.Offset, bool)

	// Selection mutation
	SetSelection(point, mark region.Offset)
	ClearSelection()
	MovePoint(offset region.Offset)
}

// Highlighter abstracts the host's highlight overlay. Implementations
// draw a visible span over [start, end) and return a handle for later
// moves and removal.
type Highlighter interface {
	CreateHighlight(start, end region.Offset) (HighlightID, error)
	MoveHighlight(id HighlightID, start, end region.Offset) error
	DeleteHighlight(id HighlightID) error
}

// Input abstracts the host's transient keymap facility. InstallTransient
// layers bindings over the host's normal dispatch. For every incoming
// command the host consults keep first: while it returns true the layer
// stays and the command's binding (if any) runs in place of normal
// dispatch. The first command for which keep returns false removes the
// layer, fires onExit exactly once, and then dispatches normally.
type Input interface {
	InstallTransient(bindings map[string]func(), keep func(command string) bool, onExit func())
}

// Messenger abstracts the host's echo area for short status messages.
type Messenger interface {
	Echo(format string, args ...any)
}
