package hosttest

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/regionring/host"
	"github.com/dshills/regionring/region"
)

// OpKind identifies a recorded highlight operation.
type OpKind int

const (
	OpCreate OpKind = iota
	OpMove
	OpDelete
)

// String returns the operation name.
func (k OpKind) String() string {
	switch k {
	case OpCreate:
		return "create"
	case OpMove:
		return "move"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Span is a half-open highlight extent.
type Span struct {
	Start region.Offset
	End   region.Offset
}

// HighlightOp is one recorded highlight call.
type HighlightOp struct {
	Kind  OpKind
	ID    host.HighlightID
	Start region.Offset
	End   region.Offset
}

// Intercept is an installed transient keymap layer.
type Intercept struct {
	Bindings map[string]func()
	Keep     func(command string) bool
	OnExit   func()
}

// Host is a fake editor implementing host.Editor, host.Highlighter,
// host.Input, and host.Messenger. The zero value is not usable; create
// hosts with NewHost.
type Host struct {
	selectionActive bool
	point           region.Offset
	mark            region.Offset
	hasMark         bool

	highlights map[host.HighlightID]Span
	ops        []HighlightOp

	// CreateErr, MoveErr, and DeleteErr are returned by the matching
	// highlight call when set, for failure-path tests.
	CreateErr error
	MoveErr   error
	DeleteErr error

	intercept *Intercept

	echoes []string
}

// NewHost creates a fake host with no selection, no mark, and no
// highlights.
func NewHost() *Host {
	return &Host{
		highlights: make(map[host.HighlightID]Span),
	}
}

// Editor

// SelectionActive implements host.Editor.
func (h *Host) SelectionActive() bool {
	return h.selectionActive
}

// Point implements host.Editor.
func (h *Host) Point() region.Offset {
	return h.point
}

// Mark implements host.Editor.
func (h *Host) Mark() (region.Offset, bool) {
	return h.mark, h.hasMark
}

// SetSelection implements host.Editor.
func (h *Host) SetSelection(point, mark region.Offset) {
	h.point = point
	h.mark = mark
	h.hasMark = true
	h.selectionActive = true
}

// ClearSelection implements host.Editor. The mark survives, matching
// editors where deactivating a selection leaves the mark in place.
func (h *Host) ClearSelection() {
	h.selectionActive = false
}

// MovePoint implements host.Editor. Moving point never activates or
// deactivates the selection.
func (h *Host) MovePoint(offset region.Offset) {
	h.point = offset
}

// Test drivers for editor state.

// Select activates a selection with the given point and mark.
func (h *Host) Select(point, mark region.Offset) {
	h.SetSelection(point, mark)
}

// Deactivate turns the selection off, keeping the mark.
func (h *Host) Deactivate() {
	h.selectionActive = false
}

// DropMark removes the mark entirely, as in a freshly opened buffer.
func (h *Host) DropMark() {
	h.hasMark = false
	h.selectionActive = false
}

// SetPoint moves point directly, bypassing the editor interface.
func (h *Host) SetPoint(offset region.Offset) {
	h.point = offset
}

// Highlighter

// CreateHighlight implements host.Highlighter.
func (h *Host) CreateHighlight(start, end region.Offset) (host.HighlightID, error) {
	if h.CreateErr != nil {
		return "", h.CreateErr
	}
	id := host.HighlightID(uuid.NewString())
	h.highlights[id] = Span{Start: start, End: end}
	h.ops = append(h.ops, HighlightOp{Kind: OpCreate, ID: id, Start: start, End: end})
	return id, nil
}

// MoveHighlight implements host.Highlighter.
func (h *Host) MoveHighlight(id host.HighlightID, start, end region.Offset) error {
	if h.MoveErr != nil {
		return h.MoveErr
	}
	if _, ok := h.highlights[id]; !ok {
		return fmt.Errorf("hosttest: unknown highlight %q", id)
	}
	h.highlights[id] = Span{Start: start, End: end}
	h.ops = append(h.ops, HighlightOp{Kind: OpMove, ID: id, Start: start, End: end})
	return nil
}

// DeleteHighlight implements host.Highlighter.
func (h *Host) DeleteHighlight(id host.HighlightID) error {
	if h.DeleteErr != nil {
		return h.DeleteErr
	}
	if _, ok := h.highlights[id]; !ok {
		return fmt.Errorf("hosttest: unknown highlight %q", id)
	}
	delete(h.highlights, id)
	h.ops = append(h.ops, HighlightOp{Kind: OpDelete, ID: id})
	return nil
}

// LiveHighlights returns the number of highlights not yet deleted.
func (h *Host) LiveHighlights() int {
	return len(h.highlights)
}

// HighlightSpan returns the current span of a live highlight.
func (h *Host) HighlightSpan(id host.HighlightID) (Span, bool) {
	span, ok := h.highlights[id]
	return span, ok
}

// Operations returns every highlight call in order.
func (h *Host) Operations() []HighlightOp {
	return h.ops
}

// Input

// InstallTransient implements host.Input.
func (h *Host) InstallTransient(bindings map[string]func(), keep func(command string) bool, onExit func()) {
	h.intercept = &Intercept{
		Bindings: bindings,
		Keep:     keep,
		OnExit:   onExit,
	}
}

// InterceptInstalled reports whether a transient layer is in place.
func (h *Host) InterceptInstalled() bool {
	return h.intercept != nil
}

// Intercepted returns the installed layer for direct inspection.
func (h *Host) Intercepted() *Intercept {
	return h.intercept
}

// Press delivers a command through the transient layer the way a host
// dispatch loop would, honoring the host.Input contract: keep decides
// survival first, then the binding runs. It returns true when the
// layer consumed the command. With no layer installed, or when the
// command removes the layer, it returns false and the caller runs the
// command normally.
func (h *Host) Press(command string) bool {
	ic := h.intercept
	if ic == nil {
		return false
	}
	if ic.Keep != nil && !ic.Keep(command) {
		h.intercept = nil
		if ic.OnExit != nil {
			ic.OnExit()
		}
		return false
	}
	if fn, ok := ic.Bindings[command]; ok {
		fn()
	}
	return true
}

// Messenger

// Echo implements host.Messenger.
func (h *Host) Echo(format string, args ...any) {
	h.echoes = append(h.echoes, fmt.Sprintf(format, args...))
}

// Echoes returns every message echoed so far.
func (h *Host) Echoes() []string {
	return h.echoes
}

// LastEcho returns the most recent message, or "" if none.
func (h *Host) LastEcho() string {
	if len(h.echoes) == 0 {
		return ""
	}
	return h.echoes[len(h.echoes)-1]
}
