package preview

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/regionring/history"
	"github.com/dshills/regionring/hook"
	"github.com/dshills/regionring/host"
)

// Command names recognized while a session is live.
const (
	CommandBackward = "preview.backward"
	CommandForward  = "preview.forward"
	CommandAccept   = "preview.accept"
)

// IsPreviewCommand reports whether command is one of the three preview
// commands.
func IsPreviewCommand(command string) bool {
	switch command {
	case CommandBackward, CommandForward, CommandAccept:
		return true
	}
	return false
}

// DefaultHintText is echoed when a session starts, unless overridden.
const DefaultHintText = "Region history: backward/forward to cycle, accept to re-select; any other key exits"

// forcedQuitNotice is echoed when the manager ends a session it can no
// longer drive. Intercept-driven hosts never see the operation error,
// so the echo is their only signal.
const forcedQuitNotice = "preview ended early"

// Decision tells a host command router what to do after HandleCommand.
type Decision int

const (
	// DecisionStay keeps routing commands to the session.
	DecisionStay Decision = iota

	// DecisionExit stops routing; the host dispatches normally.
	DecisionExit
)

// Option configures a Manager.
type Option func(*Manager)

// WithInput supplies the host's transient keymap facility. Without it
// the host drives HandleCommand directly.
func WithInput(in host.Input) Option {
	return func(m *Manager) { m.input = in }
}

// WithMessenger supplies a status-line sink for the usage hint.
func WithMessenger(msg host.Messenger) Option {
	return func(m *Manager) { m.msg = msg }
}

// WithHint enables or disables the usage hint on session start.
func WithHint(show bool) Option {
	return func(m *Manager) { m.showHint = show }
}

// WithHintText overrides the hint message.
func WithHintText(text string) Option {
	return func(m *Manager) { m.hintText = text }
}

// Manager runs preview sessions over one history ring. At most one
// session is live at a time; Start refuses while one is previewing.
// Like the ring itself, a Manager belongs to the host's command loop
// and is not safe for concurrent use.
type Manager struct {
	ed   host.Editor
	hl   host.Highlighter
	ring *history.Ring

	input host.Input
	msg   host.Messenger

	showHint bool
	hintText string

	startHooks *hook.Registry
	endHooks   *hook.Registry

	metrics *Metrics

	session *Session
}

// NewManager creates a manager for the given editor, highlighter, and
// ring.
func NewManager(ed host.Editor, hl host.Highlighter, ring *history.Ring, opts ...Option) *Manager {
	m := &Manager{
		ed:         ed,
		hl:         hl,
		ring:       ring,
		showHint:   true,
		hintText:   DefaultHintText,
		startHooks: hook.NewRegistry(),
		endHooks:   hook.NewRegistry(),
		metrics:    NewMetrics(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// StartHooks returns the registry fired at the top of every start
// attempt, before any session effect.
func (m *Manager) StartHooks() *hook.Registry {
	return m.startHooks
}

// EndHooks returns the registry fired after a session's cleanup
// completes.
func (m *Manager) EndHooks() *hook.Registry {
	return m.endHooks
}

// Metrics returns the manager's counters.
func (m *Manager) Metrics() *Metrics {
	return m.metrics
}

// Session returns the live session, or nil.
func (m *Manager) Session() *Session {
	return m.session
}

// Active reports whether a session is previewing.
func (m *Manager) Active() bool {
	return m.session != nil && m.session.state == StatePreviewing
}

// SetHint enables or disables the usage hint, taking effect on the
// next session start.
func (m *Manager) SetHint(show bool) {
	m.showHint = show
}

// SetHintText replaces the hint message, taking effect on the next
// session start.
func (m *Manager) SetHintText(text string) {
	m.hintText = text
}

// State returns the live session's state, or StateInactive.
func (m *Manager) State() State {
	if m.session == nil {
		return StateInactive
	}
	return m.session.state
}

// Start begins a session on the newest history entry. It refuses with
// ErrSessionActive while a session is live and with ErrEmptyHistory
// when nothing has been recorded; a refused start leaves no residual
// state.
func (m *Manager) Start() error {
	if m.session != nil {
		return ErrSessionActive
	}

	id := uuid.NewString()
	m.startHooks.Emit(hook.Event{SessionID: id})

	// The lookup doubles as the emptiness check, before any effect.
	reg, err := m.ring.Latest(0)
	if err != nil {
		return ErrEmptyHistory
	}

	s := &Session{
		id:          id,
		state:       StatePreviewing,
		cursor:      0,
		last:        reg,
		savedActive: m.ed.SelectionActive(),
		savedPoint:  m.ed.Point(),
	}
	if mark, ok := m.ed.Mark(); ok {
		s.savedMark = mark
	}

	m.ed.ClearSelection()
	m.ed.MovePoint(reg.Point)

	start, end := reg.Span()
	hlID, err := m.hl.CreateHighlight(start, end)
	if err != nil {
		// Unwind so the refusal leaves the editor untouched.
		if s.savedActive {
			m.ed.SetSelection(s.savedPoint, s.savedMark)
		}
		m.ed.MovePoint(s.savedPoint)
		return fmt.Errorf("preview: create highlight: %w", err)
	}
	s.highlight = hlID
	m.session = s

	if m.input != nil {
		m.installIntercept()
	}
	if m.showHint && m.msg != nil {
		m.msg.Echo("%s", m.hintText)
	}

	m.metrics.recordStart()
	return nil
}

// Advance moves the session cursor delta entries through the ring,
// positive toward older entries, wrapping in both directions. The
// highlight is repositioned, never recreated. If the ring emptied
// underneath the session it is force-quit and ErrInvalidCursor is
// returned.
func (m *Manager) Advance(delta int) error {
	s := m.session
	if s == nil || s.state != StatePreviewing {
		return ErrNoSession
	}

	n := m.ring.Len()
	if n == 0 {
		m.forceQuit()
		return ErrInvalidCursor
	}

	cursor := wrap(s.cursor+delta, n)
	reg, err := m.ring.Latest(cursor)
	if err != nil {
		m.forceQuit()
		return ErrInvalidCursor
	}

	s.cursor = cursor
	s.last = reg
	m.ed.MovePoint(reg.Point)

	start, end := reg.Span()
	if err := m.hl.MoveHighlight(s.highlight, start, end); err != nil {
		m.forceQuit()
		return fmt.Errorf("preview: move highlight: %w", err)
	}

	m.metrics.recordAdvance()
	return nil
}

// Backward cycles n entries toward older history. A count below 1 is
// treated as 1.
func (m *Manager) Backward(n int) error {
	if n < 1 {
		n = 1
	}
	return m.Advance(n)
}

// Forward cycles n entries toward newer history. A count below 1 is
// treated as 1.
func (m *Manager) Forward(n int) error {
	if n < 1 {
		n = 1
	}
	return m.Advance(-n)
}

// Accept makes the previewed region the live selection and ends the
// session.
func (m *Manager) Accept() error {
	s := m.session
	if s == nil || s.state != StatePreviewing {
		return ErrNoSession
	}

	if m.ed.SelectionActive() {
		m.ed.ClearSelection()
	}
	m.ed.SetSelection(s.last.Point, s.last.Mark)

	s.state = StateAccepted
	m.metrics.recordAccept()
	return m.cleanup(s)
}

// Quit ends the session without accepting. The selection that was
// active at start is restored exactly; if none was, point stays where
// the preview left it.
func (m *Manager) Quit() error {
	s := m.session
	if s == nil || s.state != StatePreviewing {
		return ErrNoSession
	}

	s.state = StateCancelled
	m.metrics.recordCancel()
	return m.cleanup(s)
}

// HandleCommand routes one host command. The three preview commands
// run their session operation and keep routing; anything else ends the
// session first and tells the host to dispatch normally.
func (m *Manager) HandleCommand(command string) Decision {
	if !m.Active() {
		return DecisionExit
	}

	switch command {
	case CommandBackward:
		_ = m.Backward(1)
		return DecisionStay
	case CommandForward:
		_ = m.Forward(1)
		return DecisionStay
	case CommandAccept:
		_ = m.Accept()
		return DecisionStay
	default:
		_ = m.Quit()
		return DecisionExit
	}
}

// installIntercept layers the preview commands over the host keymap.
// The keep predicate drops the layer as soon as the session is gone or
// a foreign command arrives, and exit always quits a still-live
// session before the foreign command runs.
func (m *Manager) installIntercept() {
	bindings := map[string]func(){
		CommandBackward: func() { m.HandleCommand(CommandBackward) },
		CommandForward:  func() { m.HandleCommand(CommandForward) },
		CommandAccept:   func() { m.HandleCommand(CommandAccept) },
	}
	keep := func(command string) bool {
		return m.Active() && IsPreviewCommand(command)
	}
	onExit := func() {
		if m.Active() {
			_ = m.Quit()
		}
	}
	m.input.InstallTransient(bindings, keep, onExit)
}

// forceQuit ends a session the manager can no longer drive.
func (m *Manager) forceQuit() {
	s := m.session
	if s == nil || s.state != StatePreviewing {
		return
	}

	s.state = StateCancelled
	m.metrics.recordCancel()
	m.metrics.recordForcedQuit()
	_ = m.cleanup(s)

	if m.msg != nil {
		m.msg.Echo("%s", forcedQuitNotice)
	}
}

// cleanup runs the shared exit path: destroy the highlight exactly
// once, restore the saved selection unless the session accepted, fire
// the end hooks after everything else, release the session. A
// highlight destruction error is reported only after cleanup finishes.
func (m *Manager) cleanup(s *Session) error {
	var err error
	if s.highlight != "" {
		err = m.hl.DeleteHighlight(s.highlight)
		s.highlight = ""
	}

	if s.state != StateAccepted && s.savedActive {
		m.ed.SetSelection(s.savedPoint, s.savedMark)
	}

	m.session = nil

	m.endHooks.Emit(hook.Event{
		SessionID: s.id,
		Index:     s.cursor,
		Region:    s.last,
		Accepted:  s.state == StateAccepted,
	})

	return err
}

// wrap maps i onto [0, n) with signed modulo semantics.
func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
