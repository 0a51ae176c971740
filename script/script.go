// Package script exposes preview sessions to Lua. A Host owns one
// gopher-lua state, preloads a "regionring" module, and forwards the
// manager's start and end hook events into Lua callbacks. Everything
// runs synchronously on the host command loop; Lua errors are reported
// through the error handler and never reach the state machine.
//
// The module surface:
//
//	local rr = require("regionring")
//	rr.on_preview_start(function(ev) ... end)
//	rr.on_preview_end(function(ev) ... end)
//	rr.history_len()
//
// Event tables carry session_id, index, point, mark, and accepted.
package script

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/regionring/history"
	"github.com/dshills/regionring/hook"
	"github.com/dshills/regionring/preview"
)

// ModuleName is the name scripts pass to require.
const ModuleName = "regionring"

// hookName is the slot the host occupies in the manager's registries.
const hookName = "script"

// ErrClosed is returned when using a closed host.
var ErrClosed = errors.New("script: host is closed")

// Option configures a Host.
type Option func(*Host)

// WithErrorHandler sets the sink for contained Lua errors. Without one
// they are dropped.
func WithErrorHandler(fn func(error)) Option {
	return func(h *Host) { h.onError = fn }
}

// Host wires a Lua state to a preview manager.
type Host struct {
	// L is the underlying state. It must only be touched from the
	// command loop that drives the manager.
	L *lua.LState

	mgr  *preview.Manager
	ring *history.Ring

	startFns []*lua.LFunction
	endFns   []*lua.LFunction

	onError func(error)
	closed  bool
}

// NewHost creates a Lua host bound to a manager and the ring it
// previews.
func NewHost(mgr *preview.Manager, ring *history.Ring, opts ...Option) *Host {
	h := &Host{
		L:    lua.NewState(),
		mgr:  mgr,
		ring: ring,
	}
	for _, opt := range opts {
		opt(h)
	}

	h.L.PreloadModule(ModuleName, h.loadModule)
	mgr.StartHooks().Register(hookName, h.fireStart)
	mgr.EndHooks().Register(hookName, h.fireEnd)
	return h
}

// LoadFile runs a Lua script, typically the configured init file.
func (h *Host) LoadFile(path string) error {
	if h.closed {
		return ErrClosed
	}
	if err := h.L.DoFile(path); err != nil {
		return fmt.Errorf("script: running %s: %w", path, err)
	}
	return nil
}

// LoadString runs Lua source directly.
func (h *Host) LoadString(src string) error {
	if h.closed {
		return ErrClosed
	}
	if err := h.L.DoString(src); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// Close detaches the host from the manager and tears down the Lua
// state. It may be called once; further use returns ErrClosed.
func (h *Host) Close() {
	if h.closed {
		return
	}
	h.closed = true

	h.mgr.StartHooks().Unregister(hookName)
	h.mgr.EndHooks().Unregister(hookName)
	h.startFns = nil
	h.endFns = nil
	h.L.Close()
}

// loadModule builds the regionring module table.
func (h *Host) loadModule(L *lua.LState) int {
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"on_preview_start": h.luaOnPreviewStart,
		"on_preview_end":   h.luaOnPreviewEnd,
		"history_len":      h.luaHistoryLen,
	})
	L.Push(mod)
	return 1
}

func (h *Host) luaOnPreviewStart(L *lua.LState) int {
	fn := L.CheckFunction(1)
	h.startFns = append(h.startFns, fn)
	return 0
}

func (h *Host) luaOnPreviewEnd(L *lua.LState) int {
	fn := L.CheckFunction(1)
	h.endFns = append(h.endFns, fn)
	return 0
}

func (h *Host) luaHistoryLen(L *lua.LState) int {
	L.Push(lua.LNumber(h.ring.Len()))
	return 1
}

func (h *Host) fireStart(ev hook.Event) {
	h.fire(h.startFns, ev)
}

func (h *Host) fireEnd(ev hook.Event) {
	h.fire(h.endFns, ev)
}

// fire calls each Lua callback with the event table. A failing
// callback is reported and the rest still run.
func (h *Host) fire(fns []*lua.LFunction, ev hook.Event) {
	if h.closed {
		return
	}
	for _, fn := range fns {
		h.L.Push(fn)
		h.L.Push(h.eventTable(ev))
		if err := h.L.PCall(1, 0, nil); err != nil {
			h.report(err)
		}
	}
}

// eventTable bridges a hook event into a Lua table.
func (h *Host) eventTable(ev hook.Event) *lua.LTable {
	t := h.L.NewTable()
	t.RawSetString("session_id", lua.LString(ev.SessionID))
	t.RawSetString("index", lua.LNumber(ev.Index))
	t.RawSetString("point", lua.LNumber(ev.Region.Point))
	t.RawSetString("mark", lua.LNumber(ev.Region.Mark))
	t.RawSetString("accepted", lua.LBool(ev.Accepted))
	return t
}

func (h *Host) report(err error) {
	if h.onError != nil {
		h.onError(err)
	}
}
