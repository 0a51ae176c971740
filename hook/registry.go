package hook

import (
	"sync"
)

type entry struct {
	name string
	fn   Func
}

// Registry holds named hooks and runs them in registration order.
type Registry struct {
	mu    sync.RWMutex
	hooks []entry
}

// NewRegistry creates an empty hook registry.
func NewRegistry() *Registry {
	return &Registry{
		hooks: make([]entry, 0),
	}
}

// Register adds a hook under the given name. Registering an existing
// name replaces the callback in place, keeping its original position
// in the run order.
func (r *Registry) Register(name string, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, h := range r.hooks {
		if h.name == name {
			r.hooks[i].fn = fn
			return
		}
	}
	r.hooks = append(r.hooks, entry{name: name, fn: fn})
}

// Unregister removes the hook with the given name. Returns false if
// no such hook exists.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, h := range r.hooks {
		if h.name == name {
			r.hooks = append(r.hooks[:i], r.hooks[i+1:]...)
			return true
		}
	}
	return false
}

// Emit runs every hook with the event, in registration order. Panics
// in individual hooks are recovered so the remaining hooks still run.
func (r *Registry) Emit(ev Event) {
	r.mu.RLock()
	hooks := make([]entry, len(r.hooks))
	copy(hooks, r.hooks)
	r.mu.RUnlock()

	for _, h := range hooks {
		safeCall(h.fn, ev)
	}
}

// Names returns the registered hook names in run order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.hooks))
	for i, h := range r.hooks {
		names[i] = h.name
	}
	return names
}

// Count returns the number of registered hooks.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hooks)
}

// Clear removes all hooks.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = r.hooks[:0]
}

// safeCall runs a hook with panic recovery.
func safeCall(fn Func, ev Event) {
	defer func() {
		_ = recover()
	}()
	if fn != nil {
		fn(ev)
	}
}
