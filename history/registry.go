package history

import (
	"sort"
	"sync"
)

// BufferID identifies a buffer in the host editor.
type BufferID string

// Registry owns one ring per buffer, created lazily on first use.
// It is safe for concurrent use; individual rings are not, and must
// only be touched from the host's command loop.
type Registry struct {
	mu       sync.Mutex
	rings    map[BufferID]*Ring
	capacity int
}

// NewRegistry creates a registry whose rings use the given capacity.
// Non-positive capacities fall back to DefaultCapacity.
func NewRegistry(capacity int) *Registry {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Registry{
		rings:    make(map[BufferID]*Ring),
		capacity: capacity,
	}
}

// Get returns the ring for the given buffer, creating it if needed.
func (reg *Registry) Get(id BufferID) *Ring {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	ring, ok := reg.rings[id]
	if !ok {
		ring = New(reg.capacity)
		reg.rings[id] = ring
	}
	return ring
}

// Lookup returns the ring for the given buffer without creating one.
func (reg *Registry) Lookup(id BufferID) (*Ring, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	ring, ok := reg.rings[id]
	return ring, ok
}

// Remove discards the ring for the given buffer, typically when the
// buffer is closed.
func (reg *Registry) Remove(id BufferID) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	delete(reg.rings, id)
}

// Len returns the number of buffers with a ring.
func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	return len(reg.rings)
}

// IDs returns the buffers with a ring, sorted for stable iteration.
func (reg *Registry) IDs() []BufferID {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	ids := make([]BufferID, 0, len(reg.rings))
	for id := range reg.rings {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SetDefaultCapacity changes the capacity used for new rings and
// resizes every existing ring, keeping each ring's newest entries.
// Returns ErrInvalidCapacity for non-positive capacities.
func (reg *Registry) SetDefaultCapacity(capacity int) error {
	if capacity <= 0 {
		return ErrInvalidCapacity
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	reg.capacity = capacity
	for _, ring := range reg.rings {
		if err := ring.SetCapacity(capacity); err != nil {
			return err
		}
	}
	return nil
}

// DefaultCapacity returns the capacity used for new rings.
func (reg *Registry) DefaultCapacity() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	return reg.capacity
}
