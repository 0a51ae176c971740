package history

import (
	"github.com/dshills/regionring/region"
)

// DefaultCapacity is the ring capacity used when none is configured.
const DefaultCapacity = 10

// Ring is a fixed-capacity circular buffer of regions, newest first.
// The zero value is not usable; create rings with New.
type Ring struct {
	// entries is the fixed backing array.
	entries []region.Region

	// next is the index where the next recorded region is written.
	next int

	// count is the number of live entries, distinguishing a partially
	// filled ring from a full one.
	count int
}

// New creates a ring with the given capacity.
// Non-positive capacities fall back to DefaultCapacity.
func New(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{
		entries: make([]region.Region, capacity),
	}
}

// Record inserts a region at the front of the ring, evicting the
// oldest entry if the ring is full. It returns false without mutating
// the ring when the region is degenerate or equals (swap-insensitively)
// the current newest or oldest entry.
func (r *Ring) Record(reg region.Region) bool {
	if reg.IsEmpty() {
		return false
	}

	if r.count > 0 {
		if front, err := r.Latest(0); err == nil && front.Equal(reg) {
			return false
		}
		if back, err := r.Latest(-1); err == nil && back.Equal(reg) {
			return false
		}
	}

	r.entries[r.next] = reg
	r.next = (r.next + 1) % len(r.entries)
	if r.count < len(r.entries) {
		r.count++
	}
	return true
}

// Latest returns the region at the given logical offset. Offset 0 is
// the newest entry; offsets wrap modulo the ring length with signed
// arithmetic, so -1 addresses the oldest entry. Returns ErrEmpty if
// nothing has been recorded.
func (r *Ring) Latest(offset int) (region.Region, error) {
	if r.count == 0 {
		return region.Region{}, ErrEmpty
	}

	logical := wrap(offset, r.count)
	idx := wrap(r.next-1-logical, len(r.entries))
	return r.entries[idx], nil
}

// IsEmpty returns true if no regions have been recorded.
func (r *Ring) IsEmpty() bool {
	return r.count == 0
}

// Len returns the number of recorded regions.
func (r *Ring) Len() int {
	return r.count
}

// Cap returns the ring capacity.
func (r *Ring) Cap() int {
	return len(r.entries)
}

// Clear discards all recorded regions, keeping the capacity.
func (r *Ring) Clear() {
	r.next = 0
	r.count = 0
}

// SetCapacity resizes the ring in place. The newest entries are kept;
// the oldest are dropped when shrinking. Returns ErrInvalidCapacity
// for non-positive capacities.
func (r *Ring) SetCapacity(capacity int) error {
	if capacity <= 0 {
		return ErrInvalidCapacity
	}
	if capacity == len(r.entries) {
		return nil
	}

	keep := r.count
	if keep > capacity {
		keep = capacity
	}

	entries := make([]region.Region, capacity)
	for i := 0; i < keep; i++ {
		// Oldest kept entry first, newest last.
		reg, err := r.Latest(keep - 1 - i)
		if err != nil {
			return err
		}
		entries[i] = reg
	}

	r.entries = entries
	r.next = keep % capacity
	r.count = keep
	return nil
}

// Regions returns a snapshot of the recorded regions, newest first.
// The returned slice is safe to modify without affecting the ring.
func (r *Ring) Regions() []region.Region {
	out := make([]region.Region, 0, r.count)
	for i := 0; i < r.count; i++ {
		reg, err := r.Latest(i)
		if err != nil {
			break
		}
		out = append(out, reg)
	}
	return out
}

// wrap maps i onto [0, n) with signed modulo semantics.
func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
