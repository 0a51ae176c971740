package region

import "fmt"

// Offset is a zero-based position within a document's text.
// The host decides the unit (bytes, runes, characters); the core only
// stores and compares offsets, it never indexes into text itself.
type Offset int

// Region represents a span of document text between a cursor position
// and a selection anchor. Region is an immutable value type.
type Region struct {
	Point Offset // Cursor location (where typing would occur)
	Mark  Offset // Anchor of the selection
}

// New creates a region from a point and a mark.
func New(point, mark Offset) Region {
	return Region{Point: point, Mark: mark}
}

// IsEmpty returns true if the region is degenerate (Point == Mark),
// meaning it describes an empty selection.
func (r Region) IsEmpty() bool {
	return r.Point == r.Mark
}

// Len returns the length of the region.
func (r Region) Len() Offset {
	if r.Point <= r.Mark {
		return r.Mark - r.Point
	}
	return r.Point - r.Mark
}

// Start returns the lower bound of the region.
func (r Region) Start() Offset {
	if r.Point <= r.Mark {
		return r.Point
	}
	return r.Mark
}

// End returns the upper bound of the region.
func (r Region) End() Offset {
	if r.Point >= r.Mark {
		return r.Point
	}
	return r.Mark
}

// Span returns the order-normalized bounds [Start, End) suitable for
// placing a highlight.
func (r Region) Span() (start, end Offset) {
	return r.Start(), r.End()
}

// IsForward returns true if the region extends forward (point >= mark).
func (r Region) IsForward() bool {
	return r.Point >= r.Mark
}

// Flip returns a region with point and mark swapped.
func (r Region) Flip() Region {
	return Region{Point: r.Mark, Mark: r.Point}
}

// Contains returns true if the given offset falls within the region.
// Degenerate regions contain nothing.
func (r Region) Contains(off Offset) bool {
	return off >= r.Start() && off < r.End()
}

// Equal reports whether two regions describe the same selection.
// Point and mark are interchangeable: {p, m} equals {m, p}.
func (r Region) Equal(other Region) bool {
	return r.Start() == other.Start() && r.End() == other.End()
}

// Same reports whether two regions are identical including direction.
func (r Region) Same(other Region) bool {
	return r.Point == other.Point && r.Mark == other.Mark
}

// String returns a string representation of the region.
func (r Region) String() string {
	if r.IsEmpty() {
		return fmt.Sprintf("Region(%d)", r.Point)
	}
	dir := "→"
	if !r.IsForward() {
		dir = "←"
	}
	return fmt.Sprintf("Region(%d%s%d)", r.Mark, dir, r.Point)
}
