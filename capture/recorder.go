package capture

import (
	"github.com/dshills/regionring/history"
	"github.com/dshills/regionring/host"
	"github.com/dshills/regionring/region"
)

// Recorder watches one document context for selection falling edges.
// It must only be used from the host's command loop; see the package
// documentation for the Before/After contract.
type Recorder struct {
	ed   host.Editor
	ring *history.Ring

	// wasActive is the selection state snapshotted by Before and
	// consumed by After.
	wasActive bool

	metrics *Metrics
}

// NewRecorder creates a recorder that observes the given editor and
// records captured regions into ring.
func NewRecorder(ed host.Editor, ring *history.Ring) *Recorder {
	return &Recorder{
		ed:      ed,
		ring:    ring,
		metrics: NewMetrics(),
	}
}

// Before snapshots the selection state. The host calls it immediately
// before executing a command.
func (r *Recorder) Before() {
	r.wasActive = r.ed.SelectionActive()
}

// After runs the falling-edge check. The host calls it immediately
// after the command bracketed by the matching Before. It returns the
// recorded region and true when a capture happened.
//
// The snapshot is consumed on every call, so an After without a fresh
// Before observes no edge and records nothing.
func (r *Recorder) After() (region.Region, bool) {
	wasActive := r.wasActive
	r.wasActive = false

	r.metrics.recordCommand()

	if !wasActive || r.ed.SelectionActive() {
		r.metrics.recordSkip(skipNoEdge)
		return region.Region{}, false
	}

	mark, ok := r.ed.Mark()
	if !ok {
		r.metrics.recordSkip(skipNoMark)
		return region.Region{}, false
	}

	reg := region.New(r.ed.Point(), mark)
	if reg.IsEmpty() {
		r.metrics.recordSkip(skipDegenerate)
		return region.Region{}, false
	}

	// The ring itself only rejects duplicates at this point; the
	// degenerate case was filtered above.
	if !r.ring.Record(reg) {
		r.metrics.recordSkip(skipDuplicate)
		return region.Region{}, false
	}

	r.metrics.recordCapture()
	return reg, true
}

// Ring returns the ring this recorder writes to.
func (r *Recorder) Ring() *history.Ring {
	return r.ring
}

// Metrics returns the recorder's counters.
func (r *Recorder) Metrics() *Metrics {
	return r.metrics
}
