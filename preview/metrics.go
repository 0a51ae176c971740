package preview

import (
	"sync"
)

// Metrics collects session statistics.
type Metrics struct {
	mu sync.RWMutex

	started   uint64
	accepted  uint64
	cancelled uint64
	forced    uint64
	advances  uint64
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) recordStart() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started++
}

func (m *Metrics) recordAccept() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accepted++
}

func (m *Metrics) recordCancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelled++
}

func (m *Metrics) recordForcedQuit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forced++
}

func (m *Metrics) recordAdvance() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advances++
}

// Started returns the number of sessions begun.
func (m *Metrics) Started() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.started
}

// Accepted returns the number of sessions ended by accepting.
func (m *Metrics) Accepted() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.accepted
}

// Cancelled returns the number of sessions ended without accepting,
// forced quits included.
func (m *Metrics) Cancelled() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cancelled
}

// ForcedQuits returns the number of sessions the manager had to end
// itself.
func (m *Metrics) ForcedQuits() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.forced
}

// Advances returns the number of successful cursor moves.
func (m *Metrics) Advances() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.advances
}

// MetricsSnapshot is a point-in-time copy of the session counters.
type MetricsSnapshot struct {
	Started     uint64
	Accepted    uint64
	Cancelled   uint64
	ForcedQuits uint64
	Advances    uint64
}

// Snapshot returns a copy of the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return MetricsSnapshot{
		Started:     m.started,
		Accepted:    m.accepted,
		Cancelled:   m.cancelled,
		ForcedQuits: m.forced,
		Advances:    m.advances,
	}
}

// Reset clears all counters.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.started = 0
	m.accepted = 0
	m.cancelled = 0
	m.forced = 0
	m.advances = 0
}
