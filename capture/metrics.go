package capture

import (
	"sync"
)

type skipReason int

const (
	skipNoEdge skipReason = iota
	skipNoMark
	skipDegenerate
	skipDuplicate
)

// Metrics collects recorder statistics.
type Metrics struct {
	mu sync.RWMutex

	commands   uint64
	captures   uint64
	noEdge     uint64
	noMark     uint64
	degenerate uint64
	duplicate  uint64
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) recordCommand() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands++
}

func (m *Metrics) recordCapture() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.captures++
}

func (m *Metrics) recordSkip(reason skipReason) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch reason {
	case skipNoEdge:
		m.noEdge++
	case skipNoMark:
		m.noMark++
	case skipDegenerate:
		m.degenerate++
	case skipDuplicate:
		m.duplicate++
	}
}

// Commands returns the number of command brackets observed.
func (m *Metrics) Commands() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.commands
}

// Captures returns the number of regions recorded.
func (m *Metrics) Captures() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.captures
}

// MetricsSnapshot is a point-in-time copy of the recorder counters.
type MetricsSnapshot struct {
	Commands          uint64
	Captures          uint64
	SkippedNoEdge     uint64
	SkippedNoMark     uint64
	SkippedDegenerate uint64
	SkippedDuplicate  uint64
}

// Snapshot returns a copy of the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return MetricsSnapshot{
		Commands:          m.commands,
		Captures:          m.captures,
		SkippedNoEdge:     m.noEdge,
		SkippedNoMark:     m.noMark,
		SkippedDegenerate: m.degenerate,
		SkippedDuplicate:  m.duplicate,
	}
}

// Reset clears all counters.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.commands = 0
	m.captures = 0
	m.noEdge = 0
	m.noMark = 0
	m.degenerate = 0
	m.duplicate = 0
}
