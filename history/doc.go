// Package history provides the bounded ring of previously active
// regions and a per-buffer registry of rings.
//
// The Ring is a fixed-capacity circular buffer addressed newest-first:
// offset 0 is the most recently recorded region, offset 1 the one
// before it, and offsets wrap modulo the ring length with signed
// arithmetic, so offset -1 is the oldest entry. When the ring is full
// the oldest entry is evicted first.
//
// Record applies the capture heuristic's suppression rules: degenerate
// regions are never stored, and a region equal (point/mark swap
// insensitively) to the current newest or oldest entry is rejected.
// Only the two ends are checked; this is deliberately not a full
// deduplication scan.
//
// The Registry hands out one Ring per buffer, created lazily on first
// use with the configured default capacity. Ring lifetime follows the
// buffer: call Remove when the buffer closes.
//
// Ring performs no locking; the host's command loop owns it. Registry
// guards its map so configuration reloads arriving from a watcher
// goroutine can adjust capacities, but rings themselves must only be
// touched from the command loop.
package history
