// Package capture records deactivated selections into a history ring.
//
// The recorder is passive: it never watches selection state directly.
// Instead the host brackets every command it executes with Before and
// After, and the recorder detects the falling edge: the selection was
// active before the command and is inactive after it. At that moment
// the region formed by the current point and the surviving mark is
// recorded, unless it is degenerate or duplicates an end of the ring.
//
// Commands that merely move an active selection, or that run with no
// selection at all, leave the ring untouched. A selection that is
// activated and deactivated within a single command is invisible to
// the edge check and is deliberately not captured.
package capture
