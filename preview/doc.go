// Package preview implements the interactive cycle over a region
// history ring.
//
// A Manager owns at most one live Session. Start saves the current
// selection triple, clears the active selection, highlights the newest
// history entry, and parks the session cursor on it. Advance (and its
// Backward/Forward mirrors) walks the cursor through the ring with
// wraparound, moving point and the highlight together. Accept turns
// the previewed region into the live selection; Quit tears the session
// down and puts the saved selection back exactly as it was. Every exit
// path destroys the highlight exactly once.
//
// Hosts with a transient keymap facility get the three preview
// commands installed as an input intercept; hosts without one route
// commands through HandleCommand and act on the returned Decision.
// Both paths share the same command table, and any command outside it
// ends the session before running normally.
package preview
