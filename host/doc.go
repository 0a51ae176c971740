// Package host defines the editor-side contracts that region history
// and preview sessions are built against.
//
// A host editor implements Editor to expose selection state,
// Highlighter to draw the preview highlight, and optionally Input and
// Messenger for transient keymaps and user-facing messages. The
// library never touches buffer text; everything it needs is expressed
// through these interfaces, so any host with a point/mark selection
// model can adopt it.
package host
