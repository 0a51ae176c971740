// Package region provides the region value type shared by the history
// ring and the preview state machine.
//
// A Region is an ordered pair of offsets into a document: Point is the
// cursor location and Mark is the anchor of a prior selection. The pair
// is directional (a selection dragged backward has Point < Mark), but
// two regions covering the same span are the same selection regardless
// of direction, so Equal compares with Point and Mark interchangeable.
//
// When Point == Mark the region is degenerate: it describes an empty
// selection and is never worth recording.
//
// Region is an immutable value type and safe for concurrent use.
package region
