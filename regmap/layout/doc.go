// Package layout derives a register word's segment view and drives the
// interactive layout editor.
//
// # Segments
//
// BuildSegments partitions a word into an MSB-first sequence of field and gap
// segments covering every bit exactly once. The segment list is a derived
// view: it is recomputed whenever the field list changes and never cached
// across edits.
//
// # Editor
//
// Editor is a session-scoped state machine over press/move/release bit-index
// events. A press on a field segment starts a resize, a press on a gap starts
// a create, and PressReorder starts a field reorder. Moves update the current
// selection (clamped into the gesture's sandbox); Release commits exactly one
// mutation through the host callbacks; Cancel discards the session with no
// mutation. A second press while a gesture is active is rejected.
//
// Commits always carry the complete result: a resize or create emits a single
// callback, and a reorder — which can move every field at once — emits one
// batch update so no reader ever observes a partially applied layout.
package layout
