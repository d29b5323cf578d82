package layout

import "errors"

var (
	// ErrGestureActive indicates a press arrived while a gesture is in progress.
	ErrGestureActive = errors.New("layout: gesture already active")

	// ErrNoGesture indicates a move or release with no active gesture.
	ErrNoGesture = errors.New("layout: no active gesture")

	// ErrOutOfRange indicates a bit index outside the register word.
	ErrOutOfRange = errors.New("layout: bit index out of range")

	// ErrNotOnField indicates a reorder press that did not land on a field.
	ErrNotOnField = errors.New("layout: reorder must start on a field")
)
