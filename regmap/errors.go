package regmap

import "errors"

var (
	// ErrInvalidRange indicates a malformed or inverted bit range, or a range
	// that does not fit inside its register's width.
	ErrInvalidRange = errors.New("regmap: invalid bit range")

	// ErrResetOverflow indicates a reset value wider than its field.
	ErrResetOverflow = errors.New("regmap: reset value does not fit in field")

	// ErrValueOverflow indicates a written value wider than its field.
	ErrValueOverflow = errors.New("regmap: value does not fit in field")

	// ErrOverlap indicates two fields claim the same bit.
	ErrOverlap = errors.New("regmap: field ranges overlap")

	// ErrDuplicateName indicates a field name is already taken in the register.
	ErrDuplicateName = errors.New("regmap: duplicate field name")

	// ErrFieldNotFound indicates the named field does not exist.
	ErrFieldNotFound = errors.New("regmap: field not found")

	// ErrIndexOutOfBounds indicates a register array index outside [0, count).
	ErrIndexOutOfBounds = errors.New("regmap: array index out of bounds")

	// ErrAccessViolation indicates a write to a non-writable field in strict mode.
	ErrAccessViolation = errors.New("regmap: access violation")

	// ErrUnknownAccess indicates an unrecognized access string at the schema boundary.
	ErrUnknownAccess = errors.New("regmap: unknown access type")

	// ErrInvalidStride indicates an array stride smaller than the register word.
	ErrInvalidStride = errors.New("regmap: stride smaller than register width")

	// ErrInvalidWidth indicates a register width outside [1, 64].
	ErrInvalidWidth = errors.New("regmap: invalid register width")
)
