package regmap

import "fmt"

// AccessType is the hardware access policy of a bit field.
type AccessType int

const (
	// ReadWrite fields are overwritten exactly by writes.
	ReadWrite AccessType = iota

	// ReadOnly fields ignore writes (or reject them in strict mode).
	ReadOnly

	// WriteOnly fields accept writes but never read back their value.
	WriteOnly

	// ReadWriteClear1 fields clear a bit when 1 is written to it; writing 0
	// leaves the bit untouched. Reads return the current value.
	ReadWriteClear1

	// WriteOnceSelfClear fields set written 1 bits and then self-clear on a
	// later boundary; the clear trigger is a bus-model policy, see
	// SelfClearPolicy.
	WriteOnceSelfClear
)

// Access strings as they appear in schema field descriptors.
const (
	accessRW   = "rw"
	accessRO   = "ro"
	accessWO   = "wo"
	accessRW1C = "rw1c"
	accessW1SC = "w1sc"
)

// ParseAccessType maps a schema access string to its AccessType.
// The empty string defaults to ReadWrite; anything unrecognized is rejected.
func ParseAccessType(s string) (AccessType, error) {
	switch s {
	case accessRW, "":
		return ReadWrite, nil
	case accessRO:
		return ReadOnly, nil
	case accessWO:
		return WriteOnly, nil
	case accessRW1C:
		return ReadWriteClear1, nil
	case accessW1SC:
		return WriteOnceSelfClear, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAccess, s)
}

// String returns the schema access string.
func (a AccessType) String() string {
	switch a {
	case ReadWrite:
		return accessRW
	case ReadOnly:
		return accessRO
	case WriteOnly:
		return accessWO
	case ReadWriteClear1:
		return accessRW1C
	case WriteOnceSelfClear:
		return accessW1SC
	}
	return fmt.Sprintf("access(%d)", int(a))
}

// Readable reports whether reads of the field return its stored value.
func (a AccessType) Readable() bool {
	return a != WriteOnly
}

// Writable reports whether writes can change the field.
func (a AccessType) Writable() bool {
	return a != ReadOnly
}
