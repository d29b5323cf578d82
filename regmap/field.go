package regmap

import (
	"fmt"

	"github.com/bleviet/fpga-lib-sub002/internal/bitutil"
)

// BitField is a named, typed span of bits inside a register word.
//
// BitField is a pure value: construct it with NewBitField and never mutate it
// in place. Edits produce a replacement field, and Register hands out copies,
// not references.
type BitField struct {
	Name        string
	Range       BitRange
	Access      AccessType
	Reset       uint64
	Description string
}

// NewBitField validates and builds a field. The reset value must fit in the
// field's width. Width-context checks (msb < register width) happen when the
// field is added to a Register.
func NewBitField(name string, r BitRange, access AccessType, reset uint64, description string) (BitField, error) {
	if name == "" {
		return BitField{}, fmt.Errorf("%w: empty field name", ErrInvalidRange)
	}
	if !bitutil.Fits(reset, r.Width()) {
		return BitField{}, fmt.Errorf("%w: field %q: reset 0x%x exceeds %d bits",
			ErrResetOverflow, name, reset, r.Width())
	}
	return BitField{
		Name:        name,
		Range:       r,
		Access:      access,
		Reset:       reset,
		Description: description,
	}, nil
}

// WithRange returns a copy of the field spanning a different range. The reset
// value is re-checked against the new width and truncated if the field shrank
// below it; interactive resizes must never produce an invalid field.
func (f BitField) WithRange(r BitRange) BitField {
	f.Range = r
	f.Reset &= bitutil.Mask(r.Width())
	return f
}

// Extract returns the field's value from a register word.
func (f BitField) Extract(word uint64) uint64 {
	return (word >> f.Range.LSB) & bitutil.Mask(f.Range.Width())
}

// Insert returns the word with the field's bits replaced by value.
// Bits of value beyond the field width are discarded.
func (f BitField) Insert(word, value uint64) uint64 {
	mask := f.Range.Mask()
	return (word &^ mask) | ((value << f.Range.LSB) & mask)
}

// ApplyWrite returns the new register word after a bus write of value to this
// field, branching on the field's access type:
//
//   - ReadWrite: exact overwrite of the field's bits
//   - ReadWriteClear1: current &^ written — 1 bits clear, 0 bits are untouched
//   - WriteOnceSelfClear: written 1 bits are set (the deferred clear is the
//     bus model's job, see SelfClearPolicy)
//   - ReadOnly: no-op; strict-mode rejection happens in Register before the
//     transition function is consulted
//   - WriteOnly: exact overwrite, same as ReadWrite (the read side is where
//     WriteOnly differs)
func (f BitField) ApplyWrite(current, value uint64) uint64 {
	cur := f.Extract(current)
	switch f.Access {
	case ReadOnly:
		return current
	case ReadWriteClear1:
		return f.Insert(current, cur&^value)
	case WriteOnceSelfClear:
		return f.Insert(current, cur|value)
	default:
		return f.Insert(current, value)
	}
}

func (f BitField) String() string {
	return fmt.Sprintf("%s%s %s", f.Name, f.Range, f.Access)
}
