package regmap

import (
	"fmt"

	"github.com/bleviet/fpga-lib-sub002/internal/bitutil"
)

// RegisterOptions controls per-register behavior.
type RegisterOptions struct {
	// StrictAccess rejects writes to non-writable fields with
	// ErrAccessViolation. When false (the default), such writes are silently
	// ignored, matching how most hardware swallows writes to read-only bits.
	StrictAccess bool

	// SelfClear selects when WriteOnceSelfClear fields revert.
	// Default: ClearOnNextRead.
	SelfClear SelfClearPolicy

	// SelfClearCycles is the bus-operation count for ClearAfterCycles.
	// Values below 1 are treated as 1.
	SelfClearCycles int
}

// Register is an ordered collection of non-overlapping bit fields bound to a
// word width and a byte offset on a bus.
//
// The register exclusively owns its field list: accessors return copies, and
// layout changes install through SetFields as one atomic replacement. Field
// values are never cached — the bus is authoritative, so every field read
// re-reads the word.
type Register struct {
	name       string
	byteOffset uint64
	widthBits  uint
	fields     []BitField
	byName     map[string]int
	opts       RegisterOptions
}

// NewRegister builds an empty register. Width must be in [1, 64]; 32 is
// typical. A nil opts uses the defaults.
func NewRegister(name string, byteOffset uint64, widthBits uint, opts *RegisterOptions) (*Register, error) {
	if widthBits < 1 || widthBits > bitutil.MaxWordBits {
		return nil, fmt.Errorf("%w: %d bits", ErrInvalidWidth, widthBits)
	}
	r := &Register{
		name:       name,
		byteOffset: byteOffset,
		widthBits:  widthBits,
		byName:     make(map[string]int),
	}
	if opts != nil {
		r.opts = *opts
	}
	if r.opts.SelfClearCycles < 1 {
		r.opts.SelfClearCycles = 1
	}
	return r, nil
}

func (r *Register) Name() string       { return r.name }
func (r *Register) ByteOffset() uint64 { return r.byteOffset }
func (r *Register) WidthBits() uint    { return r.widthBits }

// NumFields returns the number of fields in the register.
func (r *Register) NumFields() int { return len(r.fields) }

// Fields returns a copy of the field list in declaration order.
func (r *Register) Fields() []BitField {
	return append([]BitField(nil), r.fields...)
}

// Field returns a copy of the named field.
func (r *Register) Field(name string) (BitField, error) {
	i, ok := r.byName[name]
	if !ok {
		return BitField{}, fmt.Errorf("%w: %q in register %q", ErrFieldNotFound, name, r.name)
	}
	return r.fields[i], nil
}

// AddField appends a field, rejecting overlaps, duplicate names, and ranges
// that fall outside the register width.
func (r *Register) AddField(f BitField) error {
	if err := r.checkField(f, -1); err != nil {
		return err
	}
	r.fields = append(r.fields, f)
	r.byName[f.Name] = len(r.fields) - 1
	return nil
}

// SetFields atomically replaces the whole field list. The replacement is
// validated in full before installation; on error the register keeps its
// previous layout. This is the install point for layout-editor commits, where
// a reorder can change every field's range at once and per-field application
// would be a lost-update hazard.
func (r *Register) SetFields(fields []BitField) error {
	next := append([]BitField(nil), fields...)
	byName := make(map[string]int, len(next))
	for i, f := range next {
		if f.Range.MSB >= r.widthBits {
			return fmt.Errorf("%w: field %q %s exceeds %d-bit register",
				ErrInvalidRange, f.Name, f.Range, r.widthBits)
		}
		if !bitutil.Fits(f.Reset, f.Range.Width()) {
			return fmt.Errorf("%w: field %q", ErrResetOverflow, f.Name)
		}
		if _, dup := byName[f.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateName, f.Name)
		}
		for _, prev := range next[:i] {
			if f.Range.Overlaps(prev.Range) {
				return fmt.Errorf("%w: %q %s and %q %s",
					ErrOverlap, prev.Name, prev.Range, f.Name, f.Range)
			}
		}
		byName[f.Name] = i
	}
	r.fields = next
	r.byName = byName
	return nil
}

func (r *Register) checkField(f BitField, ignoreIndex int) error {
	if f.Range.MSB >= r.widthBits {
		return fmt.Errorf("%w: field %q %s exceeds %d-bit register",
			ErrInvalidRange, f.Name, f.Range, r.widthBits)
	}
	if i, ok := r.byName[f.Name]; ok && i != ignoreIndex {
		return fmt.Errorf("%w: %q", ErrDuplicateName, f.Name)
	}
	for i, existing := range r.fields {
		if i == ignoreIndex {
			continue
		}
		if f.Range.Overlaps(existing.Range) {
			return fmt.Errorf("%w: %q %s and %q %s",
				ErrOverlap, existing.Name, existing.Range, f.Name, f.Range)
		}
	}
	return nil
}

// ResetWord assembles the register's reset value from all field resets.
// Gap bits are zero.
func (r *Register) ResetWord() uint64 {
	var word uint64
	for _, f := range r.fields {
		word = f.Insert(word, f.Reset)
	}
	return word
}

// Read returns the register word from the bus, masked to the register width.
func (r *Register) Read(bus Bus) (uint64, error) {
	word, err := bus.Read(r.byteOffset)
	if err != nil {
		return 0, err
	}
	return word & bitutil.Mask(r.widthBits), nil
}

// Write stores the word on the bus, masked to the register width.
func (r *Register) Write(bus Bus, word uint64) error {
	return bus.Write(r.byteOffset, word&bitutil.Mask(r.widthBits))
}

// FieldValue re-reads the register word and extracts the named field.
// WriteOnly fields always report 0: reads must not leak write-only state.
func (r *Register) FieldValue(bus Bus, name string) (uint64, error) {
	f, err := r.Field(name)
	if err != nil {
		return 0, err
	}
	word, err := r.Read(bus)
	if err != nil {
		return 0, err
	}
	if !f.Access.Readable() {
		return 0, nil
	}
	return f.Extract(word), nil
}

// ExtractField extracts the named field from a caller-cached word, for hosts
// that batch several field reads over one bus read. WriteOnly fields report 0.
func (r *Register) ExtractField(word uint64, name string) (uint64, error) {
	f, err := r.Field(name)
	if err != nil {
		return 0, err
	}
	if !f.Access.Readable() {
		return 0, nil
	}
	return f.Extract(word), nil
}

// SetFieldValue writes value to the named field with read-modify-write,
// issuing exactly one bus write. The single write is the serialization point
// against concurrent agents updating sibling fields in the same word; it must
// never be split into per-bit or per-byte operations.
func (r *Register) SetFieldValue(bus Bus, name string, value uint64) error {
	f, err := r.Field(name)
	if err != nil {
		return err
	}
	word, err := r.Read(bus)
	if err != nil {
		return err
	}
	next, err := r.applyFieldWrite(word, f, value)
	if err != nil {
		return err
	}
	if err := r.Write(bus, next); err != nil {
		return err
	}
	r.armSelfClear(bus, f, value)
	return nil
}

// BulkWrite folds all named field values into one combined word and issues a
// single bus write, so every change lands atomically with respect to bus
// readers. Unknown names fail before anything is written.
func (r *Register) BulkWrite(bus Bus, values map[string]uint64) error {
	for name := range values {
		if _, ok := r.byName[name]; !ok {
			return fmt.Errorf("%w: %q in register %q", ErrFieldNotFound, name, r.name)
		}
	}
	word, err := r.Read(bus)
	if err != nil {
		return err
	}
	// Apply in declaration order for deterministic strict-mode failures.
	for _, f := range r.fields {
		value, ok := values[f.Name]
		if !ok {
			continue
		}
		word, err = r.applyFieldWrite(word, f, value)
		if err != nil {
			return err
		}
	}
	if err := r.Write(bus, word); err != nil {
		return err
	}
	for _, f := range r.fields {
		if value, ok := values[f.Name]; ok {
			r.armSelfClear(bus, f, value)
		}
	}
	return nil
}

func (r *Register) applyFieldWrite(word uint64, f BitField, value uint64) (uint64, error) {
	if !bitutil.Fits(value, f.Range.Width()) {
		return 0, fmt.Errorf("%w: value 0x%x exceeds field %q %s",
			ErrValueOverflow, value, f.Name, f.Range)
	}
	if !f.Access.Writable() {
		if r.opts.StrictAccess {
			return 0, fmt.Errorf("%w: field %q is %s", ErrAccessViolation, f.Name, f.Access)
		}
		return word, nil
	}
	return f.ApplyWrite(word, value), nil
}

// armSelfClear schedules the deferred clear for WriteOnceSelfClear bits on
// buses that model it. The mask covers only the bits this write set.
func (r *Register) armSelfClear(bus Bus, f BitField, value uint64) {
	if f.Access != WriteOnceSelfClear || value == 0 {
		return
	}
	sched, ok := bus.(SelfClearScheduler)
	if !ok {
		return
	}
	mask := (value << f.Range.LSB) & f.Range.Mask()
	sched.ScheduleClear(r.byteOffset, mask, r.opts.SelfClear, r.opts.SelfClearCycles)
}
