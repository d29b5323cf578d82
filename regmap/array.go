package regmap

import "fmt"

// RegisterArray computes per-index registers for a repeated register
// template, block-RAM style. Nothing is materialized up front: At builds a
// fresh Register on demand from a deep copy of the template, so arrays with
// thousands of entries cost nothing until an index is touched, and concurrent
// At calls are safe — each caller gets an independent value.
type RegisterArray struct {
	name       string
	baseOffset uint64
	count      int
	stride     uint64
	widthBits  uint
	template   []BitField
	opts       RegisterOptions
}

// NewRegisterArray validates the geometry and the field template.
// The stride must cover at least one register word (widthBits/8 bytes,
// rounded up) and count must be >= 1.
func NewRegisterArray(name string, baseOffset uint64, count int, stride uint64, widthBits uint, template []BitField, opts *RegisterOptions) (*RegisterArray, error) {
	if count < 1 {
		return nil, fmt.Errorf("regmap: array %q: count %d < 1", name, count)
	}
	wordBytes := uint64((widthBits + 7) / 8)
	if stride < wordBytes {
		return nil, fmt.Errorf("%w: array %q: stride %d < %d", ErrInvalidStride, name, stride, wordBytes)
	}

	// Validate the template once so At can't fail structurally.
	probe, err := NewRegister(name, baseOffset, widthBits, opts)
	if err != nil {
		return nil, err
	}
	if err := probe.SetFields(template); err != nil {
		return nil, err
	}

	a := &RegisterArray{
		name:       name,
		baseOffset: baseOffset,
		count:      count,
		stride:     stride,
		widthBits:  widthBits,
		template:   append([]BitField(nil), template...),
	}
	if opts != nil {
		a.opts = *opts
	}
	return a, nil
}

// Len returns the number of entries in the array.
func (a *RegisterArray) Len() int { return a.count }

// Stride returns the byte distance between successive entries.
func (a *RegisterArray) Stride() uint64 { return a.stride }

// At returns a fresh Register for the given index at
// baseOffset + index*stride. The register carries its own copy of the field
// template; mutating one index's layout never aliases another's.
func (a *RegisterArray) At(index int) (*Register, error) {
	if index < 0 || index >= a.count {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfBounds, index, a.count)
	}
	offset := a.baseOffset + uint64(index)*a.stride
	r, err := NewRegister(fmt.Sprintf("%s[%d]", a.name, index), offset, a.widthBits, &a.opts)
	if err != nil {
		return nil, err
	}
	if err := r.SetFields(a.template); err != nil {
		return nil, err
	}
	return r, nil
}
