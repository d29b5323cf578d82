package regmap

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FieldDescriptor is the schema layer's loose YAML form of a field. Exactly
// one of Bit (single-bit position) or Bits (the "[msb:lsb]" mini-syntax) must
// be present. Access defaults to "rw"; unknown access strings are rejected
// rather than silently defaulted.
type FieldDescriptor struct {
	Name        string `yaml:"name"`
	Bit         *uint  `yaml:"bit,omitempty"`
	Bits        string `yaml:"bits,omitempty"`
	Access      string `yaml:"access,omitempty"`
	Reset       uint64 `yaml:"reset,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// BitField resolves the descriptor into a validated model value.
func (d FieldDescriptor) BitField() (BitField, error) {
	var r BitRange
	switch {
	case d.Bit != nil && d.Bits != "":
		return BitField{}, fmt.Errorf("%w: field %q has both bit and bits", ErrInvalidRange, d.Name)
	case d.Bit != nil:
		r = SingleBit(*d.Bit)
	case d.Bits != "":
		var err error
		r, err = ParseBitRange(d.Bits)
		if err != nil {
			return BitField{}, fmt.Errorf("field %q: %w", d.Name, err)
		}
	default:
		return BitField{}, fmt.Errorf("%w: field %q has neither bit nor bits", ErrInvalidRange, d.Name)
	}

	access, err := ParseAccessType(d.Access)
	if err != nil {
		return BitField{}, fmt.Errorf("field %q: %w", d.Name, err)
	}
	return NewBitField(d.Name, r, access, d.Reset, d.Description)
}

// DescriptorFor returns the canonical descriptor form of a field: single-bit
// fields re-serialize as "bit: n", wider fields as bits: "[msb:lsb]".
func DescriptorFor(f BitField) FieldDescriptor {
	d := FieldDescriptor{
		Name:        f.Name,
		Access:      f.Access.String(),
		Reset:       f.Reset,
		Description: f.Description,
	}
	if f.Range.Width() == 1 {
		bit := f.Range.LSB
		d.Bit = &bit
	} else {
		d.Bits = f.Range.String()
	}
	return d
}

// RegisterDescriptor is the YAML form of a whole register.
type RegisterDescriptor struct {
	Name   string            `yaml:"name"`
	Offset uint64            `yaml:"offset"`
	Width  uint              `yaml:"width,omitempty"`
	Fields []FieldDescriptor `yaml:"fields"`
}

// RegisterArrayDescriptor is the YAML form of a repeated register template.
type RegisterArrayDescriptor struct {
	Name       string            `yaml:"name"`
	BaseOffset uint64            `yaml:"base_offset"`
	Count      int               `yaml:"count"`
	Stride     uint64            `yaml:"stride"`
	Width      uint              `yaml:"width,omitempty"`
	Fields     []FieldDescriptor `yaml:"fields"`
}

// DefaultWidthBits is assumed when a descriptor omits width.
const DefaultWidthBits = 32

func resolveFields(descs []FieldDescriptor) ([]BitField, error) {
	fields := make([]BitField, 0, len(descs))
	for _, d := range descs {
		f, err := d.BitField()
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// Build resolves the descriptor into a Register with its fields installed.
func (d RegisterDescriptor) Build(opts *RegisterOptions) (*Register, error) {
	width := d.Width
	if width == 0 {
		width = DefaultWidthBits
	}
	r, err := NewRegister(d.Name, d.Offset, width, opts)
	if err != nil {
		return nil, err
	}
	fields, err := resolveFields(d.Fields)
	if err != nil {
		return nil, fmt.Errorf("register %q: %w", d.Name, err)
	}
	if err := r.SetFields(fields); err != nil {
		return nil, fmt.Errorf("register %q: %w", d.Name, err)
	}
	return r, nil
}

// Build resolves the descriptor into a RegisterArray.
func (d RegisterArrayDescriptor) Build(opts *RegisterOptions) (*RegisterArray, error) {
	width := d.Width
	if width == 0 {
		width = DefaultWidthBits
	}
	fields, err := resolveFields(d.Fields)
	if err != nil {
		return nil, fmt.Errorf("array %q: %w", d.Name, err)
	}
	return NewRegisterArray(d.Name, d.BaseOffset, d.Count, d.Stride, width, fields, opts)
}

// decodeStrict unmarshals YAML rejecting unknown keys, so schema typos
// surface at the boundary instead of producing half-empty descriptors.
func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("regmap: decode: %w", err)
	}
	return nil
}

// ParseFields decodes a YAML list of field descriptors into validated fields,
// preserving order.
func ParseFields(data []byte) ([]BitField, error) {
	var descs []FieldDescriptor
	if err := decodeStrict(data, &descs); err != nil {
		return nil, err
	}
	return resolveFields(descs)
}

// ParseRegister decodes a YAML register descriptor and builds the register.
func ParseRegister(data []byte, opts *RegisterOptions) (*Register, error) {
	var d RegisterDescriptor
	if err := decodeStrict(data, &d); err != nil {
		return nil, err
	}
	return d.Build(opts)
}

// ParseRegisterArray decodes a YAML array descriptor and builds the array.
func ParseRegisterArray(data []byte, opts *RegisterOptions) (*RegisterArray, error) {
	var d RegisterArrayDescriptor
	if err := decodeStrict(data, &d); err != nil {
		return nil, err
	}
	return d.Build(opts)
}
