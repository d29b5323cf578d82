package regmap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bleviet/fpga-lib-sub002/internal/bitutil"
)

// BitRange is an inclusive [msb:lsb] bit span inside a register word.
// The zero value is the single bit [0].
type BitRange struct {
	MSB uint
	LSB uint
}

// NewBitRange builds a range, rejecting inverted spans.
func NewBitRange(msb, lsb uint) (BitRange, error) {
	if msb < lsb {
		return BitRange{}, fmt.Errorf("%w: [%d:%d] is inverted", ErrInvalidRange, msb, lsb)
	}
	return BitRange{MSB: msb, LSB: lsb}, nil
}

// SingleBit returns the one-bit range [n].
func SingleBit(n uint) BitRange {
	return BitRange{MSB: n, LSB: n}
}

// ParseBitRange parses the canonical forms "[msb:lsb]" and "[n]".
// Parse and String round-trip losslessly.
func ParseBitRange(s string) (BitRange, error) {
	inner, ok := strings.CutPrefix(s, "[")
	if !ok {
		return BitRange{}, fmt.Errorf("%w: %q missing '['", ErrInvalidRange, s)
	}
	inner, ok = strings.CutSuffix(inner, "]")
	if !ok {
		return BitRange{}, fmt.Errorf("%w: %q missing ']'", ErrInvalidRange, s)
	}

	msbStr, lsbStr, hasColon := strings.Cut(inner, ":")
	msb, err := strconv.ParseUint(strings.TrimSpace(msbStr), 10, 32)
	if err != nil {
		return BitRange{}, fmt.Errorf("%w: %q: bad msb: %v", ErrInvalidRange, s, err)
	}
	if !hasColon {
		return SingleBit(uint(msb)), nil
	}
	lsb, err := strconv.ParseUint(strings.TrimSpace(lsbStr), 10, 32)
	if err != nil {
		return BitRange{}, fmt.Errorf("%w: %q: bad lsb: %v", ErrInvalidRange, s, err)
	}
	return NewBitRange(uint(msb), uint(lsb))
}

// String renders the canonical text form: "[msb:lsb]", or "[n]" for one bit.
func (r BitRange) String() string {
	if r.MSB == r.LSB {
		return fmt.Sprintf("[%d]", r.MSB)
	}
	return fmt.Sprintf("[%d:%d]", r.MSB, r.LSB)
}

// Width returns the number of bits in the range, always >= 1.
func (r BitRange) Width() uint {
	return r.MSB - r.LSB + 1
}

// Mask returns the range's bits set in place (not shifted down).
func (r BitRange) Mask() uint64 {
	return bitutil.RangeMask(r.MSB, r.LSB)
}

// Contains reports whether bit lies inside the range.
func (r BitRange) Contains(bit uint) bool {
	return bit >= r.LSB && bit <= r.MSB
}

// Overlaps reports whether the two ranges share any bit.
func (r BitRange) Overlaps(o BitRange) bool {
	return r.LSB <= o.MSB && o.LSB <= r.MSB
}
