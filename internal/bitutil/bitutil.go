package bitutil

// Bit mask utilities for register words.
//
// Register words are carried as uint64 regardless of the declared register
// width; these helpers build width-limited masks and check value fit.

// MaxWordBits is the widest register word the model supports.
const MaxWordBits = 64

// Mask returns a mask with the low width bits set.
//
// Example:
//
//	Mask(1)  = 0x1
//	Mask(8)  = 0xff
//	Mask(64) = 0xffffffffffffffff
func Mask(width uint) uint64 {
	if width >= MaxWordBits {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}

// RangeMask returns a mask covering the inclusive bit span [msb:lsb],
// in place (not shifted down).
func RangeMask(msb, lsb uint) uint64 {
	return Mask(msb-lsb+1) << lsb
}

// Fits reports whether v is representable in width bits.
func Fits(v uint64, width uint) bool {
	return v&^Mask(width) == 0
}
