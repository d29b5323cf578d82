package regmap

import (
	"errors"
	"testing"
)

func mustField(t *testing.T, name string, msb, lsb uint, access AccessType, reset uint64) BitField {
	t.Helper()
	f, err := NewBitField(name, BitRange{MSB: msb, LSB: lsb}, access, reset, "")
	if err != nil {
		t.Fatalf("NewBitField(%s): %v", name, err)
	}
	return f
}

func Test_NewBitField(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		r       BitRange
		reset   uint64
		wantErr error
	}{
		{"valid", "ctrl", BitRange{MSB: 7, LSB: 0}, 0xff, nil},
		{"reset too wide", "ctrl", BitRange{MSB: 3, LSB: 0}, 0x10, ErrResetOverflow},
		{"single bit", "en", BitRange{MSB: 0, LSB: 0}, 1, nil},
		{"single bit overflow", "en", BitRange{MSB: 0, LSB: 0}, 2, ErrResetOverflow},
		{"empty name", "", BitRange{MSB: 7, LSB: 0}, 0, ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBitField(tt.field, tt.r, ReadWrite, tt.reset, "")
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("NewBitField: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func Test_ExtractInsert(t *testing.T) {
	f := mustField(t, "mid", 15, 8, ReadWrite, 0)

	word := uint64(0xdeadbeef)
	if got := f.Extract(word); got != 0xbe {
		t.Errorf("Extract(%#x) = %#x, want 0xbe", word, got)
	}

	got := f.Insert(word, 0x42)
	if got != 0xdead42ef {
		t.Errorf("Insert = %#x, want 0xdead42ef", got)
	}

	// Value bits beyond the field width are discarded.
	got = f.Insert(0, 0x1ff)
	if got != 0xff00 {
		t.Errorf("Insert(0, 0x1ff) = %#x, want 0xff00", got)
	}
}

func Test_ApplyWrite(t *testing.T) {
	tests := []struct {
		name    string
		access  AccessType
		current uint64 // full word, field at [3:0]
		write   uint64
		want    uint64
	}{
		{"rw overwrite", ReadWrite, 0xf0, 0x5, 0xf5},
		{"ro ignored", ReadOnly, 0xfc, 0x3, 0xfc},
		{"wo overwrite", WriteOnly, 0xf0, 0xa, 0xfa},
		// RW1C: current 0b1100, write 0b0101 -> current &^ write = 0b1000.
		{"rw1c clears written ones", ReadWriteClear1, 0xc, 0x5, 0x8},
		{"rw1c zero write untouched", ReadWriteClear1, 0xc, 0x0, 0xc},
		{"w1sc sets written ones", WriteOnceSelfClear, 0x1, 0x6, 0x7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := mustField(t, "f", 3, 0, tt.access, 0)
			if got := f.ApplyWrite(tt.current, tt.write); got != tt.want {
				t.Errorf("ApplyWrite(%#x, %#x) = %#x, want %#x", tt.current, tt.write, got, tt.want)
			}
		})
	}
}

// Test_ApplyWriteSiblingBits checks that the transition function never
// touches bits outside the field.
func Test_ApplyWriteSiblingBits(t *testing.T) {
	f := mustField(t, "mid", 15, 8, ReadWriteClear1, 0)
	word := uint64(0xaaaa_ffaa)
	got := f.ApplyWrite(word, 0xff)
	if got&^uint64(0xff00) != word&^uint64(0xff00) {
		t.Errorf("ApplyWrite disturbed sibling bits: %#x -> %#x", word, got)
	}
}

func Test_WithRange(t *testing.T) {
	f := mustField(t, "ctrl", 15, 8, ReadWrite, 0xff)

	// Shrinking truncates the reset so the field stays valid.
	g := f.WithRange(BitRange{MSB: 11, LSB: 8})
	if g.Reset != 0xf {
		t.Errorf("shrunk reset = %#x, want 0xf", g.Reset)
	}
	if f.Reset != 0xff {
		t.Errorf("original mutated: reset = %#x", f.Reset)
	}

	// Growing keeps the reset as is.
	h := f.WithRange(BitRange{MSB: 23, LSB: 8})
	if h.Reset != 0xff {
		t.Errorf("grown reset = %#x, want 0xff", h.Reset)
	}
}
