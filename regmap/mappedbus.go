package regmap

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/bleviet/fpga-lib-sub002/internal/bitutil"
)

// MappedBus is a Bus over a backing file or device node. On linux/darwin the
// file is mmap'd read-write and words are accessed in place; elsewhere the
// file is loaded into memory and writes go straight back through the file
// handle. Words are little-endian.
type MappedBus struct {
	f         *os.File
	data      []byte
	wordBytes int
	mapped    bool
}

func validWordBytes(n int) bool {
	return n == 1 || n == 2 || n == 4 || n == 8
}

// WordBytes returns the configured word size in bytes.
func (b *MappedBus) WordBytes() int { return b.wordBytes }

// Size returns the length of the mapped region.
func (b *MappedBus) Size() int { return len(b.data) }

func (b *MappedBus) bounds(byteOffset uint64) error {
	end := byteOffset + uint64(b.wordBytes)
	if end < byteOffset || end > uint64(len(b.data)) {
		return fmt.Errorf("regmap: bus offset 0x%x+%d beyond mapping (%d bytes)",
			byteOffset, b.wordBytes, len(b.data))
	}
	return nil
}

// Read returns the little-endian word at the byte offset.
func (b *MappedBus) Read(byteOffset uint64) (uint64, error) {
	if err := b.bounds(byteOffset); err != nil {
		return 0, err
	}
	var buf [8]byte
	copy(buf[:], b.data[byteOffset:byteOffset+uint64(b.wordBytes)])
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// Write stores the little-endian word at the byte offset as one transaction.
// Bits beyond the configured word size are discarded.
func (b *MappedBus) Write(byteOffset uint64, word uint64) error {
	if err := b.bounds(byteOffset); err != nil {
		return err
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], word&bitutil.Mask(uint(b.wordBytes)*8))
	copy(b.data[byteOffset:byteOffset+uint64(b.wordBytes)], buf[:b.wordBytes])
	if !b.mapped {
		if _, err := b.f.WriteAt(b.data[byteOffset:byteOffset+uint64(b.wordBytes)], int64(byteOffset)); err != nil {
			return fmt.Errorf("regmap: write-back at 0x%x: %w", byteOffset, err)
		}
	}
	return nil
}
