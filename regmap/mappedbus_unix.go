//go:build linux || darwin

package regmap

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// OpenMapped mmaps the file RW so register words can be mutated in place.
// wordBytes must be 1, 2, 4 or 8.
func OpenMapped(path string, wordBytes int) (*MappedBus, error) {
	if !validWordBytes(wordBytes) {
		return nil, fmt.Errorf("regmap: invalid word size %d", wordBytes)
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	sz := st.Size()
	if sz == 0 {
		_ = f.Close()
		return nil, fmt.Errorf("regmap: empty backing file: %s", path)
	}

	data, err := unix.Mmap(
		int(f.Fd()),
		0,
		int(sz),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED,
	)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("regmap: mmap failed: %w", err)
	}

	return &MappedBus{
		f:         f,
		data:      data,
		wordBytes: wordBytes,
		mapped:    true,
	}, nil
}

// Sync flushes the mapping to the backing file.
func (b *MappedBus) Sync() error {
	return unix.Msync(b.data, unix.MS_SYNC)
}

// Close unmaps the region and closes the file.
func (b *MappedBus) Close() error {
	var err error
	if b.data != nil {
		err = unix.Munmap(b.data)
		b.data = nil
	}
	if b.f != nil {
		if cerr := b.f.Close(); err == nil {
			err = cerr
		}
		b.f = nil
	}
	return err
}
