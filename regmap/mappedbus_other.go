//go:build !linux && !darwin

package regmap

import (
	"fmt"
	"io"
	"os"
)

// OpenMapped loads the file into memory on non-unix platforms. Writes update
// the buffer and are written back through the file handle immediately.
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
		f.Close()
		return nil, err
	}
	sz := st.Size()
	if sz == 0 {
		f.Close()
		return nil, fmt.Errorf("regmap: empty backing file: %s", path)
	}

	buf := make([]byte, sz)
	if _, err := io.ReadFull(f, buf); err != nil {
		f.Close()
		return nil, err
	}

	return &MappedBus{
		f:         f,
		data:      buf,
		wordBytes: wordBytes,
	}, nil
}

// Sync flushes buffered writes to stable storage.
func (b *MappedBus) Sync() error {
	return b.f.Sync()
}

// Close releases the buffer and closes the file.
func (b *MappedBus) Close() error {
	var err error
	if b.f != nil {
		err = b.f.Close()
		b.f = nil
	}
	b.data = nil
	return err
}
