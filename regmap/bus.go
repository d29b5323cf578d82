package regmap

// Bus is the byte-addressable word transport a Register reads and writes
// through. Implementations return their own errors; this package propagates
// bus errors to the caller untouched and never retries.
type Bus interface {
	// Read returns the word at the given byte offset.
	Read(byteOffset uint64) (uint64, error)

	// Write stores the word at the given byte offset as one bus transaction.
	Write(byteOffset uint64, word uint64) error
}

// SelfClearPolicy selects when a WriteOnceSelfClear field reverts to zero.
// The hardware material leaves the exact boundary open, so the model makes it
// a configurable bus-side policy.
type SelfClearPolicy int

const (
	// ClearOnNextRead clears the armed bits after one read of the word: the
	// bits read back as set exactly once, then revert.
	ClearOnNextRead SelfClearPolicy = iota

	// ClearAfterCycles clears the armed bits once the configured number of
	// subsequent bus operations has elapsed.
	ClearAfterCycles
)

// SelfClearScheduler is implemented by buses that can model deferred
// self-clearing bits. Register arms a clear here after writing a
// WriteOnceSelfClear field; buses without this capability simply leave the
// bits set.
type SelfClearScheduler interface {
	ScheduleClear(byteOffset uint64, mask uint64, policy SelfClearPolicy, cycles int)
}
