package regmap

// SimBus is an in-memory bus for tests and simulation. It models deferred
// self-clearing bits via SelfClearScheduler so WriteOnceSelfClear behavior is
// observable end to end.
//
// SimBus is not thread-safe. Only one goroutine should use it at a time.
type SimBus struct {
	words   map[uint64]uint64
	pending []simClear
}

type simClear struct {
	offset    uint64
	mask      uint64
	policy    SelfClearPolicy
	remaining int
}

// NewSimBus returns an empty bus. Unwritten offsets read as 0.
func NewSimBus() *SimBus {
	return &SimBus{words: make(map[uint64]uint64)}
}

// Preload stores a word without counting as a bus operation, for arranging
// test and simulation state.
func (b *SimBus) Preload(byteOffset uint64, word uint64) {
	b.words[byteOffset] = word
}

// Read returns the word at the offset. Armed ClearOnNextRead bits at this
// offset are observed set by this read and cleared immediately after it.
func (b *SimBus) Read(byteOffset uint64) (uint64, error) {
	word := b.words[byteOffset]
	kept := b.pending[:0]
	for _, c := range b.pending {
		if c.policy == ClearOnNextRead && c.offset == byteOffset {
			b.words[c.offset] &^= c.mask
			continue
		}
		kept = append(kept, c)
	}
	b.pending = kept
	b.tick()
	return word, nil
}

// Write stores the word at the offset.
func (b *SimBus) Write(byteOffset uint64, word uint64) error {
	b.words[byteOffset] = word
	b.tick()
	return nil
}

// ScheduleClear arms a deferred clear of the masked bits, implementing
// SelfClearScheduler.
func (b *SimBus) ScheduleClear(byteOffset uint64, mask uint64, policy SelfClearPolicy, cycles int) {
	if cycles < 1 {
		cycles = 1
	}
	b.pending = append(b.pending, simClear{
		offset:    byteOffset,
		mask:      mask,
		policy:    policy,
		remaining: cycles,
	})
}

// tick advances cycle-based clears by one bus operation.
func (b *SimBus) tick() {
	kept := b.pending[:0]
	for _, c := range b.pending {
		if c.policy == ClearAfterCycles {
			c.remaining--
			if c.remaining <= 0 {
				b.words[c.offset] &^= c.mask
				continue
			}
		}
		kept = append(kept, c)
	}
	b.pending = kept
}
