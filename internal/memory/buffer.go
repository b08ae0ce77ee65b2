// Package memory implements the bounded, ordered stimulus history.
//
// A Buffer is a value: Append returns a new Buffer and never mutates the
// receiver, so engine states that share a Buffer stay independent.
package memory

import (
	"sync"

	"innermotion/internal/qualia"
)

const (
	// ShortTermCapacity is the capacity of the short-term trace.
	ShortTermCapacity = 10
	// LongTermCapacity is the capacity used by the long-memory variants.
	LongTermCapacity = 100
)

// backing is the append-only array shared by successive Buffers. A Buffer
// whose view ends at the end of data may extend it in place; any other
// Buffer copies. Written elements are never overwritten.
type backing struct {
	mu   sync.Mutex
	data []qualia.Tag
}

// Buffer is a FIFO of stimulus tags with a fixed capacity, or a disabled store.
// It views data[start : start+n] of a shared backing array.
type Buffer struct {
	store    *backing
	start    int
	n        int
	capacity int
	enabled  bool
}

// New returns an empty enabled buffer. Capacity must be positive; callers
// validate it before construction.
func New(capacity int) Buffer {
	return Buffer{capacity: capacity, enabled: true}
}

// Disabled returns a store that is structurally absent. It is not the same
// thing as an empty buffer: Enabled reports false and appends are dropped.
func Disabled() Buffer {
	return Buffer{}
}

// Enabled reports whether the store exists.
func (b Buffer) Enabled() bool { return b.enabled }

// Cap returns the configured capacity (0 when disabled).
func (b Buffer) Cap() int { return b.capacity }

// Len returns the number of stored tags.
func (b Buffer) Len() int { return b.n }

// items returns the buffer's view. The slice shares the backing array and
// must not be written.
func (b Buffer) items() []qualia.Tag {
	if b.store == nil {
		return nil
	}
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	return b.store.data[b.start : b.start+b.n]
}

// Append pushes tag to the back, evicting the oldest entry when full.
// Extending the newest Buffer of a backing array is O(1); the array is
// compacted into a fresh one of twice the capacity when it fills, so the
// cost is amortized O(1). Appending to an older Buffer copies at most
// capacity entries. The receiver is never changed.
func (b Buffer) Append(tag qualia.Tag) Buffer {
	if !b.enabled {
		return b
	}
	start, n := b.start, b.n
	if n >= b.capacity {
		start += n - b.capacity + 1
		n = b.capacity - 1
	}

	if r := b.store; r != nil {
		r.mu.Lock()
		if b.start+b.n == len(r.data) && len(r.data) < cap(r.data) {
			r.data = append(r.data, tag)
			r.mu.Unlock()
			return Buffer{store: r, start: start, n: n + 1, capacity: b.capacity, enabled: true}
		}
		r.mu.Unlock()
	}

	data := make([]qualia.Tag, 0, 2*b.capacity)
	old := b.items()
	data = append(data, old[len(old)-n:]...)
	data = append(data, tag)
	return Buffer{store: &backing{data: data}, n: n + 1, capacity: b.capacity, enabled: true}
}

// Window returns a copy of the last k entries, or fewer if history is short.
// A disabled store returns nil.
func (b Buffer) Window(k int) []qualia.Tag {
	if !b.enabled || k <= 0 {
		return nil
	}
	items := b.items()
	if k > len(items) {
		k = len(items)
	}
	out := make([]qualia.Tag, k)
	copy(out, items[len(items)-k:])
	return out
}

// Last returns the most recent tag.
func (b Buffer) Last() (qualia.Tag, bool) {
	items := b.items()
	if len(items) == 0 {
		return "", false
	}
	return items[len(items)-1], true
}

// AdjacentMatches counts positions i where window[i] == window[i+1].
func AdjacentMatches(window []qualia.Tag) int {
	matches := 0
	for i := 0; i+1 < len(window); i++ {
		if window[i] == window[i+1] {
			matches++
		}
	}
	return matches
}
