package memory

import (
	"fmt"
	"testing"

	"innermotion/internal/qualia"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferCapacityInvariant(t *testing.T) {
	b := New(ShortTermCapacity)
	for i := 0; i < 1000; i++ {
		b = b.Append(qualia.Tag(fmt.Sprintf("s%d", i)))
		require.LessOrEqual(t, b.Len(), ShortTermCapacity)
	}
	w := b.Window(100)
	assert.Len(t, w, 10)
	assert.Equal(t, qualia.Tag("s990"), w[0])
	assert.Equal(t, qualia.Tag("s999"), w[9])
}

func TestBufferAppendDoesNotMutateReceiver(t *testing.T) {
	a := New(3).Append("x").Append("y")
	b := a.Append("z")
	c := a.Append("w")

	assert.Equal(t, []qualia.Tag{"x", "y"}, a.Window(10))
	assert.Equal(t, []qualia.Tag{"x", "y", "z"}, b.Window(10))
	assert.Equal(t, []qualia.Tag{"x", "y", "w"}, c.Window(10))

	d := b.Append("q")
	assert.Equal(t, []qualia.Tag{"y", "z", "q"}, d.Window(10))
	assert.Equal(t, []qualia.Tag{"x", "y", "z"}, b.Window(10))
}

func TestBufferAppendReusesBacking(t *testing.T) {
	const capacity = 100
	b := New(capacity)
	var prev *backing
	reallocs := 0
	for i := 0; i < 10000; i++ {
		b = b.Append(qualia.Tag(fmt.Sprintf("s%d", i)))
		if b.store != prev {
			reallocs++
			prev = b.store
		}
		require.LessOrEqual(t, len(b.store.data), 2*capacity)
	}
	// A fresh array holds capacity+1 appends past the retained window.
	assert.LessOrEqual(t, reallocs, 10000/(capacity+1)+1)
	assert.Equal(t, qualia.Tag("s9900"), b.Window(capacity)[0])
	last, _ := b.Last()
	assert.Equal(t, qualia.Tag("s9999"), last)
}

func TestBufferForksStayIndependent(t *testing.T) {
	base := New(4)
	for _, tag := range []qualia.Tag{"a", "b", "c"} {
		base = base.Append(tag)
	}
	left, right := base, base
	for i := 0; i < 50; i++ {
		left = left.Append(qualia.Tag(fmt.Sprintf("l%d", i)))
		right = right.Append(qualia.Tag(fmt.Sprintf("r%d", i)))
	}

	assert.Equal(t, []qualia.Tag{"a", "b", "c"}, base.Window(10))
	assert.Equal(t, []qualia.Tag{"l46", "l47", "l48", "l49"}, left.Window(10))
	assert.Equal(t, []qualia.Tag{"r46", "r47", "r48", "r49"}, right.Window(10))
	assert.Equal(t, []qualia.Tag{"a", "b", "c", "z"}, base.Append("z").Window(10))
}

func TestBufferWindow(t *testing.T) {
	b := New(5).Append("a").Append("b").Append("c")

	assert.Equal(t, []qualia.Tag{"b", "c"}, b.Window(2))
	assert.Equal(t, []qualia.Tag{"a", "b", "c"}, b.Window(10))
	assert.Nil(t, b.Window(0))

	w := b.Window(3)
	w[0] = "mutated"
	assert.Equal(t, qualia.Tag("a"), b.Window(3)[0], "window must be a copy")

	last, ok := b.Last()
	assert.True(t, ok)
	assert.Equal(t, qualia.Tag("c"), last)

	_, ok = New(5).Last()
	assert.False(t, ok)
}

func TestDisabledBuffer(t *testing.T) {
	b := Disabled()
	assert.False(t, b.Enabled())

	b = b.Append("pain").Append("pain")
	assert.Equal(t, 0, b.Len())
	assert.Nil(t, b.Window(10))
	assert.False(t, b.Enabled(), "appending must not enable a disabled store")

	empty := New(10)
	assert.True(t, empty.Enabled(), "an empty buffer is not a disabled one")
}

func TestAdjacentMatches(t *testing.T) {
	tests := []struct {
		name   string
		window []qualia.Tag
		want   int
	}{
		{"empty", nil, 0},
		{"single", []qualia.Tag{"a"}, 0},
		{"no repeats", []qualia.Tag{"a", "b", "a", "b"}, 0},
		{"all same", []qualia.Tag{"a", "a", "a", "a"}, 3},
		{"mixed", []qualia.Tag{"a", "a", "b", "c", "c", "a"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AdjacentMatches(tt.window))
		})
	}
}
