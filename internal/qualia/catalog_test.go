package qualia

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog(t *testing.T) {
	t.Run("keeps insertion order", func(t *testing.T) {
		c, err := NewCatalog([]Entry{{"b", 0.1}, {"a", -0.2}, {"c", 0.3}})
		require.NoError(t, err)
		assert.Equal(t, []Tag{"b", "a", "c"}, c.Tags())
		assert.Equal(t, []Tag{"b", "a"}, c.Prefix(2))
		assert.Equal(t, 3, len(c.Prefix(99)))
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		_, err := NewCatalog([]Entry{{"a", 0}, {"a", 1}})
		assert.Error(t, err)
	})

	t.Run("rejects empty tag", func(t *testing.T) {
		_, err := NewCatalog([]Entry{{"", 0}})
		assert.Error(t, err)
	})

	t.Run("aversive tags outside the catalog are ignored", func(t *testing.T) {
		c, err := NewCatalog([]Entry{{"pain", -0.9}}, "pain", "ghost")
		require.NoError(t, err)
		assert.True(t, c.IsAversive("pain"))
		assert.False(t, c.IsAversive("ghost"))
	})
}

func TestWithValues(t *testing.T) {
	base := DNACatalog()

	c, err := base.WithValues(map[Tag]float64{"pain": 100})
	require.NoError(t, err)
	assert.Equal(t, 100.0, c.Value("pain"))
	assert.Equal(t, -0.9, base.Value("pain"), "base catalog must not change")
	assert.True(t, c.IsAversive("pain"))
	assert.Equal(t, base.Tags(), c.Tags())

	_, err = base.WithValues(map[Tag]float64{"umami": 1})
	assert.Error(t, err)
}

func TestPresetSizes(t *testing.T) {
	tests := []struct {
		name string
		cat  *Catalog
		want int
	}{
		{"minimal", MinimalCatalog(), 3},
		{"dna", DNACatalog(), 4},
		{"memory", MemoryCatalog(), 6},
		{"consciousness", ConsciousnessCatalog(), 12},
		{"expanded", ExpandedCatalog(rand.New(rand.NewSource(1))), 54},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cat.Len())
			assert.True(t, tt.cat.IsAversive("pain"))
		})
	}
}

func TestExpandedCatalogRanges(t *testing.T) {
	c := ExpandedCatalog(rand.New(rand.NewSource(7)))

	for _, tag := range []Tag{"pain", "rotten", "harsh", "bitter"} {
		v := c.Value(tag)
		assert.GreaterOrEqual(t, v, -1.0, tag)
		assert.Less(t, v, -0.5, tag)
	}
	for _, tag := range []Tag{"sweet", "floral", "melodic", "fresh"} {
		v := c.Value(tag)
		assert.GreaterOrEqual(t, v, 0.5, tag)
		assert.Less(t, v, 1.0, tag)
	}
	for _, tag := range []Tag{"warm", "red", "sharp_visual", "loud"} {
		v := c.Value(tag)
		assert.GreaterOrEqual(t, v, -0.5, tag)
		assert.Less(t, v, 0.5, tag)
	}

	again := ExpandedCatalog(rand.New(rand.NewSource(7)))
	for _, tag := range c.Tags() {
		assert.Equal(t, c.Value(tag), again.Value(tag), "same seed, same valuations")
	}
}

func TestClassifyFeeling(t *testing.T) {
	assert.Equal(t, FeelingPainful, Classify(-0.9))
	assert.Equal(t, FeelingNeutral, Classify(-0.5))
	assert.Equal(t, FeelingNeutral, Classify(0.3))
	assert.Equal(t, FeelingNeutral, Classify(0.5))
	assert.Equal(t, FeelingPleasant, Classify(0.7))
	assert.Equal(t, "I feel sweet - it's pleasant", Describe("sweet", 0.7))
}
