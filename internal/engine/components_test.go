package engine

import (
	"math/rand"
	"testing"

	"innermotion/internal/memory"
	"innermotion/internal/qualia"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		sync, self float64
		want       bool
	}{
		{"both above", 0.35, 0.31, true},
		{"sync below", 0.29, 0.9, false},
		{"self below", 0.9, 0.29, false},
		{"exactly at threshold", 0.3, 0.3, true},
		{"both zero", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.sync, tt.self))
		})
	}
}

func TestPredict(t *testing.T) {
	empty := memory.New(memory.ShortTermCapacity)
	pred, err := Predict(empty, "pain")
	assert.False(t, pred.Valid)
	assert.Equal(t, 1.0, err, "no history is never a correct prediction")

	trace := empty.Append("warm").Append("pain")
	pred, err = Predict(trace, "pain")
	assert.True(t, pred.Valid)
	assert.Equal(t, qualia.Tag("pain"), pred.Tag)
	assert.Equal(t, 0.0, err)

	_, err = Predict(trace, "sweet")
	assert.Equal(t, 1.0, err)
}

func TestAccumulate(t *testing.T) {
	assert.InDelta(t, 0.03, Accumulate(0, 0.01, 3), 1e-12)
	assert.Equal(t, 1.0, Accumulate(0.99, 0.01, 9), "capped at 1")
	assert.Equal(t, 0.5, Accumulate(0.5, 0.01, 0))
	assert.Equal(t, 0.5, Accumulate(0.5, 0, 9))
}

func TestPatternMatches(t *testing.T) {
	mem := memory.New(100)
	for _, tag := range []qualia.Tag{"a", "a", "b", "b", "b"} {
		mem = mem.Append(tag)
	}
	assert.Equal(t, 3, PatternMatches(mem, 10, false))
	assert.Equal(t, 0, PatternMatches(mem, 10, true), "full window required")
	assert.Equal(t, 1, PatternMatches(mem, 2, true))
	assert.Equal(t, 0, PatternMatches(memory.Disabled(), 10, false))
}

func TestNoMemorySelfBounded(t *testing.T) {
	src := rand.New(rand.NewSource(11))
	for i := 0; i < 10000; i++ {
		v := NoMemorySelf(src)
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, NoMemoryNoise)
	}
}

func TestSyncScoreRange(t *testing.T) {
	src := rand.New(rand.NewSource(5))
	for i := 0; i < 5000; i++ {
		hit := SyncScore(0, src)
		require.GreaterOrEqual(t, hit, 0.0)
		require.Less(t, hit, SyncNoise)

		miss := SyncScore(1, src)
		require.GreaterOrEqual(t, miss, SyncErrorWeight)
		require.LessOrEqual(t, miss, 1.0)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, clamped, overflow float64
	}{
		{100, 1, 99},
		{-100, -1, 99},
		{1.5, 1, 0.5},
		{0.5, 0.5, 0},
		{-1, -1, 0},
		{1, 1, 0},
	}
	for _, tt := range tests {
		c, o := Normalize(tt.in)
		assert.InDelta(t, tt.clamped, c, 1e-12, "clamped(%v)", tt.in)
		assert.InDelta(t, tt.overflow, o, 1e-12, "overflow(%v)", tt.in)
	}
}

func TestResolve(t *testing.T) {
	cat, err := qualia.DNACatalog().WithValues(map[qualia.Tag]float64{"pain": 100, "sweet": 5})
	require.NoError(t, err)

	pain := Resolve(cat, nil, "pain")
	assert.True(t, pain.Mixed)
	assert.Equal(t, 1.0, pain.Clamped)
	assert.InDelta(t, 99, pain.Overflow, 1e-12)
	assert.InDelta(t, pain.Overflow*MixedRatio, pain.MixedVal, 1e-12)
	assert.Equal(t, 100.0, pain.Raw)

	sweet := Resolve(cat, nil, "sweet")
	assert.False(t, sweet.Mixed, "only aversive stimuli mix")
	assert.InDelta(t, 4, sweet.Overflow, 1e-12)

	def := Resolve(qualia.DNACatalog(), map[qualia.Tag]float64{"pain": -0.05}, "pain")
	assert.False(t, def.Mixed)
	assert.InDelta(t, -0.95, def.Clamped, 1e-12)
	assert.InDelta(t, -0.05, def.Learned, 1e-12)
}

func TestLearn(t *testing.T) {
	orig := map[qualia.Tag]float64{"pain": -0.02}

	next := Learn(orig, "pain", -0.9, 0.01)
	assert.InDelta(t, -0.03, next["pain"], 1e-12)
	assert.InDelta(t, -0.02, orig["pain"], 1e-12, "input map untouched")

	next = Learn(next, "sweet", 0.7, 0.01)
	assert.InDelta(t, 0.01, next["sweet"], 1e-12)

	next = Learn(next, "warm", 0, 0.01)
	assert.Equal(t, 0.0, next["warm"])
}

func TestLanguageLatch(t *testing.T) {
	assert.False(t, LanguageLatch(false, 0.29))
	assert.True(t, LanguageLatch(false, 0.3))
	assert.True(t, LanguageLatch(true, 0), "latch never reverts")
}

func TestPresetShapes(t *testing.T) {
	src := rand.New(rand.NewSource(1))
	tests := []struct {
		v        Variant
		vocab    int
		capacity int
		rate     float64
		dna      bool
		full     bool
	}{
		{VariantMinimal, 3, 10, ShortMemoryRate, false, false},
		{VariantExpansion, 54, 10, ShortMemoryRate, false, false},
		{VariantDNA, 4, 10, ShortMemoryRate, true, false},
		{VariantMemory, 6, 100, LongMemoryRate, false, false},
		{VariantConsciousness, 12, 100, LongMemoryRate, false, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.v), func(t *testing.T) {
			p, err := Preset(tt.v, src)
			require.NoError(t, err)
			require.NoError(t, p.Validate())
			assert.Equal(t, tt.vocab, p.Catalog.Len())
			assert.Equal(t, tt.capacity, p.MemoryCapacity)
			assert.Equal(t, tt.rate, p.SelfRate)
			assert.Equal(t, tt.dna, p.Capabilities.DNAEnabled)
			assert.Equal(t, tt.full, p.RequireFullWindow)
			assert.True(t, p.Capabilities.MemoryEnabled)
		})
	}

	_, err := Preset("phase6", src)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	v, err := ParseVariant("dna")
	require.NoError(t, err)
	assert.Equal(t, VariantDNA, v)
	_, err = ParseVariant("DNA!")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
