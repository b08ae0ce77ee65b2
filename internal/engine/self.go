package engine

import (
	"math"

	"innermotion/internal/memory"
)

// PatternMatches counts adjacent repeats in the most recent window of mem.
// With requireFull set, a window shorter than size yields zero.
func PatternMatches(mem memory.Buffer, size int, requireFull bool) int {
	if !mem.Enabled() {
		return 0
	}
	if requireFull && mem.Len() < size {
		return 0
	}
	return memory.AdjacentMatches(mem.Window(size))
}

// Accumulate adds rate*matches to current and caps the result at 1.
// It never lowers the value.
func Accumulate(current, rate float64, matches int) float64 {
	next := current + rate*float64(matches)
	return clamp01(math.Max(next, current))
}

// NoMemorySelf is the self-strength of an agent without memory: fresh noise
// in [0, NoMemoryNoise) each step, always below Threshold.
func NoMemorySelf(src Source) float64 {
	return clamp01(uniform(src, 0, NoMemoryNoise))
}
