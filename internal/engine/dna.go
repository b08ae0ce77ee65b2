package engine

import (
	"math"

	"innermotion/internal/qualia"
)

// Resolution is the outcome of resolving one stimulus valuation.
type Resolution struct {
	DNA      float64 // inherited component
	Learned  float64 // learned component
	Raw      float64 // DNA + learned, unclamped
	Clamped  float64 // Raw limited to [-1, 1]
	Overflow float64 // how far Raw was beyond the range, 0 if inside
	Mixed    bool    // aversive stimulus with overflow
	MixedVal float64 // Overflow * MixedRatio when Mixed
}

// MixedState records a step where an aversive overflow produced a secondary
// approach-type valuation.
type MixedState struct {
	Step     int        `json:"step"`
	Stimulus qualia.Tag `json:"stimulus"`
	Clamped  float64    `json:"clamped"`
	Mixed    float64    `json:"mixed"`
	Overflow float64    `json:"overflow"`
	Raw      float64    `json:"raw"`
}

// Normalize clamps v to [-1, 1] and returns the clamped value and the
// overflow magnitude.
func Normalize(v float64) (float64, float64) {
	switch {
	case v > 1.0:
		return 1.0, v - 1.0
	case v < -1.0:
		return -1.0, math.Abs(v) - 1.0
	default:
		return v, 0
	}
}

// Resolve combines inherited and learned components for tag. Extreme
// inherited aversive values spill over into a positive mixed valuation.
func Resolve(cat *qualia.Catalog, learned map[qualia.Tag]float64, tag qualia.Tag) Resolution {
	r := Resolution{DNA: cat.Value(tag), Learned: learned[tag]}
	r.Raw = r.DNA + r.Learned
	r.Clamped, r.Overflow = Normalize(r.Raw)
	if cat.IsAversive(tag) && r.Overflow > 0 {
		r.Mixed = true
		r.MixedVal = r.Overflow * MixedRatio
	}
	return r
}

// Learn applies the reinforcement rule learned[tag] += rate*sign(valuation)
// and returns a new map; the input is not modified.
func Learn(learned map[qualia.Tag]float64, tag qualia.Tag, valuation, rate float64) map[qualia.Tag]float64 {
	next := make(map[qualia.Tag]float64, len(learned)+1)
	for k, v := range learned {
		next[k] = v
	}
	switch {
	case valuation > 0:
		next[tag] += rate
	case valuation < 0:
		next[tag] -= rate
	}
	return next
}
