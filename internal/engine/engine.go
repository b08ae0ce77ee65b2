// Package engine implements the stimulus → prediction → memory → self-strength
// → synchronization → consciousness pipeline.
//
// The heart of the package is Engine.Step, a pure transition
//
//	(State, Params, Source) → (State, StepResult)
//
// Callers own iteration. Simulation is the stateful convenience wrapper that
// iterates Step, keeps reporting histories and writes milestone logs.
package engine

import (
	"errors"
)

// Threshold is the fixed bar both self-strength and sync must reach for the
// conscious state. It is not configurable.
const Threshold = 0.3

const (
	// SyncErrorWeight scales prediction error into the sync score.
	SyncErrorWeight = 0.8
	// SyncNoise is the width of the uniform jitter added to the sync score.
	SyncNoise = 0.2
	// NoMemoryNoise bounds the self-strength noise used when memory is absent.
	NoMemoryNoise = 0.2
	// MixedRatio is the share of overflow that becomes the secondary valuation.
	MixedRatio = 0.8
	// LearningRate is the step size of the optional learned adjustment.
	LearningRate = 0.01
	// ShortMemoryRate is the self-strength increment per match for 10-slot memory.
	ShortMemoryRate = 0.01
	// LongMemoryRate is the self-strength increment per match for 100-slot memory.
	LongMemoryRate = 0.001
	// DefaultWindow is how many recent memory entries are scanned for matches.
	DefaultWindow = 10
	// ExtremeDNA marks inherited values worth a warning.
	ExtremeDNA = 10.0
)

// ErrInvalidConfig is returned (wrapped) for any construction-time misconfiguration.
var ErrInvalidConfig = errors.New("invalid simulation config")

// ErrUnknownStimulus is returned when a query names a tag outside the catalog.
var ErrUnknownStimulus = errors.New("unknown stimulus")

// Source is the random stream a simulation consumes. *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// uniform draws from [lo, hi).
func uniform(src Source, lo, hi float64) float64 {
	return lo + (hi-lo)*src.Float64()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
