package engine

import (
	"innermotion/internal/memory"
	"innermotion/internal/qualia"
)

// Prediction is the one-step-ahead guess made before a stimulus arrives.
type Prediction struct {
	Tag qualia.Tag
	// Valid is false when there was no history to predict from.
	Valid bool
}

// Predict guesses that the most recent stimulus in trace repeats, and scores
// the realized stimulus against it: 0 when right, 1 when wrong or when there
// was nothing to predict from. trace must be the pre-append trace.
func Predict(trace memory.Buffer, actual qualia.Tag) (Prediction, float64) {
	last, ok := trace.Last()
	if !ok {
		return Prediction{}, 1.0
	}
	if last == actual {
		return Prediction{Tag: last, Valid: true}, 0.0
	}
	return Prediction{Tag: last, Valid: true}, 1.0
}
