package engine

import (
	"innermotion/internal/memory"
	"innermotion/internal/qualia"
)

// State is everything that carries over from one step to the next.
// It is a plain value; Step never mutates the State it is given.
type State struct {
	Step int

	// Trace is the short-term stimulus trace used for prediction. It exists
	// even when long-term memory is disabled.
	Trace memory.Buffer
	// Memory is the long-lived store the self-strength accumulator reads.
	Memory memory.Buffer

	SelfStrength float64
	SyncScore    float64
	Conscious    bool

	// EmergedAt is the first conscious step, 0 while it has not happened.
	EmergedAt      int
	ConsciousSteps int

	LanguageAcquired   bool
	LanguageAcquiredAt int

	// Learned is copy-on-write: Step replaces the map, never writes into it.
	Learned map[qualia.Tag]float64
}

// StepResult is the per-step record handed back to the caller.
type StepResult struct {
	Step     int        `json:"step"`
	Stimulus qualia.Tag `json:"stimulus"`

	DNAValue     float64 `json:"dna_value"`
	RawValuation float64 `json:"raw_valuation"`
	Valuation    float64 `json:"valuation"`

	Prediction      qualia.Tag `json:"prediction,omitempty"`
	PredictionError float64    `json:"prediction_error"`
	PatternMatches  int        `json:"pattern_matches"`

	SelfStrength float64 `json:"self_strength"`
	SyncScore    float64 `json:"sync_score"`
	Conscious    bool    `json:"conscious"`
	// Emerged is true only on the first conscious step of the run.
	Emerged bool `json:"emerged,omitempty"`

	LanguageAcquired bool `json:"language_acquired"`
	// LanguageJustAcquired is true only on the step the latch opened.
	LanguageJustAcquired bool `json:"language_just_acquired,omitempty"`

	Overflow float64     `json:"overflow,omitempty"`
	Mixed    *MixedState `json:"mixed,omitempty"`
}
