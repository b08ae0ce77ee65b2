package engine

import (
	"context"
	"fmt"
	"math"

	"innermotion/internal/logging"
	"innermotion/internal/qualia"

	"github.com/google/uuid"
)

// mixedAuditLimit caps how many mixed states are written to the audit log at
// info level; later ones go to debug.
const mixedAuditLimit = 10

// History is the per-step trace kept for reporting.
type History struct {
	SelfStrength []float64
	Sync         []float64
	Conscious    []bool
}

// Simulation iterates Engine.Step over one private random source.
// A Simulation must not be stepped from more than one goroutine.
type Simulation struct {
	id     string
	engine *Engine
	src    Source
	state  State

	history History
	mixed   []MixedState

	// memoryFull and saturated latch the first time each is logged.
	memoryFull bool
	saturated  bool

	log   *logging.Logger
	audit *logging.AuditLogger
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithID sets the run identifier used in logs (a random UUID by default).
func WithID(id string) Option {
	return func(s *Simulation) {
		if id != "" {
			s.id = id
		}
	}
}

// NewSimulation validates p and returns a simulation positioned before step 1.
func NewSimulation(p Params, src Source, opts ...Option) (*Simulation, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}
	eng, err := New(p)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		id:     uuid.NewString(),
		engine: eng,
		src:    src,
		state:  eng.Initial(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logging.Get(logging.CategoryEngine).With("run", s.id)
	s.audit = logging.Audit(s.id)

	if eng.params.Capabilities.DNAEnabled {
		for _, tag := range eng.catalog.Tags() {
			v := eng.catalog.Value(tag)
			if eng.catalog.IsAversive(tag) && math.Abs(v) > ExtremeDNA {
				logging.DNAWarn("extreme DNA value: %s = %g, expecting mixed states", tag, v)
				s.audit.ExtremeDNA(string(tag), v)
			}
		}
	}
	return s, nil
}

// ID returns the run identifier.
func (s *Simulation) ID() string { return s.id }

// Engine returns the underlying step engine.
func (s *Simulation) Engine() *Engine { return s.engine }

// State returns a copy of the current state.
func (s *Simulation) State() State { return s.state }

// Step advances the simulation by one step.
func (s *Simulation) Step() StepResult {
	next, res := s.engine.Step(s.state, s.src)
	s.state = next
	s.record(res)
	return res
}

func (s *Simulation) record(res StepResult) {
	s.history.SelfStrength = append(s.history.SelfStrength, res.SelfStrength)
	s.history.Sync = append(s.history.Sync, res.SyncScore)
	s.history.Conscious = append(s.history.Conscious, res.Conscious)

	if res.Emerged {
		s.log.Info("consciousness emerged at step %d (self=%.4f sync=%.4f)", res.Step, res.SelfStrength, res.SyncScore)
		s.audit.Emergence(res.Step, res.SelfStrength, res.SyncScore)
	}
	if mem := s.state.Memory; !s.memoryFull && mem.Enabled() && mem.Len() == mem.Cap() {
		s.memoryFull = true
		logging.MemoryDebug("run %s: memory full at step %d (capacity %d), evicting oldest from now on", s.id, res.Step, mem.Cap())
	}
	if !s.saturated && res.SelfStrength >= 1 {
		s.saturated = true
		logging.MemoryDebug("run %s: self-strength saturated at step %d", s.id, res.Step)
	}
	if res.LanguageJustAcquired {
		logging.Language("language acquired at step %d (self=%.3f)", res.Step, res.SelfStrength)
		s.audit.LanguageAcquired(res.Step, res.SelfStrength)
	}
	if res.Mixed != nil {
		s.mixed = append(s.mixed, *res.Mixed)
		m := res.Mixed
		if len(s.mixed) <= mixedAuditLimit {
			s.audit.MixedState(m.Step, string(m.Stimulus), m.Clamped, m.Mixed, m.Raw)
		} else {
			logging.DNADebug("mixed state #%d at step %d", len(s.mixed), m.Step)
		}
	}
}

// Run executes steps sequential steps and returns their records. steps must
// be positive. Cancelling ctx stops the run between steps; the records
// produced so far are returned with ctx.Err().
func (s *Simulation) Run(ctx context.Context, steps int) ([]StepResult, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("%w: step count must be positive, got %d", ErrInvalidConfig, steps)
	}
	p := s.engine.params
	s.audit.RunStart(string(p.Variant), string(p.Environment), steps)
	s.log.Debug("running %d steps (memory=%v dna=%v)", steps, p.Capabilities.MemoryEnabled, p.Capabilities.DNAEnabled)

	results := make([]StepResult, 0, steps)
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			s.audit.RunInterrupted(s.state.Step, err)
			return results, err
		}
		results = append(results, s.Step())
	}

	s.audit.RunEnd(s.state.Step, s.state.ConsciousSteps, s.state.SelfStrength)
	return results, nil
}

// SelfStrength returns the current self-strength.
func (s *Simulation) SelfStrength() float64 { return s.state.SelfStrength }

// Steps returns how many steps have executed.
func (s *Simulation) Steps() int { return s.state.Step }

// ConsciousSteps returns how many executed steps were conscious.
func (s *Simulation) ConsciousSteps() int { return s.state.ConsciousSteps }

// ConsciousnessRate returns ConsciousSteps/Steps, or 0 before the first step.
func (s *Simulation) ConsciousnessRate() float64 {
	if s.state.Step == 0 {
		return 0
	}
	return float64(s.state.ConsciousSteps) / float64(s.state.Step)
}

// EmergedAt returns the first conscious step.
func (s *Simulation) EmergedAt() (int, bool) {
	return s.state.EmergedAt, s.state.EmergedAt > 0
}

// SelfStrengthAtEmergence returns self-strength on the first conscious step.
func (s *Simulation) SelfStrengthAtEmergence() (float64, bool) {
	at, ok := s.EmergedAt()
	if !ok {
		return 0, false
	}
	return s.history.SelfStrength[at-1], true
}

// LanguageAcquired reports whether the language latch has opened.
func (s *Simulation) LanguageAcquired() bool { return s.state.LanguageAcquired }

// LanguageAcquiredAt returns the step the language latch opened.
func (s *Simulation) LanguageAcquiredAt() (int, bool) {
	return s.state.LanguageAcquiredAt, s.state.LanguageAcquired
}

// MixedStates returns a copy of the mixed-state events seen so far.
func (s *Simulation) MixedStates() []MixedState {
	out := make([]MixedState, len(s.mixed))
	copy(out, s.mixed)
	return out
}

// History returns a copy of the per-step histories.
func (s *Simulation) History() History {
	h := History{
		SelfStrength: make([]float64, len(s.history.SelfStrength)),
		Sync:         make([]float64, len(s.history.Sync)),
		Conscious:    make([]bool, len(s.history.Conscious)),
	}
	copy(h.SelfStrength, s.history.SelfStrength)
	copy(h.Sync, s.history.Sync)
	copy(h.Conscious, s.history.Conscious)
	return h
}

// MeanConsciousSync averages the sync score over conscious steps.
func (s *Simulation) MeanConsciousSync() float64 {
	var sum float64
	n := 0
	for i, c := range s.history.Conscious {
		if c {
			sum += s.history.Sync[i]
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// ReportFeeling answers "how does tag feel?". Before language acquisition the
// answer is always qualia.NoLanguageReport, whatever tag is asked about.
func (s *Simulation) ReportFeeling(tag qualia.Tag) (string, error) {
	if !s.state.LanguageAcquired {
		return qualia.NoLanguageReport, nil
	}
	if !s.engine.catalog.Contains(tag) {
		return "", fmt.Errorf("%w: %q", ErrUnknownStimulus, tag)
	}
	return qualia.Describe(tag, s.engine.Valuation(s.state, tag)), nil
}

// Summary is the read-only end-of-run view consumed by reporting.
type Summary struct {
	RunID                   string       `json:"run_id" yaml:"run_id"`
	Variant                 Variant      `json:"variant" yaml:"variant"`
	Environment             string       `json:"environment" yaml:"environment"`
	MemoryEnabled           bool         `json:"memory_enabled" yaml:"memory_enabled"`
	DNAEnabled              bool         `json:"dna_enabled" yaml:"dna_enabled"`
	Vocabulary              int          `json:"vocabulary" yaml:"vocabulary"`
	Steps                   int          `json:"steps" yaml:"steps"`
	ConsciousSteps          int          `json:"conscious_steps" yaml:"conscious_steps"`
	ConsciousnessRate       float64      `json:"consciousness_rate" yaml:"consciousness_rate"`
	EmergedAt               int          `json:"emerged_at" yaml:"emerged_at"`
	SelfStrengthAtEmergence float64      `json:"self_strength_at_emergence" yaml:"self_strength_at_emergence"`
	MeanConsciousSync       float64      `json:"mean_conscious_sync" yaml:"mean_conscious_sync"`
	FinalSelfStrength       float64      `json:"final_self_strength" yaml:"final_self_strength"`
	LanguageAcquired        bool         `json:"language_acquired" yaml:"language_acquired"`
	LanguageAcquiredAt      int          `json:"language_acquired_at" yaml:"language_acquired_at"`
	MixedStates             []MixedState `json:"mixed_states,omitempty" yaml:"mixed_states,omitempty"`
}

// Summary snapshots the current read-only state. Zero step fields mean
// "never happened".
func (s *Simulation) Summary() Summary {
	p := s.engine.params
	selfAt, _ := s.SelfStrengthAtEmergence()
	return Summary{
		RunID:                   s.id,
		Variant:                 p.Variant,
		Environment:             string(p.Environment),
		MemoryEnabled:           p.Capabilities.MemoryEnabled,
		DNAEnabled:              p.Capabilities.DNAEnabled,
		Vocabulary:              len(s.engine.Choices()),
		Steps:                   s.state.Step,
		ConsciousSteps:          s.state.ConsciousSteps,
		ConsciousnessRate:       s.ConsciousnessRate(),
		EmergedAt:               s.state.EmergedAt,
		SelfStrengthAtEmergence: selfAt,
		MeanConsciousSync:       s.MeanConsciousSync(),
		FinalSelfStrength:       s.state.SelfStrength,
		LanguageAcquired:        s.state.LanguageAcquired,
		LanguageAcquiredAt:      s.state.LanguageAcquiredAt,
		MixedStates:             s.MixedStates(),
	}
}
