package engine

import (
	"fmt"

	"innermotion/internal/memory"
	"innermotion/internal/qualia"
	"innermotion/internal/stimulus"
)

// Engine is a validated, immutable set of Params ready to step.
type Engine struct {
	params  Params
	catalog *qualia.Catalog
	gen     *stimulus.Generator
}

// New validates p and prepares the stimulus generator. DNA overrides are
// applied to the catalog here.
func New(p Params) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	cat := p.Catalog
	if len(p.DNAOverrides) > 0 {
		var err error
		if cat, err = cat.WithValues(p.DNAOverrides); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	gen, err := stimulus.NewGenerator(cat, p.Environment)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	overrides := make(map[qualia.Tag]float64, len(p.DNAOverrides))
	for k, v := range p.DNAOverrides {
		overrides[k] = v
	}
	p.DNAOverrides = overrides
	p.Catalog = cat

	return &Engine{params: p, catalog: cat, gen: gen}, nil
}

// Params returns the validated parameters (with overrides applied to the catalog).
func (e *Engine) Params() Params {
	return e.params
}

// Catalog returns the effective catalog.
func (e *Engine) Catalog() *qualia.Catalog {
	return e.catalog
}

// Choices returns the stimuli the environment can produce.
func (e *Engine) Choices() []qualia.Tag {
	return e.gen.Choices()
}

// Initial returns the state before the first step.
func (e *Engine) Initial() State {
	st := State{
		Trace:   memory.New(e.params.TraceCapacity),
		Memory:  memory.Disabled(),
		Learned: map[qualia.Tag]float64{},
	}
	if e.params.Capabilities.MemoryEnabled {
		st.Memory = memory.New(e.params.MemoryCapacity)
	}
	return st
}

// Valuation returns the valuation of tag as the agent currently feels it:
// the clamped DNA+learned value with DNA enabled, the catalog value otherwise.
func (e *Engine) Valuation(st State, tag qualia.Tag) float64 {
	if e.params.Capabilities.DNAEnabled {
		return Resolve(e.catalog, st.Learned, tag).Clamped
	}
	return e.catalog.Value(tag)
}

// Step advances prev by one stimulus. Randomness is consumed in a fixed
// order: stimulus draw, self-strength noise (memory disabled only), sync
// jitter. prev is left untouched.
func (e *Engine) Step(prev State, src Source) (State, StepResult) {
	p := e.params
	next := prev
	next.Step = prev.Step + 1

	tag := e.gen.Next(src)
	res := StepResult{Step: next.Step, Stimulus: tag}

	pred, predErr := Predict(prev.Trace, tag)
	res.Prediction = pred.Tag
	res.PredictionError = predErr

	next.Trace = prev.Trace.Append(tag)
	next.Memory = prev.Memory.Append(tag)

	if p.Capabilities.MemoryEnabled {
		res.PatternMatches = PatternMatches(next.Memory, p.WindowSize, p.RequireFullWindow)
		next.SelfStrength = Accumulate(prev.SelfStrength, p.SelfRate, res.PatternMatches)
	} else {
		next.SelfStrength = NoMemorySelf(src)
	}
	res.SelfStrength = next.SelfStrength

	next.SyncScore = SyncScore(predErr, src)
	res.SyncScore = next.SyncScore

	next.Conscious = Classify(next.SyncScore, next.SelfStrength)
	res.Conscious = next.Conscious
	if next.Conscious {
		next.ConsciousSteps++
		if prev.EmergedAt == 0 && !prev.Conscious {
			next.EmergedAt = next.Step
			res.Emerged = true
		}
	}

	if p.Capabilities.DNAEnabled {
		r := Resolve(e.catalog, prev.Learned, tag)
		res.DNAValue = r.DNA
		res.RawValuation = r.Raw
		res.Valuation = r.Clamped
		res.Overflow = r.Overflow
		if r.Mixed {
			res.Mixed = &MixedState{
				Step:     next.Step,
				Stimulus: tag,
				Clamped:  r.Clamped,
				Mixed:    r.MixedVal,
				Overflow: r.Overflow,
				Raw:      r.Raw,
			}
		}
		if p.Learning.Enabled {
			next.Learned = Learn(prev.Learned, tag, r.Clamped, p.Learning.Rate)
		}
	} else {
		v := e.catalog.Value(tag)
		res.DNAValue, res.RawValuation, res.Valuation = v, v, v
	}

	next.LanguageAcquired = LanguageLatch(prev.LanguageAcquired, next.SelfStrength)
	if next.LanguageAcquired && !prev.LanguageAcquired {
		next.LanguageAcquiredAt = next.Step
		res.LanguageJustAcquired = true
	}
	res.LanguageAcquired = next.LanguageAcquired

	return next, res
}
