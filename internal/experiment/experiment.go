// Package experiment runs independent simulations side by side and collects
// their summaries. Every run owns its random source; nothing is shared.
package experiment

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"innermotion/internal/engine"
	"innermotion/internal/logging"
	"innermotion/internal/stimulus"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Builder produces one run's parameters from that run's own source.
type Builder func(src engine.Source) (engine.Params, error)

// Case is one arm of a comparison.
type Case struct {
	Label string
	Seed  int64
	Build Builder
}

// Result pairs a case with its end-of-run summary.
type Result struct {
	Label    string         `json:"label" yaml:"label"`
	Seed     int64          `json:"seed" yaml:"seed"`
	Duration time.Duration  `json:"duration" yaml:"duration"`
	Summary  engine.Summary `json:"summary" yaml:"summary"`
}

// Comparison is a named set of cases run under one step budget.
type Comparison struct {
	ID      string   `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	Steps   int      `json:"steps" yaml:"steps"`
	Results []Result `json:"results" yaml:"results"`
}

// Runner executes cases concurrently.
type Runner struct {
	// Steps is the run length of every case.
	Steps int
	// Parallelism caps concurrent runs; 0 or less means one goroutine per case.
	Parallelism int
}

// Run executes all cases and returns their results in case order. The first
// failure cancels the remaining runs.
func (r Runner) Run(ctx context.Context, name string, cases []Case) (*Comparison, error) {
	if r.Steps <= 0 {
		return nil, fmt.Errorf("%w: step count must be positive, got %d", engine.ErrInvalidConfig, r.Steps)
	}
	if len(cases) == 0 {
		return nil, fmt.Errorf("%w: comparison %q has no cases", engine.ErrInvalidConfig, name)
	}

	cmp := &Comparison{
		ID:      uuid.NewString(),
		Name:    name,
		Steps:   r.Steps,
		Results: make([]Result, len(cases)),
	}
	log := logging.Get(logging.CategoryExperiment).With("comparison", cmp.ID)
	log.Info("starting %s: %d cases x %d steps", name, len(cases), r.Steps)

	eg, egCtx := errgroup.WithContext(ctx)
	if r.Parallelism > 0 {
		eg.SetLimit(r.Parallelism)
	}
	for i, c := range cases {
		i, c := i, c
		eg.Go(func() error {
			res, err := r.runCase(egCtx, c)
			if err != nil {
				return fmt.Errorf("%s: %w", c.Label, err)
			}
			// Each goroutine owns exactly one slot.
			cmp.Results[i] = res
			log.Debug("%s done: rate=%.3f emerged=%d", c.Label, res.Summary.ConsciousnessRate, res.Summary.EmergedAt)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		log.Warn("%s failed: %v", name, err)
		return nil, err
	}
	return cmp, nil
}

func (r Runner) runCase(ctx context.Context, c Case) (Result, error) {
	if c.Build == nil {
		return Result{}, fmt.Errorf("%w: case has no builder", engine.ErrInvalidConfig)
	}
	src := rand.New(rand.NewSource(c.Seed))
	p, err := c.Build(src)
	if err != nil {
		return Result{}, err
	}
	sim, err := engine.NewSimulation(p, src)
	if err != nil {
		return Result{}, err
	}

	start := time.Now()
	if _, err := sim.Run(ctx, r.Steps); err != nil {
		return Result{}, err
	}
	return Result{
		Label:    c.Label,
		Seed:     c.Seed,
		Duration: time.Since(start),
		Summary:  sim.Summary(),
	}, nil
}

// PresetBuilder builds a variant preset and then applies tweak, if any.
func PresetBuilder(v engine.Variant, tweak func(*engine.Params)) Builder {
	return func(src engine.Source) (engine.Params, error) {
		p, err := engine.Preset(v, src)
		if err != nil {
			return engine.Params{}, err
		}
		if tweak != nil {
			tweak(&p)
		}
		return p, nil
	}
}

// EnvironmentCases runs variant v once per environment. All cases share seed
// so they differ only in vocabulary.
func EnvironmentCases(v engine.Variant, seed int64, envs ...stimulus.Environment) []Case {
	cases := make([]Case, 0, len(envs))
	for _, env := range envs {
		env := env
		cases = append(cases, Case{
			Label: string(env),
			Seed:  seed,
			Build: PresetBuilder(v, func(p *engine.Params) { p.Environment = env }),
		})
	}
	return cases
}

// ComplexityCases compares simple, medium and complex vocabularies on the
// 54-stimulus catalog.
func ComplexityCases(seed int64) []Case {
	return EnvironmentCases(engine.VariantExpansion, seed,
		stimulus.EnvSimple, stimulus.EnvMedium, stimulus.EnvComplex)
}

// FocusCases compares the focused and varied environments of the
// consciousness variant.
func FocusCases(seed int64) []Case {
	return EnvironmentCases(engine.VariantConsciousness, seed,
		stimulus.EnvFocused, stimulus.EnvVaried)
}

// MemoryCases compares the memory variant with and without its store.
func MemoryCases(seed int64) []Case {
	return []Case{
		{Label: "with memory", Seed: seed, Build: PresetBuilder(engine.VariantMemory, nil)},
		{Label: "without memory", Seed: seed, Build: PresetBuilder(engine.VariantMemory, func(p *engine.Params) {
			p.Capabilities.MemoryEnabled = false
		})},
	}
}

// Named lists the built-in comparisons.
var Named = map[string]func(seed int64) []Case{
	"complexity": ComplexityCases,
	"focus":      FocusCases,
	"memory":     MemoryCases,
}

// Lookup returns the cases of a built-in comparison.
func Lookup(name string, seed int64) ([]Case, error) {
	fn, ok := Named[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown comparison %q (valid: complexity, focus, memory)", engine.ErrInvalidConfig, name)
	}
	return fn(seed), nil
}
