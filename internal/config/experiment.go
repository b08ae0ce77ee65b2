package config

import "fmt"

// ExperimentConfig configures the comparison harness.
type ExperimentConfig struct {
	// Parallelism caps concurrently running simulations (0 = one per run).
	Parallelism int `yaml:"parallelism"`

	// Steps per compared run; 0 falls back to simulation.steps.
	Steps int `yaml:"steps"`
}

// DefaultExperimentConfig returns the harness defaults.
func DefaultExperimentConfig() ExperimentConfig {
	return ExperimentConfig{Parallelism: 4}
}

// Validate validates the harness settings.
func (e ExperimentConfig) Validate() error {
	if e.Parallelism < 0 {
		return fmt.Errorf("experiment.parallelism must not be negative, got %d", e.Parallelism)
	}
	if e.Steps < 0 {
		return fmt.Errorf("experiment.steps must not be negative, got %d", e.Steps)
	}
	return nil
}

// StepsOr returns the harness step count, falling back to def.
func (e ExperimentConfig) StepsOr(def int) int {
	if e.Steps > 0 {
		return e.Steps
	}
	return def
}
