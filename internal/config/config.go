package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"innermotion/internal/engine"
	"innermotion/internal/qualia"
	"innermotion/internal/stimulus"

	"gopkg.in/yaml.v3"
)

// Config holds all innermotion configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Simulation defines the run the CLI executes.
	Simulation SimulationConfig `yaml:"simulation"`

	// Experiment configures the comparison harness.
	Experiment ExperimentConfig `yaml:"experiment"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// SimulationConfig selects a variant and adjusts it.
type SimulationConfig struct {
	// Variant is one of minimal, expansion, dna, memory, consciousness.
	Variant string `yaml:"variant"`

	// Environment narrows the vocabulary: simple, medium, complex, focused,
	// varied or all. Empty keeps the variant's default.
	Environment string `yaml:"environment"`

	// Steps is the run length.
	Steps int `yaml:"steps"`

	// Seed fixes the random stream; 0 picks a time-based seed.
	Seed int64 `yaml:"seed"`

	Memory MemoryConfig `yaml:"memory"`

	// DNA overrides inherited valuations per stimulus. Values may lie far
	// outside [-1, 1] ("pain: 100").
	DNA map[string]float64 `yaml:"dna"`

	Learning LearningConfig `yaml:"learning"`
}

// LearningConfig toggles the learned-adjustment update.
type LearningConfig struct {
	Enabled bool    `yaml:"enabled"`
	Rate    float64 `yaml:"rate"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "innermotion",
		Version: "0.3.0",

		Simulation: SimulationConfig{
			Variant: string(engine.VariantConsciousness),
			Steps:   10000,
			Memory: MemoryConfig{
				Enabled: true,
			},
			Learning: LearningConfig{
				Rate: engine.LearningRate,
			},
		},

		Experiment: DefaultExperimentConfig(),

		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
// Malformed numeric values are ignored.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("INNERMOTION_VARIANT"); v != "" {
		c.Simulation.Variant = v
	}
	if v := os.Getenv("INNERMOTION_ENVIRONMENT"); v != "" {
		c.Simulation.Environment = v
	}
	if v := os.Getenv("INNERMOTION_STEPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Simulation.Steps = n
		}
	}
	if v := os.Getenv("INNERMOTION_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Simulation.Seed = n
		}
	}
	if v := os.Getenv("INNERMOTION_MEMORY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Simulation.Memory.Enabled = b
		}
	}
	if v := os.Getenv("INNERMOTION_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// ValidLogLevels lists the accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "warning", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if _, err := engine.ParseVariant(c.Simulation.Variant); err != nil {
		return fmt.Errorf("simulation.variant: %w", err)
	}
	if _, err := stimulus.ParseEnvironment(c.Simulation.Environment); err != nil {
		return fmt.Errorf("simulation.environment: %w", err)
	}
	if c.Simulation.Steps <= 0 {
		return fmt.Errorf("simulation.steps must be positive, got %d", c.Simulation.Steps)
	}
	if c.Simulation.Memory.Capacity < 0 {
		return fmt.Errorf("simulation.memory.capacity must not be negative, got %d", c.Simulation.Memory.Capacity)
	}
	if c.Simulation.Learning.Enabled && c.Simulation.Learning.Rate <= 0 {
		return fmt.Errorf("simulation.learning.rate must be positive when learning is enabled")
	}
	if err := c.Experiment.Validate(); err != nil {
		return err
	}

	validLevel := false
	for _, l := range ValidLogLevels {
		if strings.EqualFold(c.Logging.Level, l) {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid logging level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}
	return nil
}

// ResolveSeed returns the configured seed, or a time-based one when unset.
func (c *Config) ResolveSeed() int64 {
	if c.Simulation.Seed != 0 {
		return c.Simulation.Seed
	}
	return time.Now().UnixNano()
}

// Params builds engine parameters for the configured variant. src must be
// the run's random source (the expansion variant draws its catalog from it).
func (c *Config) Params(src engine.Source) (engine.Params, error) {
	variant, err := engine.ParseVariant(c.Simulation.Variant)
	if err != nil {
		return engine.Params{}, err
	}
	p, err := engine.Preset(variant, src)
	if err != nil {
		return engine.Params{}, err
	}

	if c.Simulation.Environment != "" {
		env, err := stimulus.ParseEnvironment(c.Simulation.Environment)
		if err != nil {
			return engine.Params{}, fmt.Errorf("%w: %v", engine.ErrInvalidConfig, err)
		}
		p.Environment = env
	}

	c.Simulation.Memory.apply(&p)

	if len(c.Simulation.DNA) > 0 {
		p.DNAOverrides = make(map[qualia.Tag]float64, len(c.Simulation.DNA))
		for tag, v := range c.Simulation.DNA {
			p.DNAOverrides[qualia.Tag(tag)] = v
		}
	}

	p.Learning.Enabled = c.Simulation.Learning.Enabled
	if c.Simulation.Learning.Rate > 0 {
		p.Learning.Rate = c.Simulation.Learning.Rate
	}

	return p, p.Validate()
}
