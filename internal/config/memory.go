package config

import "innermotion/internal/engine"

// MemoryConfig configures the agent's memory store.
type MemoryConfig struct {
	// Enabled = false removes the store entirely; self-strength becomes noise.
	Enabled bool `yaml:"enabled"`

	// Capacity overrides the variant's store size (10 or 100). 0 keeps it.
	Capacity int `yaml:"capacity"`

	// Window overrides how many recent entries are scanned for repeats. 0 keeps it.
	Window int `yaml:"window"`

	// Rate overrides the self-strength increment per repeat. 0 keeps it.
	Rate float64 `yaml:"rate"`
}

func (m MemoryConfig) apply(p *engine.Params) {
	p.Capabilities.MemoryEnabled = m.Enabled
	if m.Capacity > 0 {
		p.MemoryCapacity = m.Capacity
	}
	if m.Window > 0 {
		p.WindowSize = m.Window
	}
	if m.Rate > 0 {
		p.SelfRate = m.Rate
	}
}
