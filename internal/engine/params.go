package engine

import (
	"fmt"
	"sort"

	"innermotion/internal/memory"
	"innermotion/internal/qualia"
	"innermotion/internal/stimulus"
)

// Variant names one of the five preset configurations.
type Variant string

const (
	VariantMinimal       Variant = "minimal"
	VariantExpansion     Variant = "expansion"
	VariantDNA           Variant = "dna"
	VariantMemory        Variant = "memory"
	VariantConsciousness Variant = "consciousness"
)

// Variants lists the presets in phase order.
var Variants = []Variant{VariantMinimal, VariantExpansion, VariantDNA, VariantMemory, VariantConsciousness}

// Capabilities are the two switches that distinguish the variants structurally.
type Capabilities struct {
	// MemoryEnabled gives the agent a persistent memory store. Without it
	// self-strength is replaced by bounded noise every step.
	MemoryEnabled bool
	// DNAEnabled routes valuations through the DNA/overflow resolver.
	DNAEnabled bool
}

// Learning configures the optional learned-adjustment update.
type Learning struct {
	Enabled bool
	Rate    float64
}

// Params is the complete description of one simulation.
type Params struct {
	Variant      Variant
	Catalog      *qualia.Catalog
	Environment  stimulus.Environment
	Capabilities Capabilities

	// MemoryCapacity bounds the long-lived memory store.
	MemoryCapacity int
	// TraceCapacity bounds the short-term trace used for prediction.
	TraceCapacity int
	// WindowSize is how many recent memory entries the accumulator scans.
	WindowSize int
	// RequireFullWindow suppresses matches until WindowSize entries exist.
	RequireFullWindow bool
	// SelfRate is the self-strength increment per adjacent match.
	SelfRate float64

	// DNAOverrides replace catalog valuations; values may exceed [-1, 1].
	DNAOverrides map[qualia.Tag]float64
	Learning     Learning
}

// Preset returns the parameters of a variant. The expansion variant draws its
// 54 valuations from src, so src must be the run's own source for the run to
// be reproducible.
func Preset(v Variant, src qualia.Uniform) (Params, error) {
	p := Params{
		Variant:        v,
		Environment:    stimulus.EnvAll,
		Capabilities:   Capabilities{MemoryEnabled: true},
		MemoryCapacity: memory.ShortTermCapacity,
		TraceCapacity:  memory.ShortTermCapacity,
		WindowSize:     DefaultWindow,
		SelfRate:       ShortMemoryRate,
		Learning:       Learning{Rate: LearningRate},
	}
	switch v {
	case VariantMinimal:
		p.Catalog = qualia.MinimalCatalog()
	case VariantExpansion:
		if src == nil {
			return Params{}, fmt.Errorf("%w: expansion variant needs a random source", ErrInvalidConfig)
		}
		p.Catalog = qualia.ExpandedCatalog(src)
		p.Environment = stimulus.EnvComplex
	case VariantDNA:
		p.Catalog = qualia.DNACatalog()
		p.Capabilities.DNAEnabled = true
	case VariantMemory:
		p.Catalog = qualia.MemoryCatalog()
		p.MemoryCapacity = memory.LongTermCapacity
		p.SelfRate = LongMemoryRate
	case VariantConsciousness:
		p.Catalog = qualia.ConsciousnessCatalog()
		p.Environment = stimulus.EnvFocused
		p.MemoryCapacity = memory.LongTermCapacity
		p.SelfRate = LongMemoryRate
		p.RequireFullWindow = true
	default:
		return Params{}, fmt.Errorf("%w: unknown variant %q", ErrInvalidConfig, string(v))
	}
	return p, nil
}

// ParseVariant checks s against the known variants.
func ParseVariant(s string) (Variant, error) {
	for _, v := range Variants {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: unknown variant %q", ErrInvalidConfig, s)
}

// Validate reports the first misconfiguration, wrapped in ErrInvalidConfig.
func (p Params) Validate() error {
	if p.Catalog == nil || p.Catalog.Len() == 0 {
		return fmt.Errorf("%w: empty stimulus vocabulary", ErrInvalidConfig)
	}
	if _, err := p.Environment.PrefixSize(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if p.Capabilities.MemoryEnabled && p.MemoryCapacity <= 0 {
		return fmt.Errorf("%w: memory capacity must be positive, got %d", ErrInvalidConfig, p.MemoryCapacity)
	}
	if p.TraceCapacity <= 0 {
		return fmt.Errorf("%w: trace capacity must be positive, got %d", ErrInvalidConfig, p.TraceCapacity)
	}
	if p.WindowSize <= 0 {
		return fmt.Errorf("%w: window size must be positive, got %d", ErrInvalidConfig, p.WindowSize)
	}
	if p.SelfRate < 0 {
		return fmt.Errorf("%w: self-strength rate must not be negative", ErrInvalidConfig)
	}
	if p.Learning.Enabled && p.Learning.Rate <= 0 {
		return fmt.Errorf("%w: learning rate must be positive when learning is enabled", ErrInvalidConfig)
	}
	if p.Learning.Enabled && !p.Capabilities.DNAEnabled {
		return fmt.Errorf("%w: learning adjusts DNA valuations and needs the dna capability", ErrInvalidConfig)
	}
	for _, tag := range sortedTags(p.DNAOverrides) {
		if !p.Catalog.Contains(tag) {
			return fmt.Errorf("%w: DNA override for unknown stimulus %q", ErrInvalidConfig, tag)
		}
	}
	return nil
}

func sortedTags(m map[qualia.Tag]float64) []qualia.Tag {
	tags := make([]qualia.Tag, 0, len(m))
	for t := range m {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}
