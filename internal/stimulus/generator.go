// Package stimulus draws the next sensory event from an environment.
package stimulus

import (
	"fmt"
	"strings"

	"innermotion/internal/qualia"
)

// Environment names a sub-vocabulary of a catalog.
type Environment string

const (
	EnvSimple  Environment = "simple"
	EnvMedium  Environment = "medium"
	EnvComplex Environment = "complex"
	EnvFocused Environment = "focused"
	EnvVaried  Environment = "varied"
	EnvAll     Environment = "all"
)

// Environments lists every recognised environment tag.
var Environments = []Environment{EnvSimple, EnvMedium, EnvComplex, EnvFocused, EnvVaried, EnvAll}

// PrefixSize returns how many leading catalog tags the environment exposes.
// Zero means "the whole catalog".
func (e Environment) PrefixSize() (int, error) {
	switch e {
	case EnvSimple, EnvFocused:
		return 3, nil
	case EnvMedium:
		return 10, nil
	case EnvComplex, EnvVaried, EnvAll, "":
		return 0, nil
	default:
		return 0, fmt.Errorf("unknown environment %q", string(e))
	}
}

// ParseEnvironment normalises a user supplied environment tag.
func ParseEnvironment(s string) (Environment, error) {
	e := Environment(strings.ToLower(strings.TrimSpace(s)))
	if _, err := e.PrefixSize(); err != nil {
		return "", err
	}
	if e == "" {
		e = EnvAll
	}
	return e, nil
}

// Intn is the slice of a random source the generator needs.
type Intn interface {
	Intn(n int) int
}

// Generator draws uniformly from a fixed subset of a catalog.
type Generator struct {
	choices []qualia.Tag
}

// NewGenerator selects the environment's subset of cat.
func NewGenerator(cat *qualia.Catalog, env Environment) (*Generator, error) {
	if cat.Len() == 0 {
		return nil, fmt.Errorf("empty stimulus vocabulary")
	}
	n, err := env.PrefixSize()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		n = cat.Len()
	}
	return &Generator{choices: cat.Prefix(n)}, nil
}

// Choices returns the tags the generator can emit.
func (g *Generator) Choices() []qualia.Tag {
	out := make([]qualia.Tag, len(g.choices))
	copy(out, g.choices)
	return out
}

// Next consumes one draw from src and returns the chosen stimulus.
func (g *Generator) Next(src Intn) qualia.Tag {
	return g.choices[src.Intn(len(g.choices))]
}
