// Package qualia holds the closed stimulus vocabularies used by the simulator.
// A Catalog maps each stimulus tag to its base valuation in the nominal range
// [-1, 1]: negative values mean avoidance, positive values mean approach.
package qualia

import (
	"fmt"
)

// Tag identifies one stimulus type ("pain", "sweet", "red", ...).
type Tag string

// Catalog is an ordered, immutable vocabulary of stimulus tags.
// Order matters: environments select a prefix of the catalog.
type Catalog struct {
	tags     []Tag
	values   map[Tag]float64
	aversive map[Tag]bool
}

// Entry is one (tag, valuation) pair used to build a Catalog.
type Entry struct {
	Tag   Tag
	Value float64
}

// DefaultAversive is the aversive category used by the overflow resolver.
var DefaultAversive = []Tag{"pain"}

// NewCatalog builds a catalog from ordered entries. Duplicate tags are rejected.
// The aversive tags must be members of the catalog; tags outside it are ignored.
func NewCatalog(entries []Entry, aversive ...Tag) (*Catalog, error) {
	c := &Catalog{
		tags:     make([]Tag, 0, len(entries)),
		values:   make(map[Tag]float64, len(entries)),
		aversive: make(map[Tag]bool),
	}
	for _, e := range entries {
		if e.Tag == "" {
			return nil, fmt.Errorf("empty stimulus tag")
		}
		if _, dup := c.values[e.Tag]; dup {
			return nil, fmt.Errorf("duplicate stimulus tag %q", e.Tag)
		}
		c.tags = append(c.tags, e.Tag)
		c.values[e.Tag] = e.Value
	}
	for _, t := range aversive {
		if _, ok := c.values[t]; ok {
			c.aversive[t] = true
		}
	}
	return c, nil
}

// Len returns the vocabulary size.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.tags)
}

// Tags returns a copy of the ordered vocabulary.
func (c *Catalog) Tags() []Tag {
	out := make([]Tag, len(c.tags))
	copy(out, c.tags)
	return out
}

// Prefix returns the first n tags (all of them if n exceeds the size).
func (c *Catalog) Prefix(n int) []Tag {
	if n > len(c.tags) {
		n = len(c.tags)
	}
	if n < 0 {
		n = 0
	}
	out := make([]Tag, n)
	copy(out, c.tags[:n])
	return out
}

// Contains reports whether tag is part of the vocabulary.
func (c *Catalog) Contains(tag Tag) bool {
	_, ok := c.values[tag]
	return ok
}

// Value returns the base valuation of tag, or 0 for unknown tags.
func (c *Catalog) Value(tag Tag) float64 {
	return c.values[tag]
}

// IsAversive reports whether tag belongs to the designated aversive category.
func (c *Catalog) IsAversive(tag Tag) bool {
	return c.aversive[tag]
}

// WithValues returns a copy of the catalog with the given valuations replaced.
// Every overridden tag must already exist.
func (c *Catalog) WithValues(overrides map[Tag]float64) (*Catalog, error) {
	entries := make([]Entry, 0, len(c.tags))
	for _, t := range c.tags {
		entries = append(entries, Entry{Tag: t, Value: c.values[t]})
	}
	for t, v := range overrides {
		if !c.Contains(t) {
			return nil, fmt.Errorf("unknown stimulus tag %q", t)
		}
		for i := range entries {
			if entries[i].Tag == t {
				entries[i].Value = v
			}
		}
	}
	aversive := make([]Tag, 0, len(c.aversive))
	for _, t := range c.tags {
		if c.aversive[t] {
			aversive = append(aversive, t)
		}
	}
	return NewCatalog(entries, aversive...)
}
