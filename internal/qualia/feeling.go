package qualia

import "fmt"

// Feeling is the verbal bucket a valuation falls into once language exists.
type Feeling string

const (
	FeelingPainful  Feeling = "painful"
	FeelingPleasant Feeling = "pleasant"
	FeelingNeutral  Feeling = "neutral"
)

// NoLanguageReport is returned by feeling reports before language acquisition.
const NoLanguageReport = "[cannot report - no language yet]"

// Classify buckets a valuation: below -0.5 painful, above 0.5 pleasant.
func Classify(value float64) Feeling {
	switch {
	case value < -0.5:
		return FeelingPainful
	case value > 0.5:
		return FeelingPleasant
	default:
		return FeelingNeutral
	}
}

// Describe renders a first-person report for tag felt at value.
func Describe(tag Tag, value float64) string {
	return fmt.Sprintf("I feel %s - it's %s", tag, Classify(value))
}
