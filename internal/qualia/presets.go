package qualia

import "strings"

// Uniform is the slice of a random source the catalogs need.
type Uniform interface {
	Float64() float64
}

// MinimalCatalog is the three-stimulus body catalog.
func MinimalCatalog() *Catalog {
	c, _ := NewCatalog([]Entry{
		{"pain", -0.9},
		{"warm", -0.2},
		{"sweet", 0.7},
	}, DefaultAversive...)
	return c
}

// DNACatalog is the four-stimulus catalog whose values are inherited DNA
// defaults. Overrides may push them outside [-1, 1].
func DNACatalog() *Catalog {
	c, _ := NewCatalog([]Entry{
		{"pain", -0.9},
		{"warm", -0.2},
		{"sweet", 0.7},
		{"pleasure", 0.8},
	}, DefaultAversive...)
	return c
}

// MemoryCatalog is the six-stimulus catalog used for self-formation runs.
func MemoryCatalog() *Catalog {
	c, _ := NewCatalog([]Entry{
		{"pain", -0.9},
		{"warm", -0.2},
		{"sweet", 0.7},
		{"red", 0.3},
		{"blue", 0.2},
		{"green", 0.4},
	}, DefaultAversive...)
	return c
}

// ConsciousnessCatalog is the twelve-stimulus catalog; its first three tags
// form the "focused" environment.
func ConsciousnessCatalog() *Catalog {
	c, _ := NewCatalog([]Entry{
		{"pain", -0.9},
		{"warm", -0.2},
		{"cold", -0.4},
		{"sweet", 0.7},
		{"sour", -0.3},
		{"bitter", -0.6},
		{"red", 0.3},
		{"blue", 0.2},
		{"green", 0.4},
		{"loud", -0.5},
		{"quiet", 0.3},
		{"smooth", 0.5},
	}, DefaultAversive...)
	return c
}

// expandedTags is the 54-tag vocabulary, grouped by modality.
var expandedTags = []Tag{
	// body
	"pain", "warm", "cold", "hot", "pressure", "itch",
	"tickle", "vibration", "smooth", "rough", "wet", "dry",
	"sharp", "dull", "tingle", "numb", "heavy", "light",
	// taste
	"sweet", "sour", "bitter", "salty", "umami", "spicy",
	// smell
	"floral", "fruity", "minty", "woody", "earthy", "smoky",
	"chemical", "rotten", "fresh", "musty",
	// vision
	"red", "blue", "green", "yellow", "bright", "dark",
	"moving", "still", "near", "far", "sharp_visual", "blurry",
	// hearing
	"loud", "quiet", "high_pitch", "low_pitch", "rhythmic",
	"chaotic", "melodic", "harsh",
}

var (
	negativeMarkers = []string{"pain", "rotten", "harsh", "bitter"}
	positiveMarkers = []string{"sweet", "floral", "melodic", "fresh"}
)

// ExpandedCatalog builds the 54-tag catalog. Valuations are drawn from src in
// catalog order: pain-like tags in [-1, -0.5), pleasant ones in [0.5, 1),
// everything else in [-0.5, 0.5).
func ExpandedCatalog(src Uniform) *Catalog {
	entries := make([]Entry, 0, len(expandedTags))
	for _, t := range expandedTags {
		var lo, hi float64
		switch {
		case containsAny(string(t), negativeMarkers):
			lo, hi = -1.0, -0.5
		case containsAny(string(t), positiveMarkers):
			lo, hi = 0.5, 1.0
		default:
			lo, hi = -0.5, 0.5
		}
		entries = append(entries, Entry{Tag: t, Value: lo + (hi-lo)*src.Float64()})
	}
	c, _ := NewCatalog(entries, DefaultAversive...)
	return c
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
