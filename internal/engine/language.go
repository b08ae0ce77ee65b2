package engine

// LanguageLatch opens the first time self-strength reaches Threshold and
// stays open.
func LanguageLatch(acquired bool, selfStrength float64) bool {
	return acquired || selfStrength >= Threshold
}
