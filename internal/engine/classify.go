package engine

// Classify is the consciousness predicate. It is a pure function of its
// inputs and Threshold.
func Classify(syncScore, selfStrength float64) bool {
	return syncScore >= Threshold && selfStrength >= Threshold
}
