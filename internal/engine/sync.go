package engine

// SyncScore combines prediction error with fresh jitter:
// err*0.8 + U[0, 0.2), clamped to [0, 1].
func SyncScore(predictionError float64, src Source) float64 {
	return clamp01(predictionError*SyncErrorWeight + uniform(src, 0, SyncNoise))
}
