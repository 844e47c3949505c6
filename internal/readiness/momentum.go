package readiness

// Momentum returns the rounded mean of the recent scores. ok is false when
// there are none.
func Momentum(scores []float64) (avg int, ok bool) {
	if len(scores) == 0 {
		return 0, false
	}
	return round(mean(scores)), true
}

// ScoreProgress is how far current is toward target, as a percentage
// capped at 100. A non-positive target yields 0.
func ScoreProgress(current, target float64) int {
	if target <= 0 {
		return 0
	}
	return min(100, round(current/target*100))
}
