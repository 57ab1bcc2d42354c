package engine

import "math"

// roundHalfUp rounds to the nearest integer with ties going towards +Inf,
// so -2.5 becomes -2.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

func round2(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}
