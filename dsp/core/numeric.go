package core

import "math"

const defaultEpsilon = 1e-12

// Missing marks a sample position with no data, e.g. the part of a
// peri-event window that falls outside the recording.
var Missing = math.NaN()

// IsMissing reports whether v is the Missing marker.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// CountMissing returns the number of Missing values in data.
func CountMissing(data []float64) int {
	n := 0
	for _, v := range data {
		if IsMissing(v) {
			n++
		}
	}

	return n
}

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
// Two Missing values compare equal.
func NearlyEqual(a, b, eps float64) bool {
	if IsMissing(a) || IsMissing(b) {
		return IsMissing(a) && IsMissing(b)
	}

	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
