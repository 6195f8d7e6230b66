package core

import "math"

// FMin returns the smaller of a and b. If one operand is NaN the other is returned.
func FMin(a, b float64) float64 {
	if math.IsNaN(a) {
		return b
	}
	if math.IsNaN(b) {
		return a
	}
	if b < a {
		return b
	}
	return a
}

// FMax returns the larger of a and b. If one operand is NaN the other is returned.
func FMax(a, b float64) float64 {
	if math.IsNaN(a) {
		return b
	}
	if math.IsNaN(b) {
		return a
	}
	if b > a {
		return b
	}
	return a
}

// Clamp limits x to [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
