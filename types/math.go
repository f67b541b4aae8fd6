package types

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Convert degrees to radians.
func Radians(degrees float32) float32 {
	return degrees * math.Pi / 180.0
}

// Clamp v to the [lo, hi] range.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
