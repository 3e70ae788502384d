// Package floatutils provides utilities for working with floats
package floatutils

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Clip clips a floating point to within a minimum and maximum value.
// If the floating point exceeds max, then the function returns the max
// If min exceeds the floating point, then the function returns the min
func Clip(value, min, max float64) float64 {
	clipped := math.Min(value, max)
	return math.Max(clipped, min)
}

// Softmax returns the softmax of values in a new slice. The maximum is
// subtracted before exponentiating so that large logits do not overflow.
func Softmax(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	max := floats.Max(values)
	for i, v := range values {
		out[i] = math.Exp(v - max)
	}
	floats.Scale(1/floats.Sum(out), out)
	return out
}

// IsDistribution returns whether values are non-negative and sum to 1
// within tol
func IsDistribution(values []float64, tol float64) bool {
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if v < 0 || math.IsNaN(v) {
			return false
		}
	}
	return math.Abs(floats.Sum(values)-1.0) <= tol
}

// Min calculates and returns the minimum float64 in a list
func Min(values ...float64) float64 {
	min := values[0]
	for _, val := range values {
		if val < min {
			min = val
		}
	}
	return min
}

// Max calculates and returns the maximum float64 in a list
func Max(values ...float64) float64 {
	max := values[0]
	for _, val := range values {
		if val > max {
			max = val
		}
	}
	return max
}
