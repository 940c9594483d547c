package demod

import "math"

// Unwrap removes the ±π discontinuities from a sequence of wrapped phase
// values by adding the appropriate multiple of 2π to each value. The
// difference between successive unwrapped values always lies in (-π, π].
func Unwrap(phase []float64) []float64 {
	result := make([]float64, len(phase))
	if len(phase) == 0 {
		return result
	}

	result[0] = phase[0]
	offset := 0.0
	for i := 1; i < len(phase); i++ {
		Δ := phase[i] - phase[i-1]
		for Δ > math.Pi {
			Δ -= 2 * math.Pi
			offset -= 2 * math.Pi
		}
		for Δ <= -math.Pi {
			Δ += 2 * math.Pi
			offset += 2 * math.Pi
		}
		result[i] = phase[i] + offset
	}
	return result
}
