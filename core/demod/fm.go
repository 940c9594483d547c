package demod

import (
	"math"
	"math/cmplx"

	"github.com/pkg/errors"

	"github.com/ftl/demod/core"
)

// Quadrature detects the frequency modulation of the given complex sequence:
// the instantaneous phase is unwrapped and differentiated between consecutive
// samples, then scaled by rate/(2·√2·π·deviation) so that the given deviation
// maps to a fixed output level.
//
// The first sample has no predecessor, so the result has len(samples)-1
// values; a sequence with less than two samples yields an empty result.
func Quadrature(samples []complex128, rate, deviation core.Frequency) ([]float64, error) {
	if rate <= 0 {
		return nil, errors.Wrapf(core.ErrRateMismatch, "sample rate %v must be positive", rate)
	}
	if deviation <= 0 {
		return nil, errors.Wrapf(core.ErrInvalidSpecification, "deviation %v must be positive", deviation)
	}
	if len(samples) < 2 {
		return []float64{}, nil
	}

	phase := make([]float64, len(samples))
	for i, s := range samples {
		phase[i] = cmplx.Phase(s)
	}
	unwrapped := Unwrap(phase)

	gain := float64(rate) / (2 * math.Sqrt2 * math.Pi * float64(deviation))
	result := make([]float64, len(samples)-1)
	for i := range result {
		result[i] = gain * (unwrapped[i+1] - unwrapped[i])
	}
	return result, nil
}
