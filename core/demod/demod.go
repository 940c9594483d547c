// Package demod contains the detector algorithms: envelope detection for AM,
// quadrature discrimination for FM, and coherent detection for SSB/DSB.
//
// All detectors are pure functions over finite, in-memory sample sequences.
// They never fail on degenerate input data (all-zero or single-sample
// sequences produce well-defined output); errors indicate invalid
// configuration only.
package demod

import (
	"math"
	"math/cmplx"

	"github.com/ftl/demod/core"
)

// ShiftFrequency shifts the spectrum of the given sequence by the given
// offset, multiplying each sample with a unit-magnitude oscillator. The input
// sequence is left untouched.
func ShiftFrequency(samples []complex128, offset, rate core.Frequency) []complex128 {
	result := make([]complex128, len(samples))
	if offset == 0 {
		copy(result, samples)
		return result
	}

	ω := 2 * math.Pi * float64(offset/rate)
	for i, s := range samples {
		t := float64(i)
		result[i] = s * cmplx.Exp(complex(0, ω*t))
	}
	return result
}
