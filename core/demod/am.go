package demod

import (
	"math/cmplx"

	"github.com/pkg/errors"

	"github.com/ftl/demod/core"
)

// Envelope detects the amplitude modulation of the given complex sequence by
// taking the magnitude of each sample. With removeDC the mean envelope level
// (the carrier bias) is subtracted afterwards. An all-zero sequence yields an
// all-zero result.
func Envelope(samples []complex128, rate core.Frequency, removeDC bool) ([]float64, error) {
	if rate <= 0 {
		return nil, errors.Wrapf(core.ErrRateMismatch, "sample rate %v must be positive", rate)
	}

	result := make([]float64, len(samples))
	for i, s := range samples {
		result[i] = cmplx.Abs(s)
	}
	if removeDC {
		removeMean(result)
	}
	return result, nil
}

// EnvelopeReal detects the amplitude modulation of a real-valued sequence by
// taking the magnitude of its analytic signal.
func EnvelopeReal(samples []float64, rate core.Frequency, removeDC bool) ([]float64, error) {
	return Envelope(Analytic(samples), rate, removeDC)
}

func removeMean(samples []float64) {
	if len(samples) == 0 {
		return
	}
	var mean float64
	for _, s := range samples {
		mean += s
	}
	mean /= float64(len(samples))
	for i := range samples {
		samples[i] -= mean
	}
}
