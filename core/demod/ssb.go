package demod

import (
	"github.com/pkg/errors"

	dsp "github.com/mjibson/go-dsp/fft"

	"github.com/ftl/demod/core"
)

// Coherent detects single- and double-sideband modulation: the spectrum is
// shifted by the given carrier offset, for SSB the unwanted sideband is
// suppressed with a Hilbert-transform-based sideband filter, and the real
// part of the result is the demodulated signal. Only ModeUSB, ModeLSB, and
// ModeDSB are implemented here; AM and FM have their own detectors.
func Coherent(samples []complex128, rate, offset core.Frequency, mode core.Mode) ([]float64, error) {
	if rate <= 0 {
		return nil, errors.Wrapf(core.ErrRateMismatch, "sample rate %v must be positive", rate)
	}
	switch mode {
	case core.ModeUSB, core.ModeLSB, core.ModeDSB:
	default:
		return nil, errors.Wrapf(core.ErrUnsupportedMode, "coherent detection cannot handle %v", mode)
	}
	if len(samples) == 0 {
		return []float64{}, nil
	}

	shifted := ShiftFrequency(samples, offset, rate)
	if mode != core.ModeDSB && len(shifted) > 1 {
		shifted = selectSideband(shifted, mode)
	}

	result := make([]float64, len(shifted))
	for i, s := range shifted {
		result[i] = real(s)
	}
	return result, nil
}

// selectSideband suppresses the unwanted half of the spectrum. The DC bin is
// kept in both cases; for even-length sequences the shared Nyquist bin counts
// as part of the upper sideband.
func selectSideband(samples []complex128, mode core.Mode) []complex128 {
	spectrum := dsp.FFT(samples)
	n := len(spectrum)
	half := n / 2
	for i := 1; i < n; i++ {
		positive := i <= half
		if (mode == core.ModeUSB) != positive {
			spectrum[i] = 0
		}
	}
	return dsp.IFFT(spectrum)
}
