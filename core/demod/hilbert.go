package demod

import (
	dsp "github.com/mjibson/go-dsp/fft"
)

// Analytic derives the analytic signal of a real-valued sequence through a
// Hilbert transform in the frequency domain: the negative half of the
// spectrum is suppressed, the positive half doubled. The real part of the
// result is the input sequence; the magnitude is its envelope.
func Analytic(samples []float64) []complex128 {
	if len(samples) == 0 {
		return []complex128{}
	}
	if len(samples) == 1 {
		return []complex128{complex(samples[0], 0)}
	}

	spectrum := dsp.FFTReal(samples)
	n := len(spectrum)
	half := n / 2
	for i := 1; i < n; i++ {
		switch {
		case i < half:
			spectrum[i] *= 2
		case i > half:
			spectrum[i] = 0
		case n%2 != 0: // odd length: no shared Nyquist bin
			spectrum[i] *= 2
		}
	}
	return dsp.IFFT(spectrum)
}
