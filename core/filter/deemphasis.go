package filter

import (
	"github.com/pkg/errors"

	"github.com/ftl/demod/core"
)

// Deemphasis is a first-order IIR low-pass filter that undoes the
// pre-emphasis of FM transmissions. As an IIR filter it carries history
// across samples; the history is a single value that the caller passes in and
// receives back, so chunked application stays explicit.
type Deemphasis struct {
	alpha float64
}

// NewDeemphasis creates a de-emphasis filter for the given sample rate and
// time constant (50µs in Europe, 75µs in the US).
func NewDeemphasis(rate core.Frequency, tau float64) (*Deemphasis, error) {
	if rate <= 0 {
		return nil, errors.Wrapf(core.ErrInvalidSpecification, "sample rate %v must be positive", rate)
	}
	if tau <= 0 {
		return nil, errors.Wrapf(core.ErrInvalidSpecification, "time constant %g must be positive", tau)
	}

	dt := 1.0 / float64(rate)
	return &Deemphasis{alpha: dt / (tau + dt)}, nil
}

// Apply filters the given sequence, starting from the given last output
// value. It returns the filtered sequence and the last output value for the
// next chunk; use 0 for the first chunk.
func (d *Deemphasis) Apply(samples []float64, prev float64) ([]float64, float64) {
	result := make([]float64, len(samples))
	for i, s := range samples {
		prev += d.alpha * (s - prev)
		result[i] = prev
	}
	return result, prev
}
