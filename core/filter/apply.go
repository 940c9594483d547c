package filter

import (
	"github.com/pkg/errors"

	"github.com/ftl/demod/core"
)

// State carries the tap history of a FIR filter across chunked Apply calls.
// It is owned by the caller and passed explicitly; a fresh state behaves as if
// the sequence were preceded by zeros. Chunked filtering with a carried state
// is bit-identical to filtering the concatenated sequence in one call.
type State struct {
	history []complex128
}

// NewState returns a fresh, zero-primed filter state.
func (f *FIR) NewState() State {
	return State{history: make([]complex128, len(f.taps)-1)}
}

// Apply filters the given sequence. The sequence is primed with zero history,
// so the output has exactly the same length as the input and the result is
// deterministic for identical inputs.
func (f *FIR) Apply(samples []complex128) []complex128 {
	result, _ := f.ApplyChunk(f.NewState(), samples)
	return result
}

// ApplyChunk filters one chunk of a longer sequence, continuing from the
// given state. It returns the filtered chunk and the state for the next call.
func (f *FIR) ApplyChunk(state State, samples []complex128) ([]complex128, State) {
	order := len(f.taps)
	buf := make([]complex128, order-1+len(samples))
	copy(buf, state.history)
	copy(buf[order-1:], samples)

	result := make([]complex128, len(samples))
	for i := range result {
		var out complex128
		for j, c := range f.taps {
			out += buf[i+order-1-j] * complex(c, 0)
		}
		result[i] = out
	}

	next := State{history: make([]complex128, order-1)}
	copy(next.history, buf[len(buf)-(order-1):])
	return result, next
}

// ApplyReal filters a real-valued sequence with the same edge handling as
// Apply.
func (f *FIR) ApplyReal(samples []float64) []float64 {
	order := len(f.taps)
	buf := make([]float64, order-1+len(samples))
	copy(buf[order-1:], samples)

	result := make([]float64, len(samples))
	for i := range result {
		var out float64
		for j, c := range f.taps {
			out += buf[i+order-1-j] * c
		}
		result[i] = out
	}
	return result
}

// Decimate filters the given sequence and keeps every factor-th filtered
// sample, starting with sample 0. The output has ⌊len(samples)/factor⌋
// samples at 1/factor of the input rate. Each kept sample is the full
// convolution at that point, so decimation is equivalent to Apply followed by
// downsampling.
func (f *FIR) Decimate(samples []complex128, factor int) ([]complex128, error) {
	if err := f.checkDecimation(factor); err != nil {
		return nil, err
	}

	order := len(f.taps)
	buf := make([]complex128, order-1+len(samples))
	copy(buf[order-1:], samples)

	result := make([]complex128, len(samples)/factor)
	for i := range result {
		n := i * factor
		var out complex128
		for j, c := range f.taps {
			out += buf[n+order-1-j] * complex(c, 0)
		}
		result[i] = out
	}
	return result, nil
}

// DecimateReal is Decimate for real-valued sequences.
func (f *FIR) DecimateReal(samples []float64, factor int) ([]float64, error) {
	if err := f.checkDecimation(factor); err != nil {
		return nil, err
	}

	order := len(f.taps)
	buf := make([]float64, order-1+len(samples))
	copy(buf[order-1:], samples)

	result := make([]float64, len(samples)/factor)
	for i := range result {
		n := i * factor
		var out float64
		for j, c := range f.taps {
			out += buf[n+order-1-j] * c
		}
		result[i] = out
	}
	return result, nil
}

func (f *FIR) checkDecimation(factor int) error {
	if factor < 1 {
		return errors.Wrapf(core.ErrInvalidSpecification, "decimation factor %d must be at least 1", factor)
	}
	newNyquist := f.rate / core.Frequency(2*factor)
	if newNyquist < f.passband.To {
		return errors.Wrapf(core.ErrIncompatibleDecimation, "decimating %v by %d places the Nyquist frequency %v below the passband edge %v", f.rate, factor, newNyquist, f.passband.To)
	}
	return nil
}
