// Package filter designs and applies the FIR filters that condition sample
// sequences before and after detection.
//
// All designed filters are linear-phase FIR filters built with the
// windowed-sinc method and a Blackman window. The group delay is constant,
// exactly (taps-1)/2 samples; consumers that align demodulated output with a
// reference must compensate by this amount.
package filter

import (
	"math"

	"github.com/mjibson/go-dsp/window"
	"github.com/pkg/errors"

	"github.com/ftl/demod/core"
)

// Kind of a designed filter.
type Kind int

// All filter kinds.
const (
	LowPassKind Kind = iota
	HighPassKind
	BandPassKind
)

func (k Kind) String() string {
	switch k {
	case LowPassKind:
		return "low-pass"
	case HighPassKind:
		return "high-pass"
	case BandPassKind:
		return "band-pass"
	default:
		return "unknown"
	}
}

// FIR is an immutable set of linear-phase FIR filter coefficients, designed
// for a specific sample rate. It is safe to share one FIR across concurrent
// Apply calls; the coefficients are never modified after design.
type FIR struct {
	taps     []float64
	kind     Kind
	rate     core.Frequency
	passband core.FrequencyRange
}

// Taps returns a copy of the filter coefficients.
func (f *FIR) Taps() []float64 {
	result := make([]float64, len(f.taps))
	copy(result, f.taps)
	return result
}

// Kind of this filter.
func (f *FIR) Kind() Kind {
	return f.kind
}

// Rate is the sample rate this filter was designed for.
func (f *FIR) Rate() core.Frequency {
	return f.rate
}

// Passband edges of this filter in Hz, at the design rate.
func (f *FIR) Passband() core.FrequencyRange {
	return f.passband
}

// GroupDelay of this filter in samples.
func (f *FIR) GroupDelay() int {
	return (len(f.taps) - 1) / 2
}

// LowPass designs a low-pass FIR filter with the given cutoff frequency,
// normalized for unity gain at DC.
func LowPass(cutoff, rate core.Frequency, taps int) (*FIR, error) {
	if err := checkTaps(taps); err != nil {
		return nil, err
	}
	if err := checkCutoff(cutoff, rate); err != nil {
		return nil, err
	}

	coeff := lowPassKernel(float64(cutoff/rate), taps)
	return &FIR{
		taps:     coeff,
		kind:     LowPassKind,
		rate:     rate,
		passband: core.FrequencyRange{From: 0, To: cutoff},
	}, nil
}

// HighPass designs a high-pass FIR filter with the given cutoff frequency,
// normalized for unity gain at the Nyquist frequency.
func HighPass(cutoff, rate core.Frequency, taps int) (*FIR, error) {
	if err := checkTaps(taps); err != nil {
		return nil, err
	}
	if err := checkCutoff(cutoff, rate); err != nil {
		return nil, err
	}

	// Spectral inversion of the complementary low-pass kernel.
	coeff := lowPassKernel(float64(cutoff/rate), taps)
	for i := range coeff {
		coeff[i] = -coeff[i]
	}
	coeff[(taps-1)/2] += 1

	return &FIR{
		taps:     coeff,
		kind:     HighPassKind,
		rate:     rate,
		passband: core.FrequencyRange{From: cutoff, To: rate.Nyquist()},
	}, nil
}

// BandPass designs a band-pass FIR filter with the given edge frequencies,
// normalized for unity gain at the center of the passband.
func BandPass(low, high, rate core.Frequency, taps int) (*FIR, error) {
	if err := checkTaps(taps); err != nil {
		return nil, err
	}
	if err := checkCutoff(low, rate); err != nil {
		return nil, err
	}
	if err := checkCutoff(high, rate); err != nil {
		return nil, err
	}
	if low >= high {
		return nil, errors.Wrapf(core.ErrInvalidSpecification, "lower band edge %v must be below the upper band edge %v", low, high)
	}

	f1 := float64(low / rate)
	f2 := float64(high / rate)
	shape := window.Blackman(taps)
	center := 0.5 * float64(taps-1)
	coeff := make([]float64, taps)
	for j := range coeff {
		t := float64(j) - center
		var sinc float64
		if t == 0 {
			sinc = 2 * (f2 - f1)
		} else {
			sinc = math.Sin(2*math.Pi*f2*t)/(math.Pi*t) - math.Sin(2*math.Pi*f1*t)/(math.Pi*t)
		}
		coeff[j] = sinc * shape[j]
	}

	// Unity gain at the center of the passband: with a symmetric kernel the
	// frequency response at ω is the plain cosine sum over all taps.
	ω := math.Pi * (f1 + f2)
	var g float64
	for j := range coeff {
		g += coeff[j] * math.Cos((float64(j)-center)*ω)
	}
	for j := range coeff {
		coeff[j] /= g
	}

	return &FIR{
		taps:     coeff,
		kind:     BandPassKind,
		rate:     rate,
		passband: core.FrequencyRange{From: low, To: high},
	}, nil
}

func lowPassKernel(cutoffRate float64, taps int) []float64 {
	shape := window.Blackman(taps)
	center := (taps - 1) / 2
	coeff := make([]float64, taps)
	sum := 0.0
	for i := range coeff {
		t := float64(i - center)
		coeff[i] = sinc(2.0*cutoffRate*t) * shape[i]
		sum += coeff[i]
	}
	for i := range coeff {
		coeff[i] /= sum
	}
	return coeff
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1.0
	}
	return math.Sin(math.Pi*x) / (math.Pi * x)
}

func checkTaps(taps int) error {
	if taps < 3 {
		return errors.Wrapf(core.ErrInvalidSpecification, "%d taps are not enough for a FIR kernel", taps)
	}
	if taps%2 == 0 {
		return errors.Wrapf(core.ErrInvalidSpecification, "the number of taps must be odd, got %d", taps)
	}
	return nil
}

func checkCutoff(cutoff, rate core.Frequency) error {
	if rate <= 0 {
		return errors.Wrapf(core.ErrInvalidSpecification, "sample rate %v must be positive", rate)
	}
	if cutoff <= 0 {
		return errors.Wrapf(core.ErrInvalidSpecification, "cutoff frequency %v must be positive", cutoff)
	}
	if cutoff >= rate.Nyquist() {
		return errors.Wrapf(core.ErrInvalidSpecification, "cutoff frequency %v must be below the Nyquist frequency %v", cutoff, rate.Nyquist())
	}
	return nil
}
