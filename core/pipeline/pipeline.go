// Package pipeline composes filter design, filtering, detection, and
// decimation into complete demodulation pipelines, selected by mode.
package pipeline

import (
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/ftl/demod/core"
	"github.com/ftl/demod/core/demod"
	"github.com/ftl/demod/core/filter"
)

const (
	defaultTaps         = 51
	defaultAMBandwidth  = core.Frequency(10000)
	defaultSSBBandwidth = core.Frequency(5000)
	defaultFMDeviation  = core.Frequency(75000)

	// The FM channel filter passes the carrier plus its significant
	// sidebands, the anti-alias filter leaves a transition band below the
	// decimated Nyquist frequency.
	fmChannelFactor   = 1.5
	antiAliasFraction = 0.4
)

// Config describes one demodulation pipeline.
type Config struct {
	Mode       core.Mode
	SampleRate core.Frequency // rate of the input sequence
	AudioRate  core.Frequency // output rate, must divide SampleRate

	Bandwidth     core.Frequency // channel filter cutoff, 0 for the mode's default
	Deviation     core.Frequency // FM deviation sensitivity, 0 for broadcast deviation
	CarrierOffset core.Frequency // offset of the wanted signal from 0Hz

	RemoveDC      bool           // AM: subtract the mean envelope level
	Rumble        core.Frequency // AM: optional high-pass cutoff against carrier beating, 0 to disable
	DeemphasisTau float64        // FM: optional de-emphasis time constant, 0 to disable

	FilterTaps int         // 0 for the default kernel size
	Logger     *log.Logger // optional, the pipeline itself stays silent without it
}

// Result is the demodulated baseband signal and the rate at which it is
// sampled. It is owned by the caller; the pipeline retains no reference.
type Result struct {
	Samples []float64
	Rate    core.Frequency
}

// Pipeline demodulates sample sequences according to its configuration.
//
// New validates the configuration; Run executes synchronously and either
// completes with a Result or fails with the first stage error. There is no
// partial output and no retained state: running the same pipeline twice on
// the same input yields bit-identical results, and one pipeline may be used
// from multiple goroutines concurrently.
type Pipeline struct {
	config     Config
	decimation int

	bandwidth core.Frequency
	deviation core.Frequency
	taps      int
}

// New validates the given configuration and returns a ready-to-run pipeline.
func New(config Config) (*Pipeline, error) {
	switch config.Mode {
	case core.ModeAM, core.ModeFM, core.ModeUSB, core.ModeLSB, core.ModeDSB:
	default:
		return nil, errors.Wrapf(core.ErrUnsupportedMode, "unknown mode %v", config.Mode)
	}
	if config.SampleRate <= 0 {
		return nil, errors.Wrapf(core.ErrInvalidSpecification, "sample rate %v must be positive", config.SampleRate)
	}
	if config.AudioRate <= 0 {
		return nil, errors.Wrapf(core.ErrInvalidSpecification, "audio rate %v must be positive", config.AudioRate)
	}
	if config.AudioRate > config.SampleRate {
		return nil, errors.Wrapf(core.ErrInvalidSpecification, "audio rate %v must not exceed the sample rate %v", config.AudioRate, config.SampleRate)
	}

	decimation := int(config.SampleRate / config.AudioRate)
	if core.Frequency(decimation)*config.AudioRate != config.SampleRate {
		return nil, errors.Wrapf(core.ErrInvalidSpecification, "audio rate %v must be an integer divisor of the sample rate %v", config.AudioRate, config.SampleRate)
	}

	result := &Pipeline{
		config:     config,
		decimation: decimation,
		deviation:  config.Deviation,
		bandwidth:  config.Bandwidth,
		taps:       config.FilterTaps,
	}
	if result.taps == 0 {
		result.taps = defaultTaps
	}
	if result.deviation == 0 {
		result.deviation = defaultFMDeviation
	}
	if result.bandwidth == 0 {
		switch config.Mode {
		case core.ModeAM:
			result.bandwidth = defaultAMBandwidth
		case core.ModeFM:
			result.bandwidth = fmChannelFactor * result.deviation
		default:
			result.bandwidth = defaultSSBBandwidth
		}
	}

	channelRate := config.AudioRate
	if config.Mode == core.ModeFM {
		channelRate = config.SampleRate
	}
	if result.bandwidth >= channelRate.Nyquist() {
		return nil, errors.Wrapf(core.ErrInvalidSpecification, "bandwidth %v must be below the Nyquist frequency %v", result.bandwidth, channelRate.Nyquist())
	}
	if config.Rumble < 0 || config.Rumble >= config.AudioRate.Nyquist() {
		return nil, errors.Wrapf(core.ErrInvalidSpecification, "rumble cutoff %v must be below the Nyquist frequency %v", config.Rumble, config.AudioRate.Nyquist())
	}
	if config.DeemphasisTau < 0 {
		return nil, errors.Wrapf(core.ErrInvalidSpecification, "de-emphasis time constant %g must not be negative", config.DeemphasisTau)
	}

	result.debug("pipeline configured", "mode", config.Mode, "decimation", decimation, "bandwidth", result.bandwidth, "taps", result.taps)
	return result, nil
}

// Demodulate runs a one-off pipeline over the given sequence, keeping the
// output at the input's sample rate. Deviation is only used for FM and may be
// 0 for the broadcast default.
func Demodulate(mode core.Mode, samples []complex128, rate, bandwidth, deviation core.Frequency) (Result, error) {
	p, err := New(Config{
		Mode:       mode,
		SampleRate: rate,
		AudioRate:  rate,
		Bandwidth:  bandwidth,
		Deviation:  deviation,
	})
	if err != nil {
		return Result{}, err
	}
	return p.Run(samples)
}

// Run demodulates the given sequence.
func (p *Pipeline) Run(samples []complex128) (Result, error) {
	switch p.config.Mode {
	case core.ModeAM:
		return p.runAM(samples)
	case core.ModeFM:
		return p.runFM(samples)
	default:
		return p.runCoherent(samples)
	}
}

func (p *Pipeline) runAM(samples []complex128) (Result, error) {
	baseband := demod.ShiftFrequency(samples, p.config.CarrierOffset, p.config.SampleRate)

	baseband, err := p.decimate(baseband)
	if err != nil {
		return Result{}, err
	}

	channel, err := filter.LowPass(p.bandwidth, p.config.AudioRate, p.taps)
	if err != nil {
		return Result{}, errors.Wrap(err, "AM channel filter")
	}
	baseband = channel.Apply(baseband)

	envelope, err := demod.Envelope(baseband, p.config.AudioRate, p.config.RemoveDC)
	if err != nil {
		return Result{}, err
	}

	if p.config.Rumble > 0 {
		rumble, err := filter.HighPass(p.config.Rumble, p.config.AudioRate, p.taps)
		if err != nil {
			return Result{}, errors.Wrap(err, "AM rumble filter")
		}
		envelope = rumble.ApplyReal(envelope)
	}

	return Result{Samples: envelope, Rate: p.config.AudioRate}, nil
}

func (p *Pipeline) runFM(samples []complex128) (Result, error) {
	baseband := demod.ShiftFrequency(samples, p.config.CarrierOffset, p.config.SampleRate)

	channel, err := filter.LowPass(p.bandwidth, p.config.SampleRate, p.taps)
	if err != nil {
		return Result{}, errors.Wrap(err, "FM channel filter")
	}
	baseband = channel.Apply(baseband)

	audio, err := demod.Quadrature(baseband, p.config.SampleRate, p.deviation)
	if err != nil {
		return Result{}, err
	}

	// Decimation happens after detection: a wideband FM channel is often
	// wider than the audio rate, the demodulated audio is not.
	audio, err = p.decimateReal(audio)
	if err != nil {
		return Result{}, err
	}

	if p.config.DeemphasisTau > 0 {
		deemphasis, err := filter.NewDeemphasis(p.config.AudioRate, p.config.DeemphasisTau)
		if err != nil {
			return Result{}, errors.Wrap(err, "FM de-emphasis")
		}
		audio, _ = deemphasis.Apply(audio, 0)
	}

	return Result{Samples: audio, Rate: p.config.AudioRate}, nil
}

func (p *Pipeline) runCoherent(samples []complex128) (Result, error) {
	detected, err := demod.Coherent(samples, p.config.SampleRate, p.config.CarrierOffset, p.config.Mode)
	if err != nil {
		return Result{}, err
	}

	detected, err = p.decimateReal(detected)
	if err != nil {
		return Result{}, err
	}

	channel, err := filter.LowPass(p.bandwidth, p.config.AudioRate, p.taps)
	if err != nil {
		return Result{}, errors.Wrapf(err, "%v channel filter", p.config.Mode)
	}
	detected = channel.ApplyReal(detected)

	return Result{Samples: detected, Rate: p.config.AudioRate}, nil
}

func (p *Pipeline) decimate(samples []complex128) ([]complex128, error) {
	if p.decimation == 1 {
		return samples, nil
	}
	antiAlias, err := filter.LowPass(antiAliasFraction*p.config.AudioRate, p.config.SampleRate, p.taps)
	if err != nil {
		return nil, errors.Wrap(err, "anti-alias filter")
	}
	return antiAlias.Decimate(samples, p.decimation)
}

func (p *Pipeline) decimateReal(samples []float64) ([]float64, error) {
	if p.decimation == 1 {
		return samples, nil
	}
	antiAlias, err := filter.LowPass(antiAliasFraction*p.config.AudioRate, p.config.SampleRate, p.taps)
	if err != nil {
		return nil, errors.Wrap(err, "anti-alias filter")
	}
	return antiAlias.DecimateReal(samples, p.decimation)
}

func (p *Pipeline) debug(msg string, keyvals ...interface{}) {
	if p.config.Logger == nil {
		return
	}
	p.config.Logger.Debug(msg, keyvals...)
}
