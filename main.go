package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/ftl/demod/core"
	"github.com/ftl/demod/core/audio"
	"github.com/ftl/demod/core/cfg"
	"github.com/ftl/demod/core/pipeline"
	"github.com/ftl/demod/core/rx"
)

func main() {
	var (
		modeName   = pflag.StringP("mode", "m", "am", "demodulation mode (am, fm, usb, lsb, dsb)")
		sampleRate = pflag.Float64P("rate", "r", 0, "sample rate of the capture in Hz")
		audioRate  = pflag.Float64P("audio-rate", "a", 0, "output sample rate in Hz")
		bandwidth  = pflag.Float64P("bandwidth", "b", 0, "channel filter cutoff in Hz (0 uses the mode's default)")
		deviation  = pflag.Float64P("deviation", "d", 0, "FM deviation in Hz")
		offset     = pflag.Float64P("offset", "f", 0, "carrier offset from 0Hz in the capture")
		from       = pflag.Duration("from", 0, "start of the capture time window")
		to         = pflag.Duration("to", 0, "end of the capture time window (0 reads to the end)")
		iq8        = pflag.Bool("iq8", false, "read unsigned 8-bit IQ pairs instead of complex64")
		removeDC   = pflag.Bool("remove-dc", false, "AM: subtract the mean envelope level")
		rumble     = pflag.Float64("rumble", 0, "AM: high-pass cutoff in Hz against carrier beating (0 disables)")
		deemphasis = pflag.Float64("deemphasis", 0, "FM: de-emphasis time constant in seconds (0 disables)")
		output     = pflag.StringP("output", "o", "", "output WAV filename")
		verbose    = pflag.BoolP("verbose", "v", false, "enable debug output")
	)
	pflag.Parse()

	logger := log.New(os.Stderr)
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	configuration, err := cfg.Load()
	if err != nil {
		logger.Debug("using static configuration", "err", err)
		configuration = cfg.Static()
	}
	if *audioRate != 0 {
		configuration.AudioRate = core.Frequency(*audioRate)
	}
	if *deviation != 0 {
		configuration.FMDeviation = core.Frequency(*deviation)
	}
	if *deemphasis != 0 {
		configuration.DeemphasisTau = *deemphasis
	}

	mode, ok := core.ModeByName(*modeName)
	if !ok {
		logger.Fatal("unknown demodulation mode", "mode", *modeName)
	}
	if *sampleRate <= 0 {
		logger.Fatal("the sample rate of the capture is required (-r)")
	}
	if pflag.NArg() != 1 {
		logger.Fatal("exactly one capture file is required")
	}

	samples, err := loadCapture(pflag.Arg(0), core.Frequency(*sampleRate), *from, *to, *iq8)
	if err != nil {
		logger.Fatal("cannot load capture", "err", err)
	}
	logger.Info("capture loaded", "samples", len(samples), "rate", *sampleRate)

	demodulator, err := pipeline.New(pipeline.Config{
		Mode:          mode,
		SampleRate:    core.Frequency(*sampleRate),
		AudioRate:     configuration.AudioRate,
		Bandwidth:     core.Frequency(*bandwidth),
		Deviation:     configuration.FMDeviation,
		CarrierOffset: core.Frequency(*offset),
		RemoveDC:      *removeDC,
		Rumble:        core.Frequency(*rumble),
		DeemphasisTau: configuration.DeemphasisTau,
		FilterTaps:    configuration.FilterTaps,
		Logger:        logger,
	})
	if err != nil {
		logger.Fatal("invalid pipeline configuration", "err", err)
	}

	result, err := demodulator.Run(samples)
	if err != nil {
		logger.Fatal("demodulation failed", "err", err)
	}
	logger.Info("demodulation complete", "samples", len(result.Samples), "rate", float64(result.Rate))

	if *output == "" {
		return
	}
	if _, err := os.Stat(*output); err == nil {
		logger.Warn("did NOT overwrite existing file", "filename", *output)
		return
	}
	if err := writeWAV(*output, result); err != nil {
		logger.Fatal("cannot write WAV file", "err", err)
	}
	logger.Info("audio written", "filename", *output)
}

func loadCapture(filename string, rate core.Frequency, from, to time.Duration, iq8 bool) ([]complex128, error) {
	in, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	switch {
	case iq8:
		return rx.LoadIQ8(in)
	case to > from:
		return rx.LoadComplex64Window(in, rate, from, to)
	default:
		return rx.LoadComplex64(in)
	}
}

func writeWAV(filename string, result pipeline.Result) error {
	out, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer out.Close()

	return audio.WriteWAV(out, result.Samples, result.Rate)
}
