// Package audio hands demodulated output to audio consumers.
package audio

import (
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"

	"github.com/ftl/demod/core"
)

// Normalize scales the given signal so that its peak magnitude is 1. An
// all-zero signal is returned unchanged.
func Normalize(samples []float64) []float64 {
	result := make([]float64, len(samples))
	var peak float64
	for _, s := range samples {
		peak = math.Max(peak, math.Abs(s))
	}
	if peak == 0 {
		return result
	}
	for i, s := range samples {
		result[i] = s / peak
	}
	return result
}

// WriteWAV writes the given signal as peak-normalized 16-bit mono PCM.
func WriteWAV(out io.WriteSeeker, samples []float64, rate core.Frequency) error {
	if rate <= 0 {
		return errors.Errorf("cannot write a WAV file without a positive sample rate, got %v", rate)
	}

	normalized := Normalize(samples)
	data := make([]int, len(normalized))
	for i, s := range normalized {
		data[i] = int(s * math.MaxInt16)
	}

	encoder := wav.NewEncoder(out, int(rate), 16, 1, 1)
	err := encoder.Write(&goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: 1,
			SampleRate:  int(rate),
		},
		Data:           data,
		SourceBitDepth: 16,
	})
	if err != nil {
		return errors.Wrap(err, "cannot write WAV data")
	}
	return errors.Wrap(encoder.Close(), "cannot finalize WAV file")
}
