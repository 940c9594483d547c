// Package rx loads recorded sample captures. It knows the two raw formats
// the demodulation pipeline is commonly fed with: complex64 interleaved
// floats as written by GNU Radio, and unsigned 8-bit IQ pairs as written by
// RTL-SDR tools. The declared sample rate always travels separately; no
// capture format carries it.
package rx

import (
	"encoding/binary"
	"io"
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/ftl/demod/core"
)

const complex64Size = 8 // bytes per single-precision complex sample

// LoadComplex64 reads a whole capture of little-endian complex64 samples.
func LoadComplex64(in io.Reader) ([]complex128, error) {
	buf, err := io.ReadAll(in)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read complex64 capture")
	}
	if len(buf)%complex64Size != 0 {
		return nil, errors.Errorf("capture length %d is not a multiple of %d bytes", len(buf), complex64Size)
	}

	result := make([]complex128, len(buf)/complex64Size)
	for i := range result {
		o := i * complex64Size
		re := math.Float32frombits(binary.LittleEndian.Uint32(buf[o:]))
		im := math.Float32frombits(binary.LittleEndian.Uint32(buf[o+4:]))
		result[i] = complex(float64(re), float64(im))
	}
	return result, nil
}

// LoadComplex64Window reads the part of a complex64 capture between the
// given start and end times, based on the declared sample rate.
func LoadComplex64Window(in io.ReadSeeker, rate core.Frequency, from, to time.Duration) ([]complex128, error) {
	if rate <= 0 {
		return nil, errors.Errorf("cannot window a capture without a positive sample rate, got %v", rate)
	}
	if from < 0 || to <= from {
		return nil, errors.Errorf("invalid time window [%v,%v]", from, to)
	}

	startSample := int64(from.Seconds() * float64(rate))
	count := int64((to - from).Seconds() * float64(rate))
	if _, err := in.Seek(startSample*complex64Size, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "cannot seek to the start of the time window")
	}

	result, err := LoadComplex64(io.LimitReader(in, count*complex64Size))
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, errors.Errorf("the time window [%v,%v] is past the end of the capture", from, to)
	}
	return result, nil
}

// LoadIQ8 reads a whole capture of unsigned 8-bit IQ pairs.
func LoadIQ8(in io.Reader) ([]complex128, error) {
	buf, err := io.ReadAll(in)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read block of 8-bit samples")
	}
	if len(buf)%2 != 0 {
		return nil, errors.Errorf("capture length %d is not a multiple of 2 bytes", len(buf))
	}

	result := make([]complex128, len(buf)/2)
	for i := range result {
		iSample := normalizeSampleUint8(buf[i*2])
		qSample := normalizeSampleUint8(buf[i*2+1])
		result[i] = complex(iSample, qSample)
	}
	return result, nil
}

func normalizeSampleUint8(s byte) float64 {
	return (float64(s) - float64(math.MaxInt8)) / float64(math.MaxInt8)
}
