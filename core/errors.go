package core

import "github.com/pkg/errors"

// The error causes of the demodulation core. Stage errors carry additional
// context; use errors.Cause to get back to one of these.
var (
	// ErrInvalidSpecification indicates a malformed filter or pipeline
	// configuration, detected before any samples are processed.
	ErrInvalidSpecification = errors.New("invalid specification")

	// ErrIncompatibleDecimation indicates a decimation factor that would
	// place the new Nyquist frequency inside the filter's passband.
	ErrIncompatibleDecimation = errors.New("incompatible decimation factor")

	// ErrRateMismatch indicates a non-positive or inconsistent sample rate.
	ErrRateMismatch = errors.New("sample rate mismatch")

	// ErrUnsupportedMode indicates a demodulation mode that the called
	// detector does not implement.
	ErrUnsupportedMode = errors.New("unsupported demodulation mode")
)
