package core

import (
	"fmt"
	"strings"
)

// Frequency represents a frequency in Hz.
type Frequency float64

func (f Frequency) String() string {
	return fmt.Sprintf("%.2fHz", f)
}

// Nyquist frequency of a sequence sampled at this rate.
func (f Frequency) Nyquist() Frequency {
	return f / 2
}

// FrequencyRange represents a range of frequencies.
type FrequencyRange struct {
	From, To Frequency
}

func (r FrequencyRange) String() string {
	return fmt.Sprintf("[%v,%v]", r.From, r.To)
}

// Center frequency of this range.
func (r FrequencyRange) Center() Frequency {
	return r.From + (r.To-r.From)/2
}

// Width of the frequency range.
func (r FrequencyRange) Width() Frequency {
	return r.To - r.From
}

// Contains the given frequency.
func (r FrequencyRange) Contains(f Frequency) bool {
	return f >= r.From && f <= r.To
}

// Mode is a demodulation mode. The set of modes is closed.
type Mode int

// All demodulation modes.
const (
	ModeAM Mode = iota
	ModeFM
	ModeUSB
	ModeLSB
	ModeDSB
)

func (m Mode) String() string {
	switch m {
	case ModeAM:
		return "am"
	case ModeFM:
		return "fm"
	case ModeUSB:
		return "usb"
	case ModeLSB:
		return "lsb"
	case ModeDSB:
		return "dsb"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ModeByName returns the mode with the given name.
func ModeByName(name string) (Mode, bool) {
	switch strings.ToLower(name) {
	case "am":
		return ModeAM, true
	case "fm":
		return ModeFM, true
	case "usb":
		return ModeUSB, true
	case "lsb":
		return ModeLSB, true
	case "dsb":
		return ModeDSB, true
	default:
		return 0, false
	}
}

// Configuration parameters of the application.
type Configuration struct {
	AudioRate     Frequency
	FMDeviation   Frequency
	FilterTaps    int
	DeemphasisTau float64
}
