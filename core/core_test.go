package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrequencyRange_Width(t *testing.T) {
	tt := []struct {
		from     Frequency
		to       Frequency
		expected Frequency
	}{
		{0, 48000, 48000},
		{7000000, 7200000, 200000},
		{-12000, 12000, 24000},
	}

	for i, tc := range tt {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			actual := FrequencyRange{tc.from, tc.to}.Width()
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestFrequencyRange_Center(t *testing.T) {
	tt := []struct {
		from     Frequency
		to       Frequency
		expected Frequency
	}{
		{0, 48000, 24000},
		{-5000, 5000, 0},
		{300, 2700, 1500},
	}

	for i, tc := range tt {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			actual := FrequencyRange{tc.from, tc.to}.Center()
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestNyquist(t *testing.T) {
	assert.Equal(t, Frequency(24000), Frequency(48000).Nyquist())
	assert.Equal(t, Frequency(1000000), Frequency(2000000).Nyquist())
}

func TestModeByName(t *testing.T) {
	tt := []struct {
		name     string
		expected Mode
		valid    bool
	}{
		{"am", ModeAM, true},
		{"AM", ModeAM, true},
		{"fm", ModeFM, true},
		{"usb", ModeUSB, true},
		{"lsb", ModeLSB, true},
		{"dsb", ModeDSB, true},
		{"cw", 0, false},
		{"", 0, false},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			actual, valid := ModeByName(tc.name)
			assert.Equal(t, tc.valid, valid)
			if tc.valid {
				assert.Equal(t, tc.expected, actual)
				assert.Equal(t, tc.expected.String(), actual.String())
			}
		})
	}
}
