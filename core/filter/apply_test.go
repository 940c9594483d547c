package filter

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/ftl/demod/core"
)

func TestApply(t *testing.T) {
	testCases := []struct {
		samples  []complex128
		taps     []float64
		expected []complex128
	}{
		{
			[]complex128{1},
			[]float64{11},
			[]complex128{11},
		},
		{
			[]complex128{1, 2},
			[]float64{11, 7},
			[]complex128{11, 29},
		},
		{
			[]complex128{1, 2, 3},
			[]float64{11, 7},
			[]complex128{11, 29, 47},
		},
		{
			[]complex128{1, 2, 3, 4, 5},
			[]float64{11, 7},
			[]complex128{11, 29, 47, 65, 83},
		},
	}
	for _, tC := range testCases {
		t.Run(fmt.Sprintf("%v", tC.samples), func(t *testing.T) {
			f := &FIR{taps: tC.taps, rate: 48000, passband: core.FrequencyRange{To: 10000}}
			actual := f.Apply(tC.samples)
			assert.Equal(t, tC.expected, actual)
		})
	}
}

func TestApplyRealMatchesComplex(t *testing.T) {
	f, err := LowPass(10000, 48000, 51)
	require.NoError(t, err)

	real := realTone(512, 0.1)
	complexSamples := make([]complex128, len(real))
	for i, s := range real {
		complexSamples[i] = complex(s, 0)
	}

	fromReal := f.ApplyReal(real)
	fromComplex := f.Apply(complexSamples)
	for i := range fromReal {
		assert.Equal(t, complex(fromReal[i], 0), fromComplex[i], "sample %d", i)
	}
}

func TestDecimate(t *testing.T) {
	testCases := []struct {
		samples    []complex128
		decimation int
		expected   []complex128
	}{
		{
			[]complex128{1},
			1,
			[]complex128{1},
		},
		{
			[]complex128{1, 2, 3, 4},
			2,
			[]complex128{1, 3},
		},
		{
			[]complex128{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
			4,
			[]complex128{1, 5, 9},
		},
	}
	for _, tC := range testCases {
		t.Run(fmt.Sprintf("%v", tC.samples), func(t *testing.T) {
			f := &FIR{taps: []float64{1}, rate: 48000, passband: core.FrequencyRange{To: 1000}}
			actual, err := f.Decimate(tC.samples, tC.decimation)
			require.NoError(t, err)
			assert.Equal(t, tC.expected, actual)
		})
	}
}

func TestDecimateLength(t *testing.T) {
	f, err := LowPass(4000, 48000, 51)
	require.NoError(t, err)

	tt := []struct {
		length     int
		decimation int
		expected   int
	}{
		{4096, 4, 1024},
		{4097, 4, 1024},
		{4099, 4, 1024},
		{4100, 4, 1025},
		{7, 4, 1},
		{3, 4, 0},
	}
	for _, tc := range tt {
		t.Run(fmt.Sprintf("%d by %d", tc.length, tc.decimation), func(t *testing.T) {
			actual, err := f.Decimate(make([]complex128, tc.length), tc.decimation)
			require.NoError(t, err)
			assert.Len(t, actual, tc.expected)

			actualReal, err := f.DecimateReal(make([]float64, tc.length), tc.decimation)
			require.NoError(t, err)
			assert.Len(t, actualReal, tc.expected)
		})
	}
}

func TestIncompatibleDecimation(t *testing.T) {
	f, err := LowPass(10000, 48000, 51)
	require.NoError(t, err)

	// decimating by 4 puts the Nyquist frequency at 6kHz, inside the passband
	_, err = f.Decimate(make([]complex128, 64), 4)
	require.Error(t, err)
	assert.Equal(t, core.ErrIncompatibleDecimation, errors.Cause(err))

	_, err = f.DecimateReal(make([]float64, 64), 4)
	require.Error(t, err)
	assert.Equal(t, core.ErrIncompatibleDecimation, errors.Cause(err))

	// decimating by 2 keeps the passband below 12kHz
	_, err = f.Decimate(make([]complex128, 64), 2)
	assert.NoError(t, err)

	_, err = f.Decimate(make([]complex128, 64), 0)
	require.Error(t, err)
	assert.Equal(t, core.ErrInvalidSpecification, errors.Cause(err))
}

func TestDecimateMatchesApply(t *testing.T) {
	f, err := LowPass(4000, 48000, 51)
	require.NoError(t, err)

	samples := make([]complex128, 512)
	for i := range samples {
		samples[i] = complex(float64(i%17), float64(i%5))
	}

	filtered := f.Apply(samples)
	decimated, err := f.Decimate(samples, 4)
	require.NoError(t, err)

	for i := range decimated {
		assert.Equal(t, filtered[i*4], decimated[i], "sample %d", i)
	}
}

func TestChunkedApplyEqualsWhole(t *testing.T) {
	f, err := LowPass(10000, 48000, 21)
	require.NoError(t, err)

	rapid.Check(t, func(t *rapid.T) {
		values := rapid.SliceOfN(rapid.Float64Range(-1, 1), 1, 256).Draw(t, "values")
		chunkSize := rapid.IntRange(1, len(values)).Draw(t, "chunkSize")

		samples := make([]complex128, len(values))
		for i, v := range values {
			samples[i] = complex(v, -v)
		}

		whole := f.Apply(samples)

		chunked := make([]complex128, 0, len(samples))
		state := f.NewState()
		for i := 0; i < len(samples); i += chunkSize {
			end := i + chunkSize
			if end > len(samples) {
				end = len(samples)
			}
			var out []complex128
			out, state = f.ApplyChunk(state, samples[i:end])
			chunked = append(chunked, out...)
		}

		require.Len(t, chunked, len(whole))
		for i := range whole {
			if whole[i] != chunked[i] {
				t.Fatalf("chunked filtering diverged at sample %d: %v != %v", i, whole[i], chunked[i])
			}
		}
	})
}

func TestDeemphasisStepResponse(t *testing.T) {
	d, err := NewDeemphasis(48000, 50e-6)
	require.NoError(t, err)

	step := make([]float64, 48000)
	for i := range step {
		step[i] = 1.0
	}

	out, last := d.Apply(step, 0)
	for i := 1; i < len(out); i++ {
		require.GreaterOrEqual(t, out[i], out[i-1], "step response must not decrease at sample %d", i)
		require.LessOrEqual(t, out[i], 1.0, "step response must not overshoot at sample %d", i)
	}
	assert.InDelta(t, 1.0, last, 1e-6, "step response must settle at the input level")
}

func TestDeemphasisChunkedEqualsWhole(t *testing.T) {
	d, err := NewDeemphasis(48000, 75e-6)
	require.NoError(t, err)

	samples := realTone(512, 0.01)

	whole, _ := d.Apply(samples, 0)

	first, state := d.Apply(samples[:100], 0)
	second, _ := d.Apply(samples[100:], state)
	chunked := append(first, second...)

	assert.Equal(t, whole, chunked)
}

func TestDeemphasisInvalidSpecification(t *testing.T) {
	_, err := NewDeemphasis(0, 50e-6)
	require.Error(t, err)
	assert.Equal(t, core.ErrInvalidSpecification, errors.Cause(err))

	_, err = NewDeemphasis(48000, 0)
	require.Error(t, err)
	assert.Equal(t, core.ErrInvalidSpecification, errors.Cause(err))
}

func BenchmarkApply(b *testing.B) {
	f, _ := LowPass(10000, 48000, 51)
	samples := make([]complex128, 4096)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Apply(samples)
	}
}

func BenchmarkDecimate(b *testing.B) {
	f, _ := LowPass(4000, 48000, 51)
	samples := make([]complex128, 4096)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = f.Decimate(samples, 4)
	}
}
