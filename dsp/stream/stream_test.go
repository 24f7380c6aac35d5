package stream

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-photometry/dsp/core"
)

func TestNewValidates(t *testing.T) {
	tests := []struct {
		name   string
		times  []float64
		values []float64
		err    error
	}{
		{name: "ok", times: []float64{0, 1, 2}, values: []float64{1, 2, 3}},
		{name: "empty", times: nil, values: nil},
		{name: "length", times: []float64{0, 1}, values: []float64{1}, err: ErrLengthMismatch},
		{name: "repeated", times: []float64{0, 1, 1}, values: []float64{1, 2, 3}, err: ErrNotMonotonic},
		{name: "decreasing", times: []float64{0, 2, 1}, values: []float64{1, 2, 3}, err: ErrNotMonotonic},
		{name: "nan", times: []float64{0, math.NaN()}, values: []float64{1, 2}, err: ErrNotMonotonic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.times, tt.values)
			if tt.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestNewCopiesInput(t *testing.T) {
	times := []float64{0, 1}
	values := []float64{5, 6}
	s, err := New(times, values)
	require.NoError(t, err)

	values[0] = 99
	assert.Equal(t, 5.0, s.Values[0])
}

func TestFromRate(t *testing.T) {
	s, err := FromRate([]float64{1, 2, 3, 4}, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, []float64{10.5, 11, 11.5, 12}, s.Times)
	assert.InDelta(t, 0.5, s.Interval(), 1e-12)
	assert.InDelta(t, 2.0, s.SampleRate(), 1e-12)

	_, err = FromRate([]float64{1}, 0, 0)
	require.ErrorIs(t, err, ErrInvalidRate)
}

func TestBounds(t *testing.T) {
	var empty Stream
	assert.True(t, math.IsNaN(empty.Start()))
	assert.True(t, math.IsNaN(empty.End()))
	assert.Equal(t, -1, empty.Nearest(3))
	assert.False(t, empty.Contains(0))

	s, err := New([]float64{0, 1, 2, 3}, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 3.0, s.Span())
	assert.True(t, s.Contains(3))
	assert.False(t, s.Contains(3.01))
}

func TestIntervalIgnoresDroppedSample(t *testing.T) {
	s, err := New([]float64{0, 1, 2, 4, 5, 6}, make([]float64, 6))
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.Interval())
}

func TestNearest(t *testing.T) {
	s, err := New([]float64{0, 1, 2, 3}, []float64{1, 2, 3, 4})
	require.NoError(t, err)

	tests := []struct {
		t    float64
		want int
	}{
		{t: -5, want: 0},
		{t: 0.4, want: 0},
		{t: 0.5, want: 0},
		{t: 0.6, want: 1},
		{t: 2.9, want: 3},
		{t: 50, want: 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.Nearest(tt.t), "t=%v", tt.t)
	}
}

func TestRangeAndSlice(t *testing.T) {
	s, err := FromRate([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 1, -1)
	require.NoError(t, err)

	lo, hi := s.Range(2, 4)
	assert.Equal(t, 2, lo)
	assert.Equal(t, 5, hi)

	sub := s.Slice(2, 4)
	assert.Equal(t, []float64{2, 3, 4}, sub.Times)
	assert.Equal(t, []float64{2, 3, 4}, sub.Values)

	none := s.Slice(20, 30)
	assert.Equal(t, 0, none.Len())
}

func TestMapAndWithValues(t *testing.T) {
	s, err := New([]float64{0, 1}, []float64{2, 4})
	require.NoError(t, err)

	half := s.Map(func(v float64) float64 { return v / 2 })
	assert.Equal(t, []float64{1, 2}, half.Values)
	assert.Equal(t, []float64{2, 4}, s.Values)

	_, err = s.WithValues([]float64{1})
	require.ErrorIs(t, err, ErrLengthMismatch)

	w, err := s.WithValues([]float64{7, 8})
	require.NoError(t, err)
	require.NoError(t, w.Validate())
}

func TestTrimBeforeAndShift(t *testing.T) {
	s, err := FromRate([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 1, 0)
	require.NoError(t, err)

	trimmed := s.TrimBefore(DefaultArtifactSeconds)
	assert.Equal(t, []float64{9, 10}, trimmed.Times)
	assert.Equal(t, []float64{8, 9}, trimmed.Values)

	shifted := trimmed.Shift(-9)
	assert.Equal(t, []float64{0, 1}, shifted.Times)
	assert.Equal(t, []float64{9, 10}, trimmed.Times)
}

func TestDecimate(t *testing.T) {
	s, err := FromRate([]float64{1, 2, 3, 4, 5, 6, 7}, 1, -1)
	require.NoError(t, err)

	d, err := s.Decimate(3)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 3, 6}, d.Times)
	assert.Equal(t, []float64{2, 5, 7}, d.Values)

	_, err = s.Decimate(0)
	require.ErrorIs(t, err, ErrInvalidFactor)

	same, err := s.Decimate(1)
	require.NoError(t, err)
	assert.Equal(t, s.Values, same.Values)
}

func TestDecimateSkipsMissing(t *testing.T) {
	s, err := New([]float64{0, 1, 2, 3}, []float64{1, core.Missing, core.Missing, core.Missing})
	require.NoError(t, err)

	d, err := s.Decimate(2)
	require.NoError(t, err)
	assert.Equal(t, 1.0, d.Values[0])
	assert.True(t, core.IsMissing(d.Values[1]))
}
