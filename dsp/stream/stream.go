package stream

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrEmpty indicates a stream without samples.
	ErrEmpty = errors.New("stream: empty stream")
	// ErrNotMonotonic indicates timestamps that are not strictly increasing.
	ErrNotMonotonic = errors.New("stream: timestamps not strictly increasing")
	// ErrLengthMismatch indicates timestamp and value slices of different length.
	ErrLengthMismatch = errors.New("stream: times and values differ in length")
	// ErrInvalidFactor indicates a non-positive decimation factor.
	ErrInvalidFactor = errors.New("stream: invalid decimation factor")
	// ErrInvalidRate indicates a non-positive or non-finite sample rate.
	ErrInvalidRate = errors.New("stream: invalid sample rate")
)

// Stream is one fluorescence channel: parallel timestamp and value slices.
type Stream struct {
	Times  []float64
	Values []float64
}

// New validates and copies times and values into a Stream.
func New(times, values []float64) (Stream, error) {
	if len(times) != len(values) {
		return Stream{}, fmt.Errorf("%w: %d times, %d values", ErrLengthMismatch, len(times), len(values))
	}

	if err := checkMonotonic(times); err != nil {
		return Stream{}, err
	}

	return Stream{
		Times:  append([]float64(nil), times...),
		Values: append([]float64(nil), values...),
	}, nil
}

// FromRate builds a fixed-rate stream. Sample i is stamped (i+1)/rate + t0,
// the convention used by the TDT tooling.
func FromRate(values []float64, rate, t0 float64) (Stream, error) {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return Stream{}, fmt.Errorf("%w: %f", ErrInvalidRate, rate)
	}

	times := make([]float64, len(values))
	for i := range times {
		times[i] = float64(i+1)/rate + t0
	}

	return Stream{
		Times:  times,
		Values: append([]float64(nil), values...),
	}, nil
}

func checkMonotonic(times []float64) error {
	for i := 1; i < len(times); i++ {
		if !(times[i] > times[i-1]) {
			return fmt.Errorf("%w: t[%d]=%g after t[%d]=%g", ErrNotMonotonic, i, times[i], i-1, times[i-1])
		}
	}

	for i, t := range times {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return fmt.Errorf("%w: t[%d] is not finite", ErrNotMonotonic, i)
		}
	}

	return nil
}

// Validate reports whether s satisfies the stream invariants.
func (s Stream) Validate() error {
	if len(s.Times) != len(s.Values) {
		return fmt.Errorf("%w: %d times, %d values", ErrLengthMismatch, len(s.Times), len(s.Values))
	}

	return checkMonotonic(s.Times)
}

// Len returns the number of samples.
func (s Stream) Len() int { return len(s.Times) }

// Start returns the first timestamp, or NaN for an empty stream.
func (s Stream) Start() float64 {
	if len(s.Times) == 0 {
		return math.NaN()
	}
	return s.Times[0]
}

// End returns the last timestamp, or NaN for an empty stream.
func (s Stream) End() float64 {
	if len(s.Times) == 0 {
		return math.NaN()
	}
	return s.Times[len(s.Times)-1]
}

// Span returns End - Start.
func (s Stream) Span() float64 {
	if len(s.Times) < 2 {
		return 0
	}
	return s.End() - s.Start()
}

// Contains reports whether t lies within [Start, End].
func (s Stream) Contains(t float64) bool {
	return len(s.Times) > 0 && t >= s.Start() && t <= s.End()
}

// Interval returns the median spacing between consecutive samples.
// It is robust to the occasional dropped sample in variable-rate data.
func (s Stream) Interval() float64 {
	if len(s.Times) < 2 {
		return 0
	}

	d := make([]float64, len(s.Times)-1)
	for i := range d {
		d[i] = s.Times[i+1] - s.Times[i]
	}
	sort.Float64s(d)

	mid := len(d) / 2
	if len(d)%2 == 1 {
		return d[mid]
	}
	return (d[mid-1] + d[mid]) / 2
}

// SampleRate returns 1/Interval, or 0 when the rate is undefined.
func (s Stream) SampleRate() float64 {
	iv := s.Interval()
	if iv <= 0 {
		return 0
	}
	return 1 / iv
}

// Clone returns a deep copy of s.
func (s Stream) Clone() Stream {
	return Stream{
		Times:  append([]float64(nil), s.Times...),
		Values: append([]float64(nil), s.Values...),
	}
}

// Map returns a stream with the same timestamps and fn applied to every value.
func (s Stream) Map(fn func(float64) float64) Stream {
	out := Stream{
		Times:  append([]float64(nil), s.Times...),
		Values: make([]float64, len(s.Values)),
	}
	for i, v := range s.Values {
		out.Values[i] = fn(v)
	}
	return out
}

// WithValues returns a stream sharing s's timestamps with the given values.
func (s Stream) WithValues(values []float64) (Stream, error) {
	if len(values) != len(s.Times) {
		return Stream{}, fmt.Errorf("%w: %d times, %d values", ErrLengthMismatch, len(s.Times), len(values))
	}
	return Stream{
		Times:  append([]float64(nil), s.Times...),
		Values: append([]float64(nil), values...),
	}, nil
}

// Search returns the index of the first sample with timestamp >= t.
func (s Stream) Search(t float64) int {
	return sort.SearchFloat64s(s.Times, t)
}

// Range returns the half-open index range [lo, hi) of samples within [t1, t2].
func (s Stream) Range(t1, t2 float64) (int, int) {
	lo := sort.SearchFloat64s(s.Times, t1)
	hi := sort.Search(len(s.Times), func(i int) bool { return s.Times[i] > t2 })
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// Nearest returns the index of the sample closest to t. Ties resolve to the
// earlier sample. It returns -1 for an empty stream.
func (s Stream) Nearest(t float64) int {
	n := len(s.Times)
	if n == 0 {
		return -1
	}

	i := sort.SearchFloat64s(s.Times, t)
	if i == 0 {
		return 0
	}
	if i == n {
		return n - 1
	}
	if t-s.Times[i-1] <= s.Times[i]-t {
		return i - 1
	}
	return i
}
