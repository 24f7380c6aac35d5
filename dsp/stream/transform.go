package stream

import (
	"fmt"

	"github.com/cwbudde/algo-photometry/dsp/core"
)

// DefaultArtifactSeconds is the LED-onset artifact duration dropped by
// TrimBefore in the standard pipeline.
const DefaultArtifactSeconds = 8.0

// Slice returns the samples with timestamps in [t1, t2].
func (s Stream) Slice(t1, t2 float64) Stream {
	lo, hi := s.Range(t1, t2)
	return Stream{
		Times:  append([]float64(nil), s.Times[lo:hi]...),
		Values: append([]float64(nil), s.Values[lo:hi]...),
	}
}

// TrimBefore drops every sample with timestamp <= t.
func (s Stream) TrimBefore(t float64) Stream {
	lo := 0
	for lo < len(s.Times) && s.Times[lo] <= t {
		lo++
	}
	return Stream{
		Times:  append([]float64(nil), s.Times[lo:]...),
		Values: append([]float64(nil), s.Values[lo:]...),
	}
}

// Shift adds dt to every timestamp, e.g. to place a shock at a fixed
// display time.
func (s Stream) Shift(dt float64) Stream {
	out := s.Clone()
	for i := range out.Times {
		out.Times[i] += dt
	}
	return out
}

// Decimate block-averages n consecutive samples into one. Each output sample
// is stamped with the timestamp of its block's first sample; a trailing
// partial block is averaged over the samples it has. Missing values are
// skipped; a block of only missing values stays missing.
func (s Stream) Decimate(n int) (Stream, error) {
	if n <= 0 {
		return Stream{}, fmt.Errorf("%w: %d", ErrInvalidFactor, n)
	}
	if n == 1 {
		return s.Clone(), nil
	}

	blocks := (len(s.Values) + n - 1) / n
	out := Stream{
		Times:  make([]float64, blocks),
		Values: make([]float64, blocks),
	}

	for b := 0; b < blocks; b++ {
		lo := b * n
		hi := min(lo+n, len(s.Values))

		var sum float64
		var count int
		for _, v := range s.Values[lo:hi] {
			if core.IsMissing(v) {
				continue
			}
			sum += v
			count++
		}

		out.Times[b] = s.Times[lo]
		if count == 0 {
			out.Values[b] = core.Missing
			continue
		}
		out.Values[b] = sum / float64(count)
	}

	return out, nil
}
