package photometry

import (
	"fmt"

	"github.com/cwbudde/algo-photometry/dsp/stream"
)

// Normalize returns a stream with the timestamps of s and values
// (v - f0) / f0. Missing values stay missing.
func Normalize(s stream.Stream, f0 float64) (stream.Stream, error) {
	if f0 == 0 {
		return stream.Stream{}, fmt.Errorf("%w: F0 is zero", ErrDivisionByZero)
	}

	return s.Map(func(v float64) float64 { return (v - f0) / f0 }), nil
}

// Denormalize undoes Normalize: v*f0 + f0.
func Denormalize(s stream.Stream, f0 float64) stream.Stream {
	return s.Map(func(v float64) float64 { return v*f0 + f0 })
}
