package photometry

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-photometry/dsp/stream"
	timestats "github.com/cwbudde/algo-photometry/stats/time"
)

type baselineConfig struct {
	estimator Estimator
}

// BaselineOption configures ComputeBaseline.
type BaselineOption func(*baselineConfig)

// WithEstimator selects the F0 estimator. Default is Mean.
func WithEstimator(e Estimator) BaselineOption {
	return func(cfg *baselineConfig) { cfg.estimator = e }
}

// ComputeBaseline returns F0, the mean (or median) of the samples of s whose
// timestamps lie in w. Missing values are ignored.
//
// It fails with ErrOutOfRange when w lies entirely outside the recording
// and with ErrEmptyWindow when w overlaps the recording but contains no
// usable sample.
func ComputeBaseline(s stream.Stream, w Window, opts ...BaselineOption) (float64, error) {
	cfg := baselineConfig{estimator: Mean}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	if err := w.validate(); err != nil {
		return 0, err
	}
	if s.Len() == 0 || w.End < s.Start() || w.Start > s.End() {
		return 0, fmt.Errorf("%w: [%g, %g] vs recording [%g, %g]",
			ErrOutOfRange, w.Start, w.End, s.Start(), s.End())
	}

	lo, hi := s.Range(w.Start, w.End)
	values := s.Values[lo:hi]

	var f0 float64
	switch cfg.estimator {
	case Median:
		f0 = timestats.Median(values)
	default:
		f0 = timestats.Mean(values)
	}

	if math.IsNaN(f0) {
		return 0, fmt.Errorf("%w: [%g, %g]", ErrEmptyWindow, w.Start, w.End)
	}

	return f0, nil
}
