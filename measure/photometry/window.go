package photometry

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-photometry/dsp/stream"
)

// Window is a closed time interval [Start, End] in seconds.
type Window struct {
	Start float64
	End   float64
}

// Whole returns the window covering every sample of s.
func Whole(s stream.Stream) Window {
	return Window{Start: s.Start(), End: s.End()}
}

// Duration returns End - Start.
func (w Window) Duration() float64 { return w.End - w.Start }

// Contains reports whether t lies in [Start, End].
func (w Window) Contains(t float64) bool { return t >= w.Start && t <= w.End }

func (w Window) validate() error {
	if math.IsNaN(w.Start) || math.IsNaN(w.End) || w.Start > w.End {
		return fmt.Errorf("%w: [%g, %g]", ErrInvalidWindow, w.Start, w.End)
	}
	return nil
}

// Estimator selects how ComputeBaseline reduces the window to F0.
type Estimator int

const (
	// Mean averages the window. It is the default.
	Mean Estimator = iota
	// Median takes the window median, robust to transients.
	Median
)

func (e Estimator) String() string {
	switch e {
	case Mean:
		return "mean"
	case Median:
		return "median"
	default:
		return fmt.Sprintf("Estimator(%d)", int(e))
	}
}

// ParseEstimator parses "mean" or "median".
func ParseEstimator(s string) (Estimator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mean", "":
		return Mean, nil
	case "median":
		return Median, nil
	default:
		return Mean, fmt.Errorf("photometry: unknown estimator %q", s)
	}
}

// Boundary selects how AlignToEvents treats events whose window extends
// past either end of the recording.
type Boundary int

const (
	// Exclude drops such events and counts them. It is the default.
	Exclude Boundary = iota
	// Pad keeps such events and marks out-of-range points as missing.
	Pad
)

func (b Boundary) String() string {
	switch b {
	case Exclude:
		return "exclude"
	case Pad:
		return "pad"
	default:
		return fmt.Sprintf("Boundary(%d)", int(b))
	}
}

// ParseBoundary parses "exclude" or "pad".
func ParseBoundary(s string) (Boundary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exclude", "":
		return Exclude, nil
	case "pad":
		return Pad, nil
	default:
		return Exclude, fmt.Errorf("photometry: unknown boundary policy %q", s)
	}
}
