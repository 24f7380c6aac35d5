package freeze

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDuration indicates a negative minimum freezing duration.
	ErrInvalidDuration = errors.New("freeze: minimum duration must be non-negative")
	// ErrInvalidRate indicates a non-positive frame rate.
	ErrInvalidRate = errors.New("freeze: frame rate must be positive")
)

// Episode is one freezing bout, Offset exclusive, in seconds.
type Episode struct {
	Onset  float64
	Offset float64
}

// Duration returns Offset - Onset.
func (e Episode) Duration() float64 { return e.Offset - e.Onset }

// Detect marks frames whose motion stays below threshold for at least
// minDuration consecutive frames. Shorter runs are not freezing.
func Detect(motion []float64, threshold float64, minDuration int) ([]bool, error) {
	if minDuration < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDuration, minDuration)
	}

	out := make([]bool, len(motion))
	for i, m := range motion {
		out[i] = m < threshold
	}

	for _, r := range runs(out) {
		if r[1]-r[0] < minDuration {
			for i := r[0]; i < r[1]; i++ {
				out[i] = false
			}
		}
	}

	return out, nil
}

// Episodes converts a freezing mask sampled at fps into time intervals.
// Frame i is stamped t0 + i/fps.
func Episodes(freezing []bool, fps, t0 float64) ([]Episode, error) {
	if !(fps > 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidRate, fps)
	}

	rs := runs(freezing)
	out := make([]Episode, len(rs))
	for k, r := range rs {
		out[k] = Episode{
			Onset:  t0 + float64(r[0])/fps,
			Offset: t0 + float64(r[1])/fps,
		}
	}
	return out, nil
}

// Onsets returns the onset of every episode, for use as alignment events.
func Onsets(episodes []Episode) []float64 {
	out := make([]float64, len(episodes))
	for i, e := range episodes {
		out[i] = e.Onset
	}
	return out
}

// Offsets returns the end of every episode.
func Offsets(episodes []Episode) []float64 {
	out := make([]float64, len(episodes))
	for i, e := range episodes {
		out[i] = e.Offset
	}
	return out
}

// Percent returns the share of freezing frames in [0, 100], or 0 for an
// empty mask.
func Percent(freezing []bool) float64 {
	if len(freezing) == 0 {
		return 0
	}

	n := 0
	for _, f := range freezing {
		if f {
			n++
		}
	}
	return 100 * float64(n) / float64(len(freezing))
}

// runs returns the half-open [start, end) index ranges of true values.
func runs(mask []bool) [][2]int {
	var out [][2]int
	start := -1
	for i, v := range mask {
		switch {
		case v && start < 0:
			start = i
		case !v && start >= 0:
			out = append(out, [2]int{start, i})
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, [2]int{start, len(mask)})
	}
	return out
}
