package sync

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-photometry/dsp/conv"
	"github.com/cwbudde/algo-photometry/stats/regress"
)

var (
	// ErrNoPulses indicates an empty pulse list.
	ErrNoPulses = errors.New("sync: no pulses")
	// ErrPulseMismatch indicates pulse lists of different lengths.
	ErrPulseMismatch = errors.New("sync: pulse counts differ")
	// ErrInvalidRate indicates a non-positive sample rate.
	ErrInvalidRate = errors.New("sync: sample rate must be positive")
)

// PulseClock converts secondary-clock times to recording time:
// recording = Offset + Drift*secondary.
type PulseClock struct {
	Offset float64
	Drift  float64
	// Pulses is the number of pulse pairs the mapping was fitted on.
	Pulses int
}

// NewPulseClock fits a clock mapping from matched pulse times. recording[i]
// and secondary[i] must stamp the same pulse. A single pulse yields a pure
// offset with unit drift.
func NewPulseClock(recording, secondary []float64) (PulseClock, error) {
	if len(recording) != len(secondary) {
		return PulseClock{}, fmt.Errorf("%w: %d vs %d", ErrPulseMismatch, len(recording), len(secondary))
	}
	if len(recording) == 0 {
		return PulseClock{}, ErrNoPulses
	}
	if len(recording) == 1 {
		return PulseClock{Offset: recording[0] - secondary[0], Drift: 1, Pulses: 1}, nil
	}

	line, err := regress.LinearFit(secondary, recording)
	if err != nil {
		return PulseClock{}, fmt.Errorf("sync: fit pulse clock: %w", err)
	}

	return PulseClock{Offset: line.Intercept, Drift: line.Slope, Pulses: line.N}, nil
}

// OffsetClock returns a mapping that adds a fixed offset, such as the time
// between recording start and the first video frame.
func OffsetClock(offset float64) PulseClock {
	return PulseClock{Offset: offset, Drift: 1}
}

// ToRecording maps one secondary-clock time.
func (c PulseClock) ToRecording(t float64) float64 {
	return c.Offset + c.Drift*t
}

// ToRecordingAll maps every time in ts into a new slice.
func (c PulseClock) ToRecordingAll(ts []float64) []float64 {
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = c.ToRecording(t)
	}
	return out
}

// FrameTimes stamps n frames captured at fps on the recording clock.
func (c PulseClock) FrameTimes(n int, fps float64) ([]float64, error) {
	if !(fps > 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidRate, fps)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = c.ToRecording(float64(i) / fps)
	}
	return out, nil
}

// EstimateLag returns the delay in seconds of b relative to a, two traces
// sampled at rate on a common grid, searched up to maxLag seconds either
// way. A positive lag means events in b show up later in a. The score is
// the normalized correlation at the peak.
func EstimateLag(a, b []float64, rate, maxLag float64) (lag, score float64, err error) {
	if !(rate > 0) {
		return 0, 0, fmt.Errorf("%w: %g", ErrInvalidRate, rate)
	}

	samples, score, err := conv.PeakLag(a, b, int(maxLag*rate))
	if err != nil {
		return 0, 0, fmt.Errorf("sync: estimate lag: %w", err)
	}

	return float64(samples) / rate, score, nil
}
