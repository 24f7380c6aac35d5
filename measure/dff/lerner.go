package dff

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-photometry/dsp/stream"
	"github.com/cwbudde/algo-photometry/measure/photometry"
	"github.com/cwbudde/algo-photometry/stats/regress"
)

var (
	// ErrLengthMismatch indicates signal and isosbestic channels of
	// different lengths.
	ErrLengthMismatch = errors.New("dff: channel lengths differ")
	// ErrTooShort indicates a trace too short for the configured filters.
	ErrTooShort = errors.New("dff: trace too short")
	// ErrDegenerateFit indicates a regression that could not be solved,
	// usually a flat isosbestic channel.
	ErrDegenerateFit = errors.New("dff: degenerate fit")
)

// Lerner returns 100 * (signal - fit) / fit, where fit is the least-squares
// line mapping isos onto signal.
func Lerner(signal, isos []float64) ([]float64, error) {
	if len(signal) != len(isos) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(signal), len(isos))
	}

	line, err := regress.LinearFit(isos, signal)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDegenerateFit, err)
	}

	fit := line.Eval(isos)
	out := make([]float64, len(signal))
	for i, y := range signal {
		out[i] = 100 * (y - fit[i]) / fit[i]
	}

	return out, nil
}

// Baseline normalizes s against the mean of its samples inside w.
func Baseline(s stream.Stream, w photometry.Window, opts ...photometry.BaselineOption) (stream.Stream, float64, error) {
	f0, err := photometry.ComputeBaseline(s, w, opts...)
	if err != nil {
		return stream.Stream{}, 0, err
	}

	out, err := photometry.Normalize(s, f0)
	if err != nil {
		return stream.Stream{}, 0, err
	}

	return out, f0, nil
}
