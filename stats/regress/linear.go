package regress

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrLengthMismatch indicates x and y of different length.
	ErrLengthMismatch = errors.New("regress: x and y lengths differ")
	// ErrTooFewPoints indicates fewer usable points than the model needs.
	ErrTooFewPoints = errors.New("regress: too few points")
	// ErrDegenerate indicates an x with no spread, so the fit is undefined.
	ErrDegenerate = errors.New("regress: degenerate fit")
	// ErrInvalidDegree indicates a negative polynomial degree.
	ErrInvalidDegree = errors.New("regress: degree must be non-negative")
)

// Line is the result of a least-squares fit y = Intercept + Slope*x.
type Line struct {
	Slope     float64
	Intercept float64
	// R is the Pearson correlation of the fitted pairs.
	R float64
	// N is the number of pairs used.
	N int
}

// LinearFit fits a straight line to (x, y) by ordinary least squares.
func LinearFit(x, y []float64) (Line, error) {
	if len(x) != len(y) {
		return Line{}, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(x), len(y))
	}

	xs, ys := pairs(x, y)
	if len(xs) < 2 {
		return Line{}, fmt.Errorf("%w: %d usable pairs", ErrTooFewPoints, len(xs))
	}
	if floats.Max(xs) == floats.Min(xs) {
		return Line{}, fmt.Errorf("%w: constant x", ErrDegenerate)
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		// Constant y: a flat line explains it fully.
		r = 0
	}

	return Line{Slope: beta, Intercept: alpha, R: r, N: len(xs)}, nil
}

// At evaluates the line at x.
func (l Line) At(x float64) float64 {
	return l.Intercept + l.Slope*x
}

// Eval evaluates the line at every x. Missing inputs stay missing.
func (l Line) Eval(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = l.Intercept + l.Slope*v
	}
	return out
}

// pairs drops every index where x or y is NaN.
func pairs(x, y []float64) (xs, ys []float64) {
	xs = make([]float64, 0, len(x))
	ys = make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return xs, ys
}
