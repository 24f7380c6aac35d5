package regress

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Poly is a polynomial fitted on a normalized abscissa u = (x-Center)/Scale.
// Coeffs are in ascending order of power of u.
type Poly struct {
	Coeffs []float64
	Center float64
	Scale  float64
}

// Degree returns the polynomial degree, or -1 for an empty polynomial.
func (p Poly) Degree() int {
	return len(p.Coeffs) - 1
}

// PolyFit fits a polynomial of the given degree to (x, y) by least squares.
// x is mapped onto [-1, 1] before fitting so that long recordings in
// seconds stay well conditioned at higher degrees.
func PolyFit(x, y []float64, degree int) (Poly, error) {
	if degree < 0 {
		return Poly{}, fmt.Errorf("%w: %d", ErrInvalidDegree, degree)
	}
	if len(x) != len(y) {
		return Poly{}, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(x), len(y))
	}

	xs, ys := pairs(x, y)
	if len(xs) < degree+1 {
		return Poly{}, fmt.Errorf("%w: %d usable pairs for degree %d", ErrTooFewPoints, len(xs), degree)
	}

	lo, hi := floats.Min(xs), floats.Max(xs)
	p := Poly{Center: (lo + hi) / 2, Scale: (hi - lo) / 2}
	if p.Scale == 0 {
		if degree > 0 {
			return Poly{}, fmt.Errorf("%w: constant x", ErrDegenerate)
		}
		p.Scale = 1
	}

	cols := degree + 1
	a := mat.NewDense(len(xs), cols, nil)
	for i, v := range xs {
		u := (v - p.Center) / p.Scale
		pow := 1.0
		for j := range cols {
			a.Set(i, j, pow)
			pow *= u
		}
	}

	var beta mat.VecDense
	if err := beta.SolveVec(a, mat.NewVecDense(len(ys), ys)); err != nil {
		return Poly{}, fmt.Errorf("%w: %w", ErrDegenerate, err)
	}

	p.Coeffs = make([]float64, cols)
	for j := range cols {
		p.Coeffs[j] = beta.AtVec(j)
	}

	return p, nil
}

// At evaluates the polynomial at a single x.
func (p Poly) At(x float64) float64 {
	if len(p.Coeffs) == 0 {
		return 0
	}
	u := (x - p.Center) / p.Scale
	acc := p.Coeffs[len(p.Coeffs)-1]
	for k := len(p.Coeffs) - 2; k >= 0; k-- {
		acc = acc*u + p.Coeffs[k]
	}
	return acc
}

// Eval evaluates the polynomial at every x using a block Horner scheme.
func (p Poly) Eval(x []float64) []float64 {
	out := make([]float64, len(x))
	if len(p.Coeffs) == 0 || len(x) == 0 {
		return out
	}

	u := make([]float64, len(x))
	for i, v := range x {
		u[i] = (v - p.Center) / p.Scale
	}

	top := p.Coeffs[len(p.Coeffs)-1]
	for i := range out {
		out[i] = top
	}
	for k := len(p.Coeffs) - 2; k >= 0; k-- {
		vecmath.MulBlockInPlace(out, u)
		c := p.Coeffs[k]
		for i := range out {
			out[i] += c
		}
	}

	return out
}
