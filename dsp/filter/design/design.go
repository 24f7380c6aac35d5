package design

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-photometry/dsp/filter/biquad"
)

var (
	// ErrInvalidFrequency indicates a cutoff outside (0, sampleRate/2).
	ErrInvalidFrequency = errors.New("design: cutoff must be in (0, nyquist)")
	// ErrInvalidOrder indicates a non-positive filter order.
	ErrInvalidOrder = errors.New("design: order must be positive")
	// ErrInvalidQ indicates a non-positive quality factor.
	ErrInvalidQ = errors.New("design: Q must be positive")
)

func validate(freq, sampleRate float64) error {
	if sampleRate <= 0 || freq <= 0 || freq >= sampleRate/2 || math.IsNaN(freq) {
		return fmt.Errorf("%w: f=%g fs=%g", ErrInvalidFrequency, freq, sampleRate)
	}
	return nil
}

// Lowpass returns an RBJ second-order low-pass section.
func Lowpass(freq, q, sampleRate float64) (biquad.Coefficients, error) {
	if err := validate(freq, sampleRate); err != nil {
		return biquad.Coefficients{}, err
	}
	if q <= 0 {
		return biquad.Coefficients{}, fmt.Errorf("%w: %g", ErrInvalidQ, q)
	}

	cw, alpha := prewarp(freq, q, sampleRate)
	a0 := 1 + alpha
	return biquad.Coefficients{
		B0: (1 - cw) / 2 / a0,
		B1: (1 - cw) / a0,
		B2: (1 - cw) / 2 / a0,
		A1: -2 * cw / a0,
		A2: (1 - alpha) / a0,
	}, nil
}

// Highpass returns an RBJ second-order high-pass section.
func Highpass(freq, q, sampleRate float64) (biquad.Coefficients, error) {
	if err := validate(freq, sampleRate); err != nil {
		return biquad.Coefficients{}, err
	}
	if q <= 0 {
		return biquad.Coefficients{}, fmt.Errorf("%w: %g", ErrInvalidQ, q)
	}

	cw, alpha := prewarp(freq, q, sampleRate)
	a0 := 1 + alpha
	return biquad.Coefficients{
		B0: (1 + cw) / 2 / a0,
		B1: -(1 + cw) / a0,
		B2: (1 + cw) / 2 / a0,
		A1: -2 * cw / a0,
		A2: (1 - alpha) / a0,
	}, nil
}

// ButterworthLP returns the cascade for an order-N Butterworth low-pass.
// Odd orders end with a first-order section.
func ButterworthLP(freq float64, order int, sampleRate float64) ([]biquad.Coefficients, error) {
	return butterworth(freq, order, sampleRate, Lowpass, firstOrderLP)
}

// ButterworthHP returns the cascade for an order-N Butterworth high-pass.
func ButterworthHP(freq float64, order int, sampleRate float64) ([]biquad.Coefficients, error) {
	return butterworth(freq, order, sampleRate, Highpass, firstOrderHP)
}

func butterworth(
	freq float64,
	order int,
	sampleRate float64,
	second func(float64, float64, float64) (biquad.Coefficients, error),
	first func(float64, float64) biquad.Coefficients,
) ([]biquad.Coefficients, error) {
	if order <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}
	if err := validate(freq, sampleRate); err != nil {
		return nil, err
	}

	sections := make([]biquad.Coefficients, 0, (order+1)/2)
	for i := range order / 2 {
		c, err := second(freq, butterworthQ(order, i), sampleRate)
		if err != nil {
			return nil, err
		}
		sections = append(sections, c)
	}
	if order%2 == 1 {
		sections = append(sections, first(freq, sampleRate))
	}

	return sections, nil
}

// butterworthQ returns the Q of the index-th pole pair of an order-N
// Butterworth prototype.
func butterworthQ(order, index int) float64 {
	return 1 / (2 * math.Sin(math.Pi*float64(2*index+1)/float64(2*order)))
}

func prewarp(freq, q, sampleRate float64) (cosW0, alpha float64) {
	w0 := 2 * math.Pi * freq / sampleRate
	return math.Cos(w0), math.Sin(w0) / (2 * q)
}

func firstOrderLP(freq, sampleRate float64) biquad.Coefficients {
	k := math.Tan(math.Pi * freq / sampleRate)
	return biquad.Coefficients{
		B0: k / (1 + k),
		B1: k / (1 + k),
		A1: (k - 1) / (k + 1),
	}
}

func firstOrderHP(freq, sampleRate float64) biquad.Coefficients {
	k := math.Tan(math.Pi * freq / sampleRate)
	return biquad.Coefficients{
		B0: 1 / (1 + k),
		B1: -1 / (1 + k),
		A1: (k - 1) / (k + 1),
	}
}
