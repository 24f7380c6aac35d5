package conv

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Correlate computes the full cross-correlation of a and b, choosing the
// direct or FFT path by the length of b.
// The result has length len(a) + len(b) - 1 and index k holds lag
// k - (len(b) - 1).
func Correlate(a, b []float64) ([]float64, error) {
	if len(b) <= directThreshold {
		return CorrelateDirect(a, b)
	}
	return CorrelateFFT(a, b)
}

// CorrelateDirect computes cross-correlation in the time domain.
func CorrelateDirect(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	n, m := len(a), len(b)
	out := make([]float64, n+m-1)
	for k := range out {
		lag := k - (m - 1)
		lo := max(0, -lag)
		hi := min(m, n-lag)

		var sum float64
		for i := lo; i < hi; i++ {
			sum += a[i+lag] * b[i]
		}
		out[k] = sum
	}

	return out, nil
}

// CorrelateMode computes cross-correlation with specified output mode.
func CorrelateMode(a, b []float64, mode Mode) ([]float64, error) {
	full, err := Correlate(a, b)
	if err != nil {
		return nil, err
	}

	return trimToMode(full, len(a), len(b), mode), nil
}

// CorrelateNormalized computes cross-correlation divided by the product of
// the L2 norms of a and b, producing values in the range [-1, 1].
func CorrelateNormalized(a, b []float64) ([]float64, error) {
	result, err := Correlate(a, b)
	if err != nil {
		return nil, err
	}

	normProduct := l2Norm(a) * l2Norm(b)
	if normProduct == 0 {
		return result, nil
	}

	for i := range result {
		result[i] /= normProduct
	}

	return result, nil
}

// CorrelateFFT computes cross-correlation as IFFT(FFT(a) * conj(FFT(b))).
func CorrelateFFT(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	n := len(a)
	m := len(b)
	fftSize := nextPowerOf2(n + m - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	aPadded := make([]complex128, fftSize)
	bPadded := make([]complex128, fftSize)
	for i, v := range a {
		aPadded[i] = complex(v, 0)
	}
	for i, v := range b {
		bPadded[i] = complex(v, 0)
	}

	aFreq := make([]complex128, fftSize)
	bFreq := make([]complex128, fftSize)
	if err := plan.Forward(aFreq, aPadded); err != nil {
		return nil, fmt.Errorf("conv: forward FFT failed: %w", err)
	}
	if err := plan.Forward(bFreq, bPadded); err != nil {
		return nil, fmt.Errorf("conv: forward FFT failed: %w", err)
	}

	for i := range aFreq {
		aFreq[i] *= complex(real(bFreq[i]), -imag(bFreq[i]))
	}

	// Reuse the padded buffer for the time-domain result.
	if err := plan.Inverse(aPadded, aFreq); err != nil {
		return nil, fmt.Errorf("conv: inverse FFT failed: %w", err)
	}

	// Circular result: non-negative lags at the start, negative lags wrap
	// around to the end.
	result := make([]float64, n+m-1)
	for i := range n {
		result[m-1+i] = real(aPadded[i])
	}
	for i := range m - 1 {
		result[i] = real(aPadded[fftSize-m+1+i])
	}

	return result, nil
}

// PeakLag returns the lag in [-maxLag, maxLag] at which b best matches a,
// after removing the mean of each input, together with the normalized
// correlation at that lag. A positive lag means features of b appear lag
// samples later in a.
func PeakLag(a, b []float64, maxLag int) (lag int, score float64, err error) {
	if maxLag < 0 {
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidLag, maxLag)
	}

	ac, bc := demean(a), demean(b)
	if l2Norm(ac) == 0 || l2Norm(bc) == 0 {
		return 0, 0, ErrFlatSignal
	}

	corr, err := CorrelateNormalized(ac, bc)
	if err != nil {
		return 0, 0, err
	}

	lo := max(0, IndexFromLag(-maxLag, len(b)))
	hi := min(len(corr)-1, IndexFromLag(maxLag, len(b)))
	idx, val := FindPeak(corr[lo : hi+1])

	return LagFromIndex(lo+idx, len(b)), val, nil
}

func demean(x []float64) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out
	}

	var sum float64
	for _, v := range x {
		sum += v
	}
	mean := sum / float64(len(x))
	for i, v := range x {
		out[i] = v - mean
	}

	return out
}

// l2Norm computes the L2 (Euclidean) norm of a signal.
func l2Norm(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// FindPeak finds the index and value of the maximum in a correlation result.
// It returns -1 for an empty input.
func FindPeak(corr []float64) (index int, value float64) {
	if len(corr) == 0 {
		return -1, 0
	}

	index = 0
	value = corr[0]
	for i, v := range corr {
		if v > value {
			index = i
			value = v
		}
	}

	return index, value
}

// LagFromIndex converts a correlation result index to a lag value.
// For a correlation of signals with lengths lenA and lenB,
// the lag at index i is i - (lenB - 1).
func LagFromIndex(index, lenB int) int {
	return index - (lenB - 1)
}

// IndexFromLag converts a lag value to a correlation result index.
func IndexFromLag(lag, lenB int) int {
	return lag + (lenB - 1)
}
