package median

import (
	"errors"
	"fmt"
	"sort"
)

// DefaultKernel is the kernel size used when cleaning raw traces.
const DefaultKernel = 5

// ErrInvalidKernel indicates a kernel size that is not a positive odd number.
var ErrInvalidKernel = errors.New("median: kernel size must be positive and odd")

// Filter returns the running median of x over a window of k samples centred
// on each position. Samples beyond the edges count as zero. x is not
// modified.
func Filter(x []float64, k int) ([]float64, error) {
	if k <= 0 || k%2 == 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKernel, k)
	}

	out := make([]float64, len(x))
	if len(x) == 0 {
		return out, nil
	}

	half := k / 2
	window := make([]float64, k)
	for i := range x {
		for j := range window {
			idx := i - half + j
			if idx < 0 || idx >= len(x) {
				window[j] = 0
				continue
			}
			window[j] = x[idx]
		}
		sort.Float64s(window)
		out[i] = window[half]
	}

	return out, nil
}
