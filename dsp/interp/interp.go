package interp

import (
	"sort"

	"github.com/cwbudde/algo-photometry/dsp/core"
)

// Linear2 interpolates between x0 and x1 at fraction t in [0,1].
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// At returns the piecewise-linear value of (times, values) at t.
// times must be strictly increasing. Outside [times[0], times[n-1]] the
// result is core.Missing. A missing neighbour yields core.Missing unless t
// lands exactly on the other sample.
func At(times, values []float64, t float64) float64 {
	n := len(times)
	if n == 0 || t < times[0] || t > times[n-1] {
		return core.Missing
	}

	i := sort.SearchFloat64s(times, t)
	if times[i] == t {
		return values[i]
	}

	return between(times, values, i-1, t)
}

// Grid samples (times, values) at every point of grid, which must be
// ascending. It is equivalent to calling At per point but walks both
// series once.
func Grid(times, values, grid []float64) []float64 {
	out := make([]float64, len(grid))
	n := len(times)
	if n == 0 {
		core.Fill(out, core.Missing)
		return out
	}

	j := 0
	for k, t := range grid {
		if t < times[0] || t > times[n-1] {
			out[k] = core.Missing
			continue
		}
		for j+1 < n && times[j+1] <= t {
			j++
		}
		if times[j] == t {
			out[k] = values[j]
			continue
		}
		out[k] = between(times, values, j, t)
	}

	return out
}

// between interpolates t inside [times[i], times[i+1]].
func between(times, values []float64, i int, t float64) float64 {
	v0, v1 := values[i], values[i+1]
	if core.IsMissing(v0) || core.IsMissing(v1) {
		return core.Missing
	}

	frac := (t - times[i]) / (times[i+1] - times[i])
	return Linear2(frac, v0, v1)
}
