package time

import (
	"math"
	"sort"
)

// Stats holds descriptive statistics of the non-missing samples of a signal.
type Stats struct {
	// N is the number of non-missing samples, Missing the number of NaN
	// samples skipped.
	N       int
	Missing int

	Mean   float64
	Median float64
	Min    float64
	MinPos int
	Max    float64
	MaxPos int

	// Variance and Std are population moments (ddof = 0). SEM uses the
	// sample standard deviation: std(ddof=1) / sqrt(N).
	Variance float64
	Std      float64
	SEM      float64
}

// emptyStats returns Stats with NaN for every value field.
func emptyStats(missing int) Stats {
	nan := math.NaN()
	return Stats{
		Missing:  missing,
		Mean:     nan,
		Median:   nan,
		Min:      nan,
		MinPos:   -1,
		Max:      nan,
		MaxPos:   -1,
		Variance: nan,
		Std:      nan,
		SEM:      nan,
	}
}

// Calculate computes all statistics in a single pass using Welford's online
// algorithm, plus a sort for the median. NaN samples are skipped.
func Calculate(signal []float64) Stats {
	var acc Accumulator
	for i, x := range signal {
		acc.add(x, i)
	}

	s := acc.Result()
	if s.N > 0 {
		s.Median = Median(signal)
	}
	return s
}

// Mean returns the mean of the non-NaN samples, or NaN if there are none.
func Mean(signal []float64) float64 {
	// Use Kahan summation for numerical stability.
	var sum, c float64
	n := 0
	for _, x := range signal {
		if math.IsNaN(x) {
			continue
		}
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
		n++
	}

	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// Median returns the median of the non-NaN samples, or NaN if there are none.
// The input is not modified.
func Median(signal []float64) float64 {
	buf := make([]float64, 0, len(signal))
	for _, x := range signal {
		if !math.IsNaN(x) {
			buf = append(buf, x)
		}
	}

	if len(buf) == 0 {
		return math.NaN()
	}

	sort.Float64s(buf)
	mid := len(buf) / 2
	if len(buf)%2 == 1 {
		return buf[mid]
	}
	return (buf[mid-1] + buf[mid]) / 2
}

// Std returns the population standard deviation of the non-NaN samples.
func Std(signal []float64) float64 {
	return Calculate(signal).Std
}

// SEM returns the standard error of the mean of the non-NaN samples.
// It is 0 for a single sample and NaN for none.
func SEM(signal []float64) float64 {
	return Calculate(signal).SEM
}

// Accumulator gathers statistics incrementally, one value at a time.
// It is used where samples arrive column-wise, such as averaging
// aligned segments index by index. Median is not tracked.
type Accumulator struct {
	n       int
	missing int
	pos     int
	mean    float64
	m2      float64
	minVal  float64
	minPos  int
	maxVal  float64
	maxPos  int
}

// Add folds x into the running statistics. NaN values are counted as missing.
func (a *Accumulator) Add(x float64) {
	a.add(x, a.pos)
}

func (a *Accumulator) add(x float64, pos int) {
	a.pos = pos + 1
	if math.IsNaN(x) {
		a.missing++
		return
	}

	a.n++
	delta := x - a.mean
	a.mean += delta / float64(a.n)
	a.m2 += delta * (x - a.mean)

	if a.n == 1 || x < a.minVal {
		a.minVal = x
		a.minPos = pos
	}
	if a.n == 1 || x > a.maxVal {
		a.maxVal = x
		a.maxPos = pos
	}
}

// Count returns the number of non-missing values added.
func (a *Accumulator) Count() int { return a.n }

// Result computes the final statistics from accumulated data.
func (a *Accumulator) Result() Stats {
	if a.n == 0 {
		return emptyStats(a.missing)
	}

	nf := float64(a.n)
	variance := a.m2 / nf

	sem := 0.0
	if a.n > 1 {
		sem = math.Sqrt(a.m2/(nf-1)) / math.Sqrt(nf)
	}

	return Stats{
		N:        a.n,
		Missing:  a.missing,
		Mean:     a.mean,
		Median:   math.NaN(),
		Min:      a.minVal,
		MinPos:   a.minPos,
		Max:      a.maxVal,
		MaxPos:   a.maxPos,
		Variance: variance,
		Std:      math.Sqrt(variance),
		SEM:      sem,
	}
}

// Reset clears all accumulated data, allowing the Accumulator to be reused.
func (a *Accumulator) Reset() {
	*a = Accumulator{}
}
