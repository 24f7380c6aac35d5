package photometry

import (
	"fmt"

	"github.com/cwbudde/algo-photometry/dsp/core"
	timestats "github.com/cwbudde/algo-photometry/stats/time"
)

// Average is the index-wise mean of a set of aligned segments.
type Average struct {
	Time []float64
	Mean []float64
	// SEM is the sample standard deviation over sqrt(Count); 0 where only
	// one segment contributes.
	SEM []float64
	// Count is the number of non-missing contributions per index.
	Count []int
}

// Segment returns the mean trace as a segment with Index -1.
func (a Average) Segment() Segment {
	return Segment{
		Event:  0,
		Index:  -1,
		Time:   append([]float64(nil), a.Time...),
		Values: append([]float64(nil), a.Mean...),
	}
}

// AverageSegments returns the mean and standard error across segs at each
// grid index, ignoring missing values. An index with no contributions is
// missing in both Mean and SEM.
func AverageSegments(segs []Segment) (Average, error) {
	if len(segs) == 0 {
		return Average{}, ErrEmptyInput
	}

	n := segs[0].Len()
	for i, s := range segs[1:] {
		if s.Len() != n {
			return Average{}, fmt.Errorf("%w: segment %d has %d values, segment 0 has %d",
				ErrLengthMismatch, i+1, s.Len(), n)
		}
	}

	avg := Average{
		Time:  make([]float64, n),
		Mean:  make([]float64, n),
		SEM:   make([]float64, n),
		Count: make([]int, n),
	}
	copy(avg.Time, segs[0].Time)

	var acc timestats.Accumulator
	for k := range n {
		acc.Reset()
		for _, s := range segs {
			acc.Add(s.Values[k])
		}

		st := acc.Result()
		avg.Count[k] = st.N
		if st.N == 0 {
			avg.Mean[k] = core.Missing
			avg.SEM[k] = core.Missing
			continue
		}
		avg.Mean[k] = st.Mean
		avg.SEM[k] = st.SEM
	}

	return avg, nil
}
