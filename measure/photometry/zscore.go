package photometry

import (
	"fmt"

	timestats "github.com/cwbudde/algo-photometry/stats/time"
)

// ZScore standardizes seg against its own values inside w, given in
// event-relative seconds: (v - mean) / std, with the population std.
func ZScore(seg Segment, w Window) (Segment, error) {
	if err := w.validate(); err != nil {
		return Segment{}, err
	}
	if len(seg.Time) == 0 || w.End < seg.Time[0] || w.Start > seg.Time[len(seg.Time)-1] {
		return Segment{}, fmt.Errorf("%w: [%g, %g]", ErrOutOfRange, w.Start, w.End)
	}

	var ref []float64
	for k, t := range seg.Time {
		if w.Contains(t) {
			ref = append(ref, seg.Values[k])
		}
	}

	st := timestats.Calculate(ref)
	if st.N == 0 {
		return Segment{}, fmt.Errorf("%w: [%g, %g]", ErrEmptyWindow, w.Start, w.End)
	}
	if st.Std == 0 {
		return Segment{}, fmt.Errorf("%w: flat reference window", ErrDivisionByZero)
	}

	out := Segment{
		Event:  seg.Event,
		Index:  seg.Index,
		Time:   append([]float64(nil), seg.Time...),
		Values: make([]float64, len(seg.Values)),
	}
	for k, v := range seg.Values {
		out.Values[k] = (v - st.Mean) / st.Std
	}

	return out, nil
}
