package photometry

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-photometry/dsp/core"
	"github.com/cwbudde/algo-photometry/dsp/interp"
	"github.com/cwbudde/algo-photometry/dsp/stream"
)

// Segment is one peri-event window re-indexed to event-relative time.
type Segment struct {
	// Event is the absolute event timestamp in seconds.
	Event float64
	// Index is the position of the event in the caller's event list.
	Index int
	// Time holds the relative grid, 0 at the event.
	Time []float64
	// Values holds one value per grid point; core.Missing where padded.
	Values []float64
}

// Len returns the number of grid points.
func (s Segment) Len() int { return len(s.Values) }

// Alignment is the result of AlignToEvents.
type Alignment struct {
	Segments []Segment
	// Time is the relative grid shared by every segment.
	Time   []float64
	Policy Boundary

	// Excluded counts in-range events dropped by the Exclude policy.
	Excluded       int
	ExcludedEvents []float64

	// OutOfRange counts events outside the recording, discarded under
	// either policy.
	OutOfRange       int
	OutOfRangeEvents []float64
}

type alignConfig struct {
	boundary Boundary
	step     float64
	stepSet  bool
	workers  int
}

// AlignOption configures AlignToEvents.
type AlignOption func(*alignConfig)

// WithBoundary selects the boundary policy. Default is Exclude.
func WithBoundary(b Boundary) AlignOption {
	return func(cfg *alignConfig) { cfg.boundary = b }
}

// WithStep sets the spacing of the relative grid in seconds. By default
// the median sample interval of the stream is used.
func WithStep(step float64) AlignOption {
	return func(cfg *alignConfig) {
		cfg.step = step
		cfg.stepSet = true
	}
}

// WithWorkers spreads events over n goroutines. Values below 2 keep the
// work on the calling goroutine. Output is identical either way.
func WithWorkers(n int) AlignOption {
	return func(cfg *alignConfig) { cfg.workers = n }
}

// MaxGridPoints bounds the length of a relative grid.
const MaxGridPoints = math.MaxInt32

// RelativeGrid returns the event-relative sample grid: every multiple of
// step in [-before, after]. Zero is always a grid point. Grids longer than
// MaxGridPoints are rejected with ErrInvalidWindow.
func RelativeGrid(before, after, step float64) ([]float64, error) {
	if !core.IsFinite(before) || !core.IsFinite(after) || before < 0 || after < 0 || !(step > 0) {
		return nil, fmt.Errorf("%w: before=%g after=%g step=%g", ErrInvalidWindow, before, after, step)
	}

	// Tolerate before/after that are multiples of step up to rounding.
	const slack = 1e-9
	fBefore := math.Floor(before/step + slack)
	fAfter := math.Floor(after/step + slack)
	if !(fBefore+fAfter+1 <= MaxGridPoints) {
		return nil, fmt.Errorf("%w: %g grid points at step %g", ErrInvalidWindow, fBefore+fAfter+1, step)
	}
	nBefore, nAfter := int(fBefore), int(fAfter)

	grid := make([]float64, nBefore+nAfter+1)
	for k := range grid {
		grid[k] = float64(k-nBefore) * step
	}
	return grid, nil
}

// edgeTolerance is how far past the recording edge a grid point may land
// through rounding and still count as inside.
func edgeTolerance(step float64) float64 {
	return 1e-6 * step
}

// AlignToEvents extracts one segment per event spanning
// [event-before, event+after], linearly interpolated onto a common
// relative grid so every segment has the same length. With before and
// after both zero each segment holds the sample nearest its event.
//
// Events outside the recording are always discarded and reported in
// OutOfRange. Events whose window leaves the recording are handled by the
// boundary policy. Overlapping windows are allowed.
func AlignToEvents(s stream.Stream, events []float64, before, after float64, opts ...AlignOption) (Alignment, error) {
	cfg := alignConfig{boundary: Exclude}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	if !core.IsFinite(before) || !core.IsFinite(after) || before < 0 || after < 0 {
		return Alignment{}, fmt.Errorf("%w: before=%g after=%g", ErrInvalidWindow, before, after)
	}
	if s.Len() == 0 {
		return Alignment{}, stream.ErrEmpty
	}

	step := cfg.step
	if !cfg.stepSet {
		step = s.Interval()
	}
	if cfg.stepSet && !(step > 0) {
		return Alignment{}, fmt.Errorf("%w: step %g", ErrInvalidWindow, step)
	}

	var grid []float64
	switch {
	case before == 0 && after == 0:
		grid = []float64{0}
	case step > 0:
		var err error
		if grid, err = RelativeGrid(before, after, step); err != nil {
			return Alignment{}, err
		}
	default:
		return Alignment{}, fmt.Errorf("%w: grid step undefined for a single-sample stream", ErrInvalidWindow)
	}

	a := Alignment{Time: grid, Policy: cfg.boundary}
	start, end := s.Start(), s.End()
	tol := edgeTolerance(step)

	type job struct {
		index int
		event float64
	}
	var jobs []job
	for i, ev := range events {
		switch {
		case math.IsNaN(ev) || ev < start || ev > end:
			a.OutOfRange++
			a.OutOfRangeEvents = append(a.OutOfRangeEvents, ev)
		case cfg.boundary == Exclude && (ev-before < start-tol || ev+after > end+tol):
			a.Excluded++
			a.ExcludedEvents = append(a.ExcludedEvents, ev)
		default:
			jobs = append(jobs, job{index: i, event: ev})
		}
	}

	a.Segments = make([]Segment, len(jobs))
	cut := func(k int) {
		j := jobs[k]
		a.Segments[k] = segmentAt(s, j.event, j.index, grid, step)
	}

	if cfg.workers < 2 || len(jobs) < 2 {
		for k := range jobs {
			cut(k)
		}
		return a, nil
	}

	var g errgroup.Group
	g.SetLimit(cfg.workers)
	for k := range jobs {
		g.Go(func() error {
			cut(k)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Alignment{}, err
	}

	return a, nil
}

// segmentAt samples s on grid shifted to event.
func segmentAt(s stream.Stream, event float64, index int, grid []float64, step float64) Segment {
	seg := Segment{
		Event: event,
		Index: index,
		Time:  append([]float64(nil), grid...),
	}

	if len(grid) == 1 && grid[0] == 0 {
		seg.Values = []float64{s.Values[s.Nearest(event)]}
		return seg
	}

	start, end := s.Start(), s.End()
	tol := edgeTolerance(step)
	abs := make([]float64, len(grid))
	for k, rel := range grid {
		t := event + rel
		// Snap rounding error at the recording edges back inside.
		if t >= start-tol && t <= end+tol {
			t = core.Clamp(t, start, end)
		}
		abs[k] = t
	}

	seg.Values = interp.Grid(s.Times, s.Values, abs)
	return seg
}

// PaddedCount returns the number of missing points in seg.
func PaddedCount(seg Segment) int {
	return core.CountMissing(seg.Values)
}
