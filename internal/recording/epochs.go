package recording

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"time"
)

// DefaultOnsetSkip is dropped from the start of every epoch to clear the
// LED switch-on artifact.
const DefaultOnsetSkip = 10.0

// ErrEpochMismatch indicates onset and offset lists of different lengths.
var ErrEpochMismatch = errors.New("recording: onset and offset counts differ")

// Epoch is one acquisition period of a long recording, in seconds from the
// start of the block.
type Epoch struct {
	Index  int
	Onset  float64
	Offset float64
	// Start is Onset plus the skipped artifact period.
	Start float64
	// Begins is the wall-clock time of Onset.
	Begins time.Time
}

// Empty reports whether nothing remains after the skip.
func (e Epoch) Empty() bool { return e.Start >= e.Offset }

// Duration returns the usable length in seconds.
func (e Epoch) Duration() float64 {
	if e.Empty() {
		return 0
	}
	return e.Offset - e.Start
}

// Epochs pairs onsets with offsets, skipping the first skip seconds of
// each. blockStart stamps each epoch with its wall-clock onset.
func Epochs(onsets, offsets []float64, skip float64, blockStart time.Time) ([]Epoch, error) {
	if len(onsets) != len(offsets) {
		return nil, fmt.Errorf("%w: %d onsets, %d offsets", ErrEpochMismatch, len(onsets), len(offsets))
	}

	starts := StartTimes(blockStart, onsets)
	out := make([]Epoch, len(onsets))
	for i := range onsets {
		out[i] = Epoch{
			Index:  i,
			Onset:  onsets[i],
			Offset: offsets[i],
			Start:  onsets[i] + skip,
			Begins: starts[i],
		}
	}
	return out, nil
}

// StartTimes returns the wall-clock time of every onset, given in seconds
// from blockStart.
func StartTimes(blockStart time.Time, onsets []float64) []time.Time {
	out := make([]time.Time, len(onsets))
	for i, on := range onsets {
		out[i] = blockStart.Add(time.Duration(on * float64(time.Second)))
	}
	return out
}

// FileName returns the export name of an epoch:
// fiber_data_20060102_150405_<onset>_<offset>.csv.
func FileName(e Epoch, ext string) string {
	return fmt.Sprintf("fiber_data_%s_%s_%s%s",
		e.Begins.Format("20060102_150405"),
		strconv.FormatFloat(e.Onset, 'f', -1, 64),
		strconv.FormatFloat(e.Offset, 'f', -1, 64),
		ext)
}

// OutputPath joins dir and the epoch's file name.
func OutputPath(dir string, e Epoch, ext string) string {
	return filepath.Join(dir, FileName(e, ext))
}

func sortFloats(x []float64) {
	slices.Sort(x)
}
