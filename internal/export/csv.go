package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/cwbudde/algo-photometry/dsp/core"
	"github.com/cwbudde/algo-photometry/dsp/stream"
	"github.com/cwbudde/algo-photometry/measure/photometry"
)

// ErrLengthMismatch indicates columns of different lengths.
var ErrLengthMismatch = errors.New("export: column length mismatch")

// formatValue writes Missing as an empty cell.
func formatValue(v float64) string {
	if core.IsMissing(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteSegments writes one row per grid point: the relative time followed
// by one column per segment, headed event_<index>.
func WriteSegments(w io.Writer, segs []photometry.Segment) error {
	if len(segs) == 0 {
		return nil
	}
	n := segs[0].Len()
	header := make([]string, 0, len(segs)+1)
	header = append(header, "time")
	for _, s := range segs {
		if s.Len() != n {
			return fmt.Errorf("%w: segment %d has %d values, want %d", ErrLengthMismatch, s.Index, s.Len(), n)
		}
		header = append(header, "event_"+strconv.Itoa(s.Index))
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, len(header))
	for i := range n {
		row[0] = formatValue(segs[0].Time[i])
		for j, s := range segs {
			row[j+1] = formatValue(s.Values[i])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteAverage writes the mean trace with its SEM and contribution count.
func WriteAverage(w io.Writer, avg photometry.Average) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "mean", "sem", "count"}); err != nil {
		return err
	}
	for i := range avg.Time {
		err := cw.Write([]string{
			formatValue(avg.Time[i]),
			formatValue(avg.Mean[i]),
			formatValue(avg.SEM[i]),
			strconv.Itoa(avg.Count[i]),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Column is a named value column sharing the time axis of a table.
type Column struct {
	Name   string
	Values []float64
}

// WriteStreams writes a time column followed by cols. Every column must
// have as many values as times has samples.
func WriteStreams(w io.Writer, times stream.Stream, cols ...Column) error {
	for _, c := range cols {
		if len(c.Values) != times.Len() {
			return fmt.Errorf("%w: %s has %d values, want %d", ErrLengthMismatch, c.Name, len(c.Values), times.Len())
		}
	}

	cw := csv.NewWriter(w)
	header := []string{"time"}
	for _, c := range cols {
		header = append(header, c.Name)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for i, t := range times.Times {
		row[0] = formatValue(t)
		for j, c := range cols {
			row[j+1] = formatValue(c.Values[i])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
