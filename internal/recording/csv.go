package recording

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-photometry/dsp/core"
	"github.com/cwbudde/algo-photometry/dsp/stream"
)

var (
	// ErrMissingColumn indicates a requested column absent from the header.
	ErrMissingColumn = errors.New("recording: missing column")
	// ErrMalformed indicates a cell that is not a number.
	ErrMalformed = errors.New("recording: malformed value")
	// ErrNoData indicates a file with a header but no rows.
	ErrNoData = errors.New("recording: no data rows")
)

// Columns names the CSV columns of a recording. Isos may be empty.
type Columns struct {
	Time   string
	Signal string
	Isos   string
}

// Recording holds the channels of one recording on a common clock.
type Recording struct {
	Name   string
	Signal stream.Stream
	// Isos is empty when the recording has no isosbestic channel.
	Isos stream.Stream
}

// HasIsos reports whether an isosbestic channel was loaded.
func (r Recording) HasIsos() bool { return r.Isos.Len() > 0 }

// LoadCSV reads a recording with a header row. Empty cells and "nan" load
// as core.Missing.
func LoadCSV(r io.Reader, cols Columns) (Recording, error) {
	want := []string{cols.Time, cols.Signal}
	if cols.Isos != "" {
		want = append(want, cols.Isos)
	}

	data, err := LoadColumns(r, want...)
	if err != nil {
		return Recording{}, err
	}

	var rec Recording
	if rec.Signal, err = stream.New(data[0], data[1]); err != nil {
		return Recording{}, err
	}
	if cols.Isos != "" {
		rec.Isos = stream.Stream{Times: rec.Signal.Times, Values: data[2]}
	}

	return rec, nil
}

// LoadColumns reads the named columns of a CSV file with a header row, in
// the order given.
func LoadColumns(r io.Reader, names ...string) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("recording: read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	pos := make([]int, len(names))
	for i, name := range names {
		p, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
		pos[i] = p
	}

	data := make([][]float64, len(names))
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("recording: line %d: %w", line, err)
		}
		for i, p := range pos {
			if p >= len(row) {
				return nil, fmt.Errorf("%w: line %d has %d fields", ErrMalformed, line, len(row))
			}
			v, err := parseCell(row[p])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %q: %w", ErrMalformed, line, names[i], err)
			}
			data[i] = append(data[i], v)
		}
	}

	if len(data) > 0 && len(data[0]) == 0 {
		return nil, ErrNoData
	}

	return data, nil
}

// LoadIntervals reads paired onset and offset columns, as exported for a
// TTL epoc.
func LoadIntervals(r io.Reader) (onsets, offsets []float64, err error) {
	data, err := LoadColumns(r, "onset", "offset")
	if err != nil {
		return nil, nil, err
	}
	return data[0], data[1], nil
}

func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return core.Missing, nil
	}
	return strconv.ParseFloat(s, 64)
}

// LoadEvents reads event timestamps in seconds. The file may be a bare
// column of numbers or have a header with an "onset" or "time" column and
// an optional "name" column. When name is not empty only matching rows are
// kept. The result is sorted by time.
func LoadEvents(r io.Reader, name string) ([]float64, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("recording: read events: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	timeCol, nameCol := 0, -1
	if _, err := parseCell(rows[0][0]); err != nil {
		for i, h := range rows[0] {
			switch strings.ToLower(strings.TrimSpace(h)) {
			case "onset", "time", "timestamp":
				timeCol = i
			case "name", "event":
				nameCol = i
			}
		}
		rows = rows[1:]
	}

	events := make([]float64, 0, len(rows))
	for i, row := range rows {
		if name != "" && nameCol >= 0 && nameCol < len(row) && strings.TrimSpace(row[nameCol]) != name {
			continue
		}
		if timeCol >= len(row) {
			return nil, fmt.Errorf("%w: event row %d", ErrMalformed, i+1)
		}
		v, err := parseCell(row[timeCol])
		if err != nil || math.IsNaN(v) {
			return nil, fmt.Errorf("%w: event row %d: %q", ErrMalformed, i+1, row[timeCol])
		}
		events = append(events, v)
	}

	sortFloats(events)
	return events, nil
}
