package export

import (
	"time"

	"github.com/cwbudde/algo-photometry/measure/photometry"
)

// Summary describes one processed recording.
type Summary struct {
	RunID     string
	Recording string
	Method    string
	Created   time.Time

	Baseline  photometry.Window
	Estimator photometry.Estimator
	Boundary  photometry.Boundary

	Events     int
	Aligned    int
	Excluded   int
	OutOfRange int
}

// NewSummary fills the event counts from an alignment.
func NewSummary(runID, recording, method string, a photometry.Alignment, events int) Summary {
	return Summary{
		RunID:      runID,
		Recording:  recording,
		Method:     method,
		Created:    time.Now(),
		Boundary:   a.Policy,
		Events:     events,
		Aligned:    len(a.Segments),
		Excluded:   a.Excluded,
		OutOfRange: a.OutOfRange,
	}
}

type field struct {
	label string
	value any
}

func (s Summary) fields() []field {
	return []field{
		{"Run", s.RunID},
		{"Recording", s.Recording},
		{"Method", s.Method},
		{"Generated", s.Created.Format(time.RFC3339)},
		{"Baseline start (s)", s.Baseline.Start},
		{"Baseline end (s)", s.Baseline.End},
		{"Estimator", s.Estimator.String()},
		{"Boundary", s.Boundary.String()},
		{"Events", s.Events},
		{"Aligned", s.Aligned},
		{"Excluded", s.Excluded},
		{"Out of range", s.OutOfRange},
	}
}
