package recording

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// NotesLayout is the timestamp layout of the Start and Stop lines.
const NotesLayout = "3:04:05pm 01/02/2006"

// ClockLayout is a bare time of day as written in event logs.
const ClockLayout = "3:04:05pm"

// ErrMissingField indicates a Notes.txt header line that was not found.
var ErrMissingField = errors.New("recording: missing notes field")

// Notes is the block header written by the acquisition software.
type Notes struct {
	Experiment string
	Subject    string
	Start      time.Time
	Stop       time.Time
}

// Duration returns Stop minus Start.
func (n Notes) Duration() time.Duration { return n.Stop.Sub(n.Start) }

// ParseNotes reads the Experiment, Subject, Start and Stop lines of a
// Notes.txt file. All four are required.
func ParseNotes(r io.Reader) (Notes, error) {
	fields := map[string]string{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		for _, key := range []string{"Experiment", "Subject", "Start", "Stop"} {
			if _, seen := fields[key]; seen {
				continue
			}
			if rest, ok := strings.CutPrefix(line, key+":"); ok {
				fields[key] = strings.TrimSpace(rest)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return Notes{}, fmt.Errorf("recording: read notes: %w", err)
	}

	for _, key := range []string{"Experiment", "Subject", "Start", "Stop"} {
		if _, ok := fields[key]; !ok {
			return Notes{}, fmt.Errorf("%w: %s", ErrMissingField, key)
		}
	}

	n := Notes{Experiment: fields["Experiment"], Subject: fields["Subject"]}
	var err error
	if n.Start, err = parseStamp(fields["Start"]); err != nil {
		return Notes{}, fmt.Errorf("recording: start: %w", err)
	}
	if n.Stop, err = parseStamp(fields["Stop"]); err != nil {
		return Notes{}, fmt.Errorf("recording: stop: %w", err)
	}

	return n, nil
}

func parseStamp(s string) (time.Time, error) {
	return time.ParseInLocation(NotesLayout, strings.ToLower(s), time.Local)
}

// ClockSeconds converts a time of day such as "3:27:29PM" to seconds
// after midnight.
func ClockSeconds(s string) (float64, error) {
	t, err := time.Parse(ClockLayout, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return 0, err
	}
	return float64(t.Hour()*3600 + t.Minute()*60 + t.Second()), nil
}
