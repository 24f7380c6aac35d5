package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-photometry/dsp/stream"
	"github.com/cwbudde/algo-photometry/internal/config"
	"github.com/cwbudde/algo-photometry/internal/export"
	"github.com/cwbudde/algo-photometry/internal/metrics"
	"github.com/cwbudde/algo-photometry/internal/recording"
	"github.com/cwbudde/algo-photometry/measure/dff"
	"github.com/cwbudde/algo-photometry/measure/freeze"
	"github.com/cwbudde/algo-photometry/measure/photometry"
	"github.com/cwbudde/algo-photometry/measure/sync"
)

type processor struct {
	cfg    *config.Config
	runID  string
	freeze bool
	rec    *metrics.Recorder
}

// process runs one recording end to end and writes its results into dir.
func (p *processor) process(j job, dir string) (export.Summary, error) {
	cfg := p.cfg
	name := strings.TrimSuffix(filepath.Base(j.Recording), filepath.Ext(j.Recording))

	rec, err := loadRecording(cfg, j.Recording)
	if err != nil {
		return export.Summary{}, err
	}

	trace, err := computeDFF(cfg, rec)
	if err != nil {
		return export.Summary{}, fmt.Errorf("dF/F: %w", err)
	}

	events, err := p.loadEvents(j.Events)
	if err != nil {
		return export.Summary{}, fmt.Errorf("events %s: %w", j.Events, err)
	}

	boundary, err := cfg.BoundaryPolicy()
	if err != nil {
		return export.Summary{}, err
	}
	opts := []photometry.AlignOption{photometry.WithBoundary(boundary)}
	if cfg.Step > 0 {
		opts = append(opts, photometry.WithStep(cfg.Step))
	}
	al, err := photometry.AlignToEvents(trace, events, cfg.Before, cfg.After, opts...)
	if err != nil {
		return export.Summary{}, fmt.Errorf("align: %w", err)
	}

	p.rec.Events(metrics.OutcomeAligned, len(al.Segments))
	p.rec.Events(metrics.OutcomeExcluded, al.Excluded)
	p.rec.Events(metrics.OutcomeOutOfRange, al.OutOfRange)

	segs := al.Segments
	if cfg.ZScore {
		pre := photometry.Window{Start: -cfg.Before, End: 0}
		for i, s := range segs {
			if segs[i], err = photometry.ZScore(s, pre); err != nil {
				return export.Summary{}, fmt.Errorf("z-score event %d: %w", s.Index, err)
			}
		}
	}

	avg, err := photometry.AverageSegments(segs)
	if err != nil && !errors.Is(err, photometry.ErrEmptyInput) {
		return export.Summary{}, fmt.Errorf("average: %w", err)
	}

	sum := export.NewSummary(p.runID, name, cfg.Method, al, len(events))
	sum.Baseline = baselineWindow(cfg, trace)
	sum.Estimator, _ = cfg.BaselineEstimator()

	if strings.EqualFold(cfg.Format, config.FormatXLSX) {
		err = writeFile(filepath.Join(dir, name+".xlsx"), func(w io.Writer) error {
			return export.WriteXLSX(w, sum, segs, avg)
		})
	} else {
		err = writeFile(filepath.Join(dir, name+"_segments.csv"), func(w io.Writer) error {
			return export.WriteSegments(w, segs)
		})
		if err == nil {
			err = writeFile(filepath.Join(dir, name+"_average.csv"), func(w io.Writer) error {
				return export.WriteAverage(w, avg)
			})
		}
	}
	if err != nil {
		return export.Summary{}, err
	}

	err = writeFile(filepath.Join(dir, name+"_summary.pdf"), func(w io.Writer) error {
		return export.WritePDF(w, sum, avg)
	})
	return sum, err
}

// loadRecording reads the channels, drops the LED onset artifact and
// decimates.
func loadRecording(cfg *config.Config, path string) (recording.Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return recording.Recording{}, err
	}
	defer f.Close()

	cols := recording.Columns{Time: cfg.TimeColumn, Signal: cfg.SignalChannel}
	if cfg.Method != config.MethodBaseline {
		cols.Isos = cfg.IsosChannel
	}
	rec, err := recording.LoadCSV(f, cols)
	if err != nil {
		return recording.Recording{}, fmt.Errorf("%s: %w", path, err)
	}
	rec.Name = path

	rec.Signal, err = prepare(cfg, rec.Signal)
	if err != nil {
		return recording.Recording{}, err
	}
	if rec.HasIsos() {
		if rec.Isos, err = prepare(cfg, rec.Isos); err != nil {
			return recording.Recording{}, err
		}
	}
	return rec, nil
}

func prepare(cfg *config.Config, s stream.Stream) (stream.Stream, error) {
	if cfg.ArtifactSeconds > 0 {
		s = s.TrimBefore(cfg.ArtifactSeconds)
	}
	if s.Len() == 0 {
		return stream.Stream{}, stream.ErrEmpty
	}
	return s.Decimate(cfg.Decimate)
}

func baselineWindow(cfg *config.Config, s stream.Stream) photometry.Window {
	if cfg.BaselineStart == cfg.BaselineEnd {
		return photometry.Whole(s)
	}
	return photometry.Window{Start: cfg.BaselineStart, End: cfg.BaselineEnd}
}

// computeDFF returns the dF/F trace on the signal's time base.
func computeDFF(cfg *config.Config, rec recording.Recording) (stream.Stream, error) {
	switch cfg.Method {
	case config.MethodLerner:
		values, err := dff.Lerner(rec.Signal.Values, rec.Isos.Values)
		if err != nil {
			return stream.Stream{}, err
		}
		return rec.Signal.WithValues(values)

	case config.MethodBaseline:
		est, err := cfg.BaselineEstimator()
		if err != nil {
			return stream.Stream{}, err
		}
		out, _, err := dff.Baseline(rec.Signal, baselineWindow(cfg, rec.Signal), photometry.WithEstimator(est))
		return out, err

	default:
		res, err := dff.New(pipelineOptions(cfg, rec.Signal)...).Run(rec.Signal.Values, rec.Isos.Values)
		if err != nil {
			return stream.Stream{}, err
		}
		return rec.Signal.WithValues(res.DFF)
	}
}

// pipelineOptions infers the sample rate from the timestamps of s. A
// configured sample rate is applied last and wins.
func pipelineOptions(cfg *config.Config, s stream.Stream) []dff.Option {
	opts := []dff.Option{dff.WithSampleRate(s.SampleRate())}
	if po := cfg.ProcessorOptions(); len(po) > 0 {
		opts = append(opts, dff.WithProcessorOptions(po...))
	}
	return opts
}

// loadEvents reads event timestamps on the recording clock. In freeze mode
// the file is a motion trace and the events are freezing onsets.
func (p *processor) loadEvents(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := p.cfg
	if !p.freeze {
		events, err := recording.LoadEvents(f, cfg.EventName)
		if err != nil {
			return nil, err
		}
		return sync.OffsetClock(cfg.EventOffset).ToRecordingAll(events), nil
	}

	cols, err := recording.LoadColumns(f, cfg.MotionColumn)
	if err != nil {
		return nil, err
	}
	mask, err := freeze.Detect(cols[0], cfg.FreezeThreshold, cfg.FreezeMinFrames)
	if err != nil {
		return nil, err
	}
	episodes, err := freeze.Episodes(mask, cfg.VideoFPS, 0)
	if err != nil {
		return nil, err
	}
	return sync.OffsetClock(cfg.VideoOffset).ToRecordingAll(freeze.Onsets(episodes)), nil
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
