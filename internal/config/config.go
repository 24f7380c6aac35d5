// Package config defines the settings shared by the command line tools and
// loads them from defaults, an optional YAML file and FP_* environment
// variables.
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/cwbudde/algo-photometry/dsp/core"
	"github.com/cwbudde/algo-photometry/dsp/stream"
	"github.com/cwbudde/algo-photometry/measure/photometry"
)

// dF/F methods.
const (
	MethodPipeline = "pipeline"
	MethodLerner   = "lerner"
	MethodBaseline = "baseline"
)

// Output formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// TimeColumn, SignalChannel and IsosChannel name the CSV columns of a
	// recording export.
	TimeColumn    string `koanf:"time_column"`
	SignalChannel string `koanf:"signal_channel"`
	IsosChannel   string `koanf:"isos_channel"`

	// SampleRate in Hz; 0 infers it from the timestamps.
	SampleRate float64 `koanf:"sample_rate"`

	// ArtifactSeconds drops the LED onset artifact at the start.
	ArtifactSeconds float64 `koanf:"artifact_seconds"`

	// Decimate averages blocks of this many samples; 1 disables it.
	Decimate int `koanf:"decimate"`

	// Method selects the dF/F computation: pipeline, lerner or baseline.
	Method string `koanf:"method"`

	// BaselineStart and BaselineEnd bound the F0 window of the baseline
	// method. Equal values select the whole recording.
	BaselineStart float64 `koanf:"baseline_start"`
	BaselineEnd   float64 `koanf:"baseline_end"`
	Estimator     string  `koanf:"estimator"`

	// EventName keeps only events of this name when the events file has a
	// name column. EventOffset is added to every event timestamp.
	EventName   string  `koanf:"event_name"`
	EventOffset float64 `koanf:"event_offset"`

	// Before, After and Step define the peri-event grid in seconds. Step 0
	// uses the recording's sample interval.
	Before float64 `koanf:"before"`
	After  float64 `koanf:"after"`
	Step   float64 `koanf:"step"`

	// Boundary is the policy for windows leaving the recording: exclude or pad.
	Boundary string `koanf:"boundary"`

	// ZScore scores each segment against its pre-event window.
	ZScore bool `koanf:"zscore"`

	// Format selects csv or xlsx output. OutDir defaults to the recording's
	// directory.
	Format string `koanf:"format"`
	OutDir string `koanf:"out_dir"`

	// Workers bounds the recordings processed in parallel.
	Workers int `koanf:"workers"`

	// MetricsFile, when set, receives a Prometheus textfile after the run.
	MetricsFile string `koanf:"metrics_file"`

	// SkipSeconds is dropped from the start of every epoch by fpsplit.
	SkipSeconds float64 `koanf:"skip_seconds"`

	// MotionColumn, FreezeThreshold and FreezeMinFrames configure freezing
	// detection when events come from a motion trace. VideoFPS is the frame
	// rate of that trace and VideoOffset the fiber time of frame 0.
	MotionColumn    string  `koanf:"motion_column"`
	FreezeThreshold float64 `koanf:"freeze_threshold"`
	FreezeMinFrames int     `koanf:"freeze_min_frames"`
	VideoFPS        float64 `koanf:"video_fps"`
	VideoOffset     float64 `koanf:"video_offset"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		TimeColumn:      "time",
		SignalChannel:   "_465A",
		IsosChannel:     "_405A",
		SampleRate:      0,
		ArtifactSeconds: stream.DefaultArtifactSeconds,
		Decimate:        10,
		Method:          MethodPipeline,
		Estimator:       photometry.Mean.String(),
		Before:          5,
		After:           10,
		Boundary:        photometry.Exclude.String(),
		Format:          FormatCSV,
		Workers:         runtime.NumCPU(),
		SkipSeconds:     10,
		MotionColumn:    "motion",
		FreezeThreshold: 100,
		FreezeMinFrames: 30,
		VideoFPS:        30,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.TimeColumn == "" || c.SignalChannel == "":
		return fmt.Errorf("%w: time_column and signal_channel must not be empty", ErrInvalidConfig)
	case c.Method != MethodBaseline && c.IsosChannel == "":
		return fmt.Errorf("%w: method %q needs isos_channel", ErrInvalidConfig, c.Method)
	case c.SampleRate < 0:
		return fmt.Errorf("%w: sample_rate must be >= 0: %f", ErrInvalidConfig, c.SampleRate)
	case c.ArtifactSeconds < 0:
		return fmt.Errorf("%w: artifact_seconds must be >= 0: %f", ErrInvalidConfig, c.ArtifactSeconds)
	case c.Decimate < 1:
		return fmt.Errorf("%w: decimate must be >= 1: %d", ErrInvalidConfig, c.Decimate)
	case c.Before < 0 || c.After < 0:
		return fmt.Errorf("%w: before and after must be >= 0", ErrInvalidConfig)
	case c.ZScore && c.Before == 0:
		return fmt.Errorf("%w: zscore needs a pre-event window, before must be > 0", ErrInvalidConfig)
	case c.Step < 0:
		return fmt.Errorf("%w: step must be >= 0: %f", ErrInvalidConfig, c.Step)
	case c.BaselineEnd < c.BaselineStart:
		return fmt.Errorf("%w: baseline_end before baseline_start", ErrInvalidConfig)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be >= 1: %d", ErrInvalidConfig, c.Workers)
	case c.SkipSeconds < 0:
		return fmt.Errorf("%w: skip_seconds must be >= 0: %f", ErrInvalidConfig, c.SkipSeconds)
	case c.FreezeMinFrames < 1:
		return fmt.Errorf("%w: freeze_min_frames must be >= 1: %d", ErrInvalidConfig, c.FreezeMinFrames)
	case c.VideoFPS <= 0:
		return fmt.Errorf("%w: video_fps must be > 0: %f", ErrInvalidConfig, c.VideoFPS)
	}

	switch c.Method {
	case MethodPipeline, MethodLerner, MethodBaseline:
	default:
		return fmt.Errorf("%w: unknown method %q", ErrInvalidConfig, c.Method)
	}

	switch strings.ToLower(c.Format) {
	case FormatCSV, FormatXLSX:
	default:
		return fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, c.Format)
	}

	if _, err := c.BoundaryPolicy(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.BaselineEstimator(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.SlogLevel(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// BoundaryPolicy parses Boundary.
func (c *Config) BoundaryPolicy() (photometry.Boundary, error) {
	return photometry.ParseBoundary(c.Boundary)
}

// BaselineEstimator parses Estimator.
func (c *Config) BaselineEstimator() (photometry.Estimator, error) {
	return photometry.ParseEstimator(c.Estimator)
}

// ProcessorOptions returns the sample rate after decimation as processor
// options, or none when it is to be inferred from the timestamps.
func (c *Config) ProcessorOptions() []core.ProcessorOption {
	if c.SampleRate <= 0 {
		return nil
	}
	return []core.ProcessorOption{core.WithSampleRate(c.SampleRate / float64(max(c.Decimate, 1)))}
}
