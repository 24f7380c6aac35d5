package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-photometry/dsp/stream"
	"github.com/cwbudde/algo-photometry/internal/config"
	"github.com/cwbudde/algo-photometry/measure/dff"
)

func writeRecording(t *testing.T, dir string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("time,_465A\n")
	for i := 1; i <= 200; i++ {
		tm := float64(i) / 10
		v := 1.0
		if tm >= 10 && tm < 10.5 {
			v = 2
		}
		fmt.Fprintf(&b, "%g,%g\n", tm, v)
	}
	path := filepath.Join(dir, "m12.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func setBaselineEnv(t *testing.T) {
	t.Helper()
	t.Setenv("FP_CONFIG", "")
	t.Setenv("FP_METHOD", "baseline")
	t.Setenv("FP_DECIMATE", "1")
	t.Setenv("FP_ARTIFACT_SECONDS", "0")
	t.Setenv("FP_BEFORE", "1")
	t.Setenv("FP_AFTER", "1")
	t.Setenv("FP_WORKERS", "2")
}

func TestParseJob(t *testing.T) {
	assert.Equal(t, job{Recording: "a/m1.csv", Events: "a/m1_events.csv"}, parseJob("a/m1.csv"))
	assert.Equal(t, job{Recording: "m1.csv", Events: "ev.csv"}, parseJob("m1.csv:ev.csv"))
}

func TestRunAlignsAndExports(t *testing.T) {
	setBaselineEnv(t)
	dir := t.TempDir()
	rec := writeRecording(t, dir)
	events := filepath.Join(dir, "shocks.csv")
	require.NoError(t, os.WriteFile(events, []byte("onset\n10\n15\n50\n"), 0o644))
	metricsFile := filepath.Join(dir, "fp.prom")
	t.Setenv("FP_METRICS_FILE", metricsFile)

	code := run(context.Background(), []string{rec + ":" + events}, io.Discard)
	require.Equal(t, 0, code)

	out := filepath.Join(dir, "analysis")
	f, err := os.Open(filepath.Join(out, "m12_segments.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"time", "event_0", "event_1"}, rows[0])
	assert.Len(t, rows, 22)

	assert.FileExists(t, filepath.Join(out, "m12_average.csv"))
	assert.FileExists(t, filepath.Join(out, "m12_summary.pdf"))

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `outcome="out_of_range"`)
}

func TestRunRefusesExistingOutput(t *testing.T) {
	setBaselineEnv(t)
	dir := t.TempDir()
	rec := writeRecording(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "m12_events.csv"), []byte("10\n"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "analysis"), 0o755))

	assert.Equal(t, 1, run(context.Background(), []string{rec}, io.Discard))
	assert.Equal(t, 0, run(context.Background(), []string{"-overwrite", rec}, io.Discard))
	assert.Equal(t, 0, run(context.Background(), []string{"-alt", "second", rec}, io.Discard))
	assert.FileExists(t, filepath.Join(dir, "second", "m12_segments.csv"))
	assert.Equal(t, 2, run(context.Background(), []string{"-bogus", rec}, io.Discard))
}

func TestRunXLSXWithFreezeEvents(t *testing.T) {
	setBaselineEnv(t)
	t.Setenv("FP_FORMAT", "xlsx")
	t.Setenv("FP_VIDEO_FPS", "10")
	t.Setenv("FP_FREEZE_MIN_FRAMES", "5")
	t.Setenv("FP_FREEZE_THRESHOLD", "1")

	dir := t.TempDir()
	rec := writeRecording(t, dir)

	var b strings.Builder
	b.WriteString("frame,motion\n")
	for i := range 200 {
		m := 10.0
		if i >= 100 && i < 120 {
			m = 0
		}
		fmt.Fprintf(&b, "%d,%g\n", i, m)
	}
	motion := filepath.Join(dir, "motion.csv")
	require.NoError(t, os.WriteFile(motion, []byte(b.String()), 0o644))

	out := filepath.Join(dir, "results")
	code := run(context.Background(), []string{"-freeze", "-out", out, rec + ":" + motion}, io.Discard)
	require.Equal(t, 0, code)
	assert.FileExists(t, filepath.Join(out, "m12.xlsx"))
}

func TestPipelineOptionsPrecedence(t *testing.T) {
	s, err := stream.FromRate(make([]float64, 100), 50, 0)
	require.NoError(t, err)

	cfg := config.New()
	assert.InDelta(t, 50, dff.New(pipelineOptions(cfg, s)...).SampleRate, 1e-9)

	cfg.SampleRate = 1000
	cfg.Decimate = 10
	assert.InDelta(t, 100, dff.New(pipelineOptions(cfg, s)...).SampleRate, 1e-9)
}

func TestRunUsage(t *testing.T) {
	assert.Equal(t, 2, run(context.Background(), nil, io.Discard))
}
