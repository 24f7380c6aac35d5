package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-photometry/dsp/core"
	"github.com/cwbudde/algo-photometry/internal/config"
	"github.com/cwbudde/algo-photometry/measure/photometry"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(config.EnvFile, "")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "_465A", cfg.SignalChannel)
	assert.Equal(t, "_405A", cfg.IsosChannel)
	assert.Equal(t, 8.0, cfg.ArtifactSeconds)
	assert.Equal(t, 10, cfg.Decimate)
	assert.Equal(t, config.MethodPipeline, cfg.Method)
	assert.Equal(t, config.FormatCSV, cfg.Format)
	assert.GreaterOrEqual(t, cfg.Workers, 1)
	assert.Empty(t, cfg.ProcessorOptions())

	b, err := cfg.BoundaryPolicy()
	require.NoError(t, err)
	assert.Equal(t, photometry.Exclude, b)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fp.yaml")
	yaml := "boundary: pad\nbefore: 2.5\nafter: 20\nformat: xlsx\nlog_level: debug\nsample_rate: 1017.25\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv(config.EnvFile, path)
	t.Setenv("FP_AFTER", "30")
	t.Setenv("FP_ZSCORE", "true")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "pad", cfg.Boundary)
	assert.Equal(t, 2.5, cfg.Before)
	assert.Equal(t, 30.0, cfg.After, "env overrides file")
	assert.True(t, cfg.ZScore)
	assert.Equal(t, config.FormatXLSX, cfg.Format)
	assert.Len(t, cfg.ProcessorOptions(), 1)

	lvl, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
	assert.NotNil(t, cfg.NewLogger())
}

func TestLoadExplicitPathWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "explicit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("method: lerner\n"), 0o600))
	t.Setenv(config.EnvFile, filepath.Join(dir, "missing.yaml"))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.MethodLerner, cfg.Method)
}

func TestLoadErrors(t *testing.T) {
	t.Setenv(config.EnvFile, "")

	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, config.ErrLoadConfig)

	t.Setenv("FP_BOUNDARY", "clip")
	_, err = config.Load("")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Config)
	}{
		{"empty signal channel", func(c *config.Config) { c.SignalChannel = "" }},
		{"negative rate", func(c *config.Config) { c.SampleRate = -1 }},
		{"zero decimate", func(c *config.Config) { c.Decimate = 0 }},
		{"negative before", func(c *config.Config) { c.Before = -1 }},
		{"reversed baseline", func(c *config.Config) { c.BaselineStart, c.BaselineEnd = 5, 1 }},
		{"unknown method", func(c *config.Config) { c.Method = "ratio" }},
		{"unknown format", func(c *config.Config) { c.Format = "parquet" }},
		{"bad estimator", func(c *config.Config) { c.Estimator = "mode" }},
		{"bad log level", func(c *config.Config) { c.LogLevel = "loud" }},
		{"no workers", func(c *config.Config) { c.Workers = 0 }},
		{"lerner without isos", func(c *config.Config) { c.Method = config.MethodLerner; c.IsosChannel = "" }},
		{"zscore without pre-event window", func(c *config.Config) { c.ZScore = true; c.Before = 0 }},
		{"zero freeze frames", func(c *config.Config) { c.FreezeMinFrames = 0 }},
		{"zero video fps", func(c *config.Config) { c.VideoFPS = 0 }},
	}

	require.NoError(t, config.New().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := config.New()
			tt.modify(c)
			assert.ErrorIs(t, c.Validate(), config.ErrInvalidConfig)
		})
	}

	c := config.New()
	c.Method = config.MethodBaseline
	c.IsosChannel = ""
	assert.NoError(t, c.Validate())
}

func TestProcessorOptionsAccountForDecimation(t *testing.T) {
	c := config.New()
	c.SampleRate = 1000
	c.Decimate = 10

	got := core.ApplyProcessorOptions(c.ProcessorOptions()...)
	assert.InDelta(t, 100.0, got.SampleRate, 1e-12)
}
