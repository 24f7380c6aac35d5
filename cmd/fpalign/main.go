// Command fpalign aligns fiber photometry recordings to behavioural events
// and writes the peri-event segments, their average and a summary report.
//
// Usage:
//
//	fpalign [flags] recording.csv[:events.csv] ...
//
// Without an explicit events file, <name>_events.csv next to the recording
// is used. With -freeze the events file is a motion trace and the onsets of
// freezing episodes become the events.
//
// Examples:
//
//	fpalign session1.csv:shocks.csv
//	fpalign -config fp.yaml -overwrite m12.csv m13.csv
//	fpalign -freeze -out results m12.csv:m12_motion.csv
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-photometry/internal/config"
	"github.com/cwbudde/algo-photometry/internal/export"
	"github.com/cwbudde/algo-photometry/internal/metrics"
)

// job is one recording and the file its events come from.
type job struct {
	Recording string
	Events    string
}

func parseJob(arg string) job {
	rec, events, ok := strings.Cut(arg, ":")
	if !ok || events == "" {
		events = strings.TrimSuffix(rec, filepath.Ext(rec)) + "_events.csv"
	}
	return job{Recording: rec, Events: events}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("fpalign", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML config file (default $"+config.EnvFile+")")
	outDir := fs.String("out", "", "write every result into this directory")
	overwrite := fs.Bool("overwrite", false, "replace an existing output folder")
	alt := fs.String("alt", "", "output folder name to use instead of "+export.DefaultDir)
	freezeEvents := fs.Bool("freeze", false, "treat events files as motion traces")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: fpalign [flags] recording.csv[:events.csv] ...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "fpalign: %v\n", err)
		return 1
	}
	if *outDir != "" {
		cfg.OutDir = *outDir
	}

	runID := uuid.NewString()
	logger := cfg.NewLogger().With(slog.String("run", runID))

	jobs := make([]job, fs.NArg())
	for i, arg := range fs.Args() {
		jobs[i] = parseJob(arg)
	}

	dirs, err := outputDirs(cfg, jobs, *alt, *overwrite)
	if err != nil {
		logger.Error("prepare output", slog.Any("error", err))
		return 1
	}

	rec := metrics.NewRecorder()
	p := &processor{
		cfg:    cfg,
		runID:  runID,
		freeze: *freezeEvents,
		rec:    rec,
	}

	var failed atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			log := logger.With(slog.String("recording", j.Recording))
			start := time.Now()
			sum, err := p.process(j, dirs[i])
			if err != nil {
				failed.Add(1)
				rec.Recording(metrics.ResultFailed, time.Since(start))
				log.Error("process recording", slog.Any("error", err))
				return nil
			}
			rec.Recording(metrics.ResultOK, time.Since(start))
			log.Info("aligned",
				slog.Int("events", sum.Events),
				slog.Int("aligned", sum.Aligned),
				slog.Int("excluded", sum.Excluded),
				slog.Int("out_of_range", sum.OutOfRange),
				slog.Duration("elapsed", time.Since(start)))
			return nil
		})
	}
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("batch", slog.Any("error", err))
		return 1
	}

	if cfg.MetricsFile != "" {
		if err := rec.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Error("write metrics", slog.Any("error", err))
		}
	}

	if ctx.Err() != nil {
		logger.Warn("interrupted")
		return 130
	}
	if n := failed.Load(); n > 0 {
		logger.Error("batch finished with failures", slog.Int("failed", int(n)), slog.Int("total", len(jobs)))
		return 1
	}
	return 0
}

// outputDirs resolves the output directory of every job. Each distinct
// recording directory gets its analysis folder prepared once.
func outputDirs(cfg *config.Config, jobs []job, alt string, overwrite bool) ([]string, error) {
	out := make([]string, len(jobs))
	if cfg.OutDir != "" {
		if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
			return nil, err
		}
		for i := range out {
			out[i] = cfg.OutDir
		}
		return out, nil
	}

	prepared := map[string]string{}
	for i, j := range jobs {
		parent := filepath.Dir(j.Recording)
		dir, ok := prepared[parent]
		if !ok {
			var err error
			if dir, err = export.PrepareDir(parent, alt, overwrite); err != nil {
				return nil, err
			}
			prepared[parent] = dir
		}
		out[i] = dir
	}
	return out, nil
}
