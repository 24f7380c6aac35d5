// Command fpsplit cuts a long recording into its acquisition epochs and
// writes one CSV per epoch with the raw channels and dF/F.
//
// Usage:
//
//	fpsplit [flags] recording.csv
//
// Epoch onsets and offsets come from an onset,offset CSV (default
// epochs.csv next to the recording). The block start in Notes.txt stamps
// every output file with the wall-clock time of its epoch.
//
// Examples:
//
//	fpsplit long.csv
//	fpsplit -epochs tc1.csv -notes block/Notes.txt -overwrite long.csv
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
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-photometry/dsp/stream"
	"github.com/cwbudde/algo-photometry/internal/config"
	"github.com/cwbudde/algo-photometry/internal/export"
	"github.com/cwbudde/algo-photometry/internal/recording"
	"github.com/cwbudde/algo-photometry/measure/dff"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("fpsplit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML config file (default $"+config.EnvFile+")")
	epochsPath := fs.String("epochs", "", "onset,offset CSV (default epochs.csv next to the recording)")
	notesPath := fs.String("notes", "", "block Notes.txt (default Notes.txt next to the recording)")
	overwrite := fs.Bool("overwrite", false, "replace an existing output folder")
	alt := fs.String("alt", "", "output folder name to use instead of "+export.DefaultDir)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: fpsplit [flags] recording.csv")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "fpsplit: %v\n", err)
		return 1
	}
	recPath := fs.Arg(0)
	base := filepath.Dir(recPath)
	if *epochsPath == "" {
		*epochsPath = filepath.Join(base, "epochs.csv")
	}
	if *notesPath == "" {
		*notesPath = filepath.Join(base, "Notes.txt")
	}

	logger := cfg.NewLogger().With(slog.String("run", uuid.NewString()), slog.String("recording", recPath))

	if err := split(ctx, cfg, logger, recPath, *epochsPath, *notesPath, *alt, *overwrite); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("interrupted")
			return 130
		}
		logger.Error("split", slog.Any("error", err))
		return 1
	}
	return 0
}

func split(ctx context.Context, cfg *config.Config, logger *slog.Logger, recPath, epochsPath, notesPath, alt string, overwrite bool) error {
	notes, err := readNotes(notesPath)
	if err != nil {
		return err
	}

	onsets, offsets, err := readIntervals(epochsPath)
	if err != nil {
		return err
	}
	epochs, err := recording.Epochs(onsets, offsets, cfg.SkipSeconds, notes.Start)
	if err != nil {
		return err
	}

	rec, err := readRecording(cfg, recPath)
	if err != nil {
		return err
	}

	dir, err := export.PrepareDir(filepath.Dir(recPath), alt, overwrite)
	if err != nil {
		return err
	}
	logger.Info("splitting",
		slog.String("subject", notes.Subject),
		slog.String("experiment", notes.Experiment),
		slog.Int("epochs", len(epochs)),
		slog.String("out", dir))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for _, e := range epochs {
		if e.Empty() {
			logger.Warn("epoch shorter than skip", slog.Int("epoch", e.Index), slog.Float64("onset", e.Onset))
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path := recording.OutputPath(dir, e, ".csv")
			if err := writeEpoch(cfg, rec, e, path); err != nil {
				return fmt.Errorf("epoch %d: %w", e.Index, err)
			}
			logger.Debug("wrote epoch", slog.Int("epoch", e.Index), slog.String("file", path))
			return nil
		})
	}
	return g.Wait()
}

func writeEpoch(cfg *config.Config, rec recording.Recording, e recording.Epoch, path string) error {
	sig := rec.Signal.Slice(e.Start, e.Offset)
	isos := rec.Isos.Slice(e.Start, e.Offset)
	if sig.Len() == 0 {
		return stream.ErrEmpty
	}

	// Epochs are not decimated.
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = sig.SampleRate()
	}
	res, err := dff.New(dff.WithSampleRate(rate)).Run(sig.Values, isos.Values)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = export.WriteStreams(f, sig,
		export.Column{Name: "raw_405nm", Values: isos.Values},
		export.Column{Name: "raw_465nm", Values: sig.Values},
		export.Column{Name: "dff", Values: res.DFF},
	)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func readNotes(path string) (recording.Notes, error) {
	f, err := os.Open(path)
	if err != nil {
		return recording.Notes{}, err
	}
	defer f.Close()
	return recording.ParseNotes(f)
}

func readIntervals(path string) ([]float64, []float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return recording.LoadIntervals(f)
}

func readRecording(cfg *config.Config, path string) (recording.Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return recording.Recording{}, err
	}
	defer f.Close()

	rec, err := recording.LoadCSV(f, recording.Columns{
		Time:   cfg.TimeColumn,
		Signal: cfg.SignalChannel,
		Isos:   cfg.IsosChannel,
	})
	if err != nil {
		return recording.Recording{}, fmt.Errorf("%s: %w", path, err)
	}
	rec.Name = path
	return rec, nil
}
