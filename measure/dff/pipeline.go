package dff

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-photometry/dsp/core"
	"github.com/cwbudde/algo-photometry/dsp/filter/biquad"
	"github.com/cwbudde/algo-photometry/dsp/filter/design"
	"github.com/cwbudde/algo-photometry/dsp/filter/median"
	"github.com/cwbudde/algo-photometry/stats/regress"
)

// Default pipeline parameters.
const (
	DefaultMedianKernel   = median.DefaultKernel
	DefaultLowpassHz      = 10.0
	DefaultFilterOrder    = 2
	DefaultDebleachDegree = 4
	DefaultBaselineHz     = 0.001
)

// Pipeline computes dF/F by denoising, debleaching and motion correcting
// the signal channel against the isosbestic channel.
type Pipeline struct {
	core.ProcessorConfig

	medianKernel   int
	lowpassHz      float64
	filterOrder    int
	debleachDegree int
	baselineHz     float64
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSampleRate sets the channel sample rate in Hz.
func WithSampleRate(fs float64) Option {
	return func(p *Pipeline) {
		p.ProcessorConfig = core.ApplyProcessorOptions(core.WithSampleRate(fs))
	}
}

// WithProcessorOptions applies shared processor options.
func WithProcessorOptions(opts ...core.ProcessorOption) Option {
	return func(p *Pipeline) {
		p.ProcessorConfig = core.ApplyProcessorOptions(opts...)
	}
}

// WithMedianKernel sets the odd median filter kernel. 1 disables it.
func WithMedianKernel(k int) Option {
	return func(p *Pipeline) { p.medianKernel = k }
}

// WithLowpass sets the denoising low-pass cutoff in Hz.
func WithLowpass(hz float64) Option {
	return func(p *Pipeline) { p.lowpassHz = hz }
}

// WithFilterOrder sets the Butterworth order of both low-pass filters.
func WithFilterOrder(order int) Option {
	return func(p *Pipeline) { p.filterOrder = order }
}

// WithDebleachDegree sets the degree of the bleaching trend polynomial.
func WithDebleachDegree(deg int) Option {
	return func(p *Pipeline) { p.debleachDegree = deg }
}

// WithBaselineCutoff sets the cutoff of the slow baseline low-pass in Hz.
func WithBaselineCutoff(hz float64) Option {
	return func(p *Pipeline) { p.baselineHz = hz }
}

// New returns a Pipeline with the given options applied over the defaults.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		ProcessorConfig: core.DefaultProcessorConfig(),
		medianKernel:    DefaultMedianKernel,
		lowpassHz:       DefaultLowpassHz,
		filterOrder:     DefaultFilterOrder,
		debleachDegree:  DefaultDebleachDegree,
		baselineHz:      DefaultBaselineHz,
	}
	for _, o := range opts {
		if o != nil {
			o(p)
		}
	}
	return p
}

// Result holds the intermediate and final traces of one Pipeline run.
type Result struct {
	// Denoised signal and isosbestic channels.
	Signal     []float64
	Isosbestic []float64

	// Debleached signal and isosbestic channels.
	SignalDetrended     []float64
	IsosbesticDetrended []float64

	// Motion is the isosbestic fit of the debleached signal.
	Motion    regress.Line
	Corrected []float64
	Baseline  []float64
	DFF       []float64
}

// Run processes equal-length signal and isosbestic channels sampled at the
// pipeline's sample rate. Inputs are not modified.
func (p *Pipeline) Run(signal, isos []float64) (Result, error) {
	if len(signal) != len(isos) {
		return Result{}, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(signal), len(isos))
	}

	lowpass, err := design.ButterworthLP(p.lowpassHz, p.filterOrder, p.SampleRate)
	if err != nil {
		return Result{}, err
	}
	slow, err := design.ButterworthLP(p.baselineHz, p.filterOrder, p.SampleRate)
	if err != nil {
		return Result{}, err
	}

	var res Result
	if res.Signal, err = p.denoise(signal, lowpass); err != nil {
		return Result{}, err
	}
	if res.Isosbestic, err = p.denoise(isos, lowpass); err != nil {
		return Result{}, err
	}

	x := make([]float64, len(signal))
	for i := range x {
		x[i] = float64(i) / p.SampleRate
	}
	if res.SignalDetrended, err = p.debleach(x, res.Signal); err != nil {
		return Result{}, err
	}
	if res.IsosbesticDetrended, err = p.debleach(x, res.Isosbestic); err != nil {
		return Result{}, err
	}

	res.Motion, err = regress.LinearFit(res.IsosbesticDetrended, res.SignalDetrended)
	if err != nil {
		return Result{}, fmt.Errorf("%w: motion: %w", ErrDegenerateFit, err)
	}
	res.Corrected = res.Motion.Eval(res.IsosbesticDetrended)
	for i, y := range res.SignalDetrended {
		res.Corrected[i] = y - res.Corrected[i]
	}

	res.Baseline, err = biquad.FiltFilt(slow, res.Signal, biquad.WithPadType(biquad.PadEven))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrTooShort, err)
	}

	// dF/F = corrected * (1 / baseline)
	res.DFF = make([]float64, len(signal))
	inv := make([]float64, len(signal))
	for i, b := range res.Baseline {
		inv[i] = 1 / b
	}
	vecmath.MulBlock(res.DFF, res.Corrected, inv)

	return res, nil
}

func (p *Pipeline) denoise(x []float64, lowpass []biquad.Coefficients) ([]float64, error) {
	med := x
	if p.medianKernel > 1 {
		var err error
		if med, err = median.Filter(x, p.medianKernel); err != nil {
			return nil, err
		}
	}

	out, err := biquad.FiltFilt(lowpass, med)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTooShort, err)
	}
	return out, nil
}

func (p *Pipeline) debleach(x, y []float64) ([]float64, error) {
	poly, err := regress.PolyFit(x, y, p.debleachDegree)
	if err != nil {
		return nil, fmt.Errorf("%w: debleach: %w", ErrDegenerateFit, err)
	}

	trend := poly.Eval(x)
	out := make([]float64, len(y))
	for i := range y {
		out[i] = y[i] - trend[i]
	}
	return out, nil
}
