package biquad

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-photometry/dsp/core"
)

// ErrTooShort indicates a signal shorter than the edge padding FiltFilt needs.
var ErrTooShort = errors.New("biquad: signal too short for filtfilt padding")

// PadType selects how FiltFilt extends the signal at both edges.
type PadType int

const (
	// PadOdd reflects the signal about its end points (2*x[0] - x[k]).
	PadOdd PadType = iota
	// PadEven mirrors the signal about its end points (x[k]).
	PadEven
)

type filtfiltConfig struct {
	pad    PadType
	padLen int
}

// FiltFiltOption configures FiltFilt.
type FiltFiltOption func(*filtfiltConfig)

// WithPadType selects the edge extension. Default is PadOdd.
func WithPadType(p PadType) FiltFiltOption {
	return func(cfg *filtfiltConfig) { cfg.pad = p }
}

// WithPadLen overrides the number of samples added at each edge.
// The default is 3*(2*sections+1).
func WithPadLen(n int) FiltFiltOption {
	return func(cfg *filtfiltConfig) {
		if n >= 0 {
			cfg.padLen = n
		}
	}
}

// FiltFilt applies coeffs forward and then backward over x, giving a
// zero-phase result with squared magnitude response. The edges are
// extended by reflection and each pass starts from the steady state of its
// first sample. x is not modified.
func FiltFilt(coeffs []Coefficients, x []float64, opts ...FiltFiltOption) ([]float64, error) {
	cfg := filtfiltConfig{padLen: 3 * (2*len(coeffs) + 1)}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	n := len(x)
	if n == 0 {
		return nil, nil
	}
	if cfg.padLen >= n {
		return nil, fmt.Errorf("%w: %d samples, pad %d", ErrTooShort, n, cfg.padLen)
	}

	ext := extend(x, cfg.padLen, cfg.pad)
	c := NewChain(coeffs)

	c.Settle(ext[0])
	c.ProcessBlock(ext)

	core.Reverse(ext)
	c.Settle(ext[0])
	c.ProcessBlock(ext)
	core.Reverse(ext)

	out := make([]float64, n)
	copy(out, ext[cfg.padLen:cfg.padLen+n])
	return out, nil
}

func extend(x []float64, padLen int, pad PadType) []float64 {
	n := len(x)
	ext := core.EnsureLen(nil, n+2*padLen)
	copy(ext[padLen:], x)

	first, last := x[0], x[n-1]
	for k := 1; k <= padLen; k++ {
		left, right := x[k], x[n-1-k]
		if pad == PadOdd {
			left = 2*first - left
			right = 2*last - right
		}
		ext[padLen-k] = left
		ext[padLen+n-1+k] = right
	}

	return ext
}
