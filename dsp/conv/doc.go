// Package conv provides the cross-correlation routines used to line up
// photometry recordings with externally logged signals.
//
// Two strategies are available:
//
//   - Direct: O(N*M) time-domain correlation, best for short templates
//   - FFT: zero-padded spectral correlation via algo-fft, for long traces
//
// [Correlate] picks between them by template length. All functions return
// the full correlation, where output index k corresponds to lag
// k - (len(b) - 1):
//
//	corr, err := conv.Correlate(signal, template)
//	peakIdx, peakVal := conv.FindPeak(corr)
//	lag := conv.LagFromIndex(peakIdx, len(template))
//
// A positive lag means the template appears later in signal.
// [PeakLag] wraps the above with mean removal and a lag search window.
package conv
