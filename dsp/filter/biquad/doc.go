// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Multiple sections can be
// cascaded via [Chain] for higher-order filters. [FiltFilt] runs a chain
// forward and backward for zero-phase offline filtering of whole recordings.
//
// Coefficient design lives in dsp/filter/design.
package biquad
