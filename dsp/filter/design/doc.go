// Package design computes biquad coefficients for the low- and high-pass
// filters used to clean photometry traces: RBJ cookbook sections and
// Butterworth cascades of any order.
//
// All designs use the bilinear transform with frequency pre-warping, so the
// -3 dB point of a Butterworth cascade lands exactly on the requested
// cutoff.
package design
