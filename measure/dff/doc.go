// Package dff turns raw fiber photometry channels into dF/F traces.
//
// Three methods are provided:
//
//   - [Lerner]: fits the isosbestic (405 nm) channel to the calcium
//     dependent channel with a least-squares line and reports
//     100 * (F - fit) / fit, after Lerner et al. 2015
//   - [Pipeline]: median and low-pass denoising, polynomial debleaching,
//     isosbestic motion correction and division by a very slow low-pass
//     baseline
//   - [Baseline]: classic (F - F0) / F0 against a fixed time window
//
// All methods take equal-length channels sampled on the same clock.
package dff
