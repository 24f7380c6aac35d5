// Package interp provides interpolation primitives used to place irregularly
// timed samples on a common time grid.
//
// Available methods:
//
//   - [Linear2]: 2-point linear interpolation
//   - [At]:      piecewise-linear lookup in a timestamped series
//   - [Grid]:    batch form of [At] over a sorted grid
package interp
