// Package photometry aligns fiber photometry recordings to behavioural
// events and normalizes them against a baseline.
//
// A recording channel is a [stream.Stream] of timestamped fluorescence
// values. The engine offers four operations:
//
//   - [ComputeBaseline] estimates F0 over a closed time window
//   - [Normalize] maps a stream to dF/F, (F - F0) / F0
//   - [AlignToEvents] cuts one peri-event segment per event, resampled onto
//     a common event-relative grid
//   - [AverageSegments] averages segments index by index, with SEM
//
// Events whose window leaves the recording are handled by a single
// [Boundary] policy chosen per call: [Exclude] (default) drops them and
// reports a count, [Pad] keeps them and marks the out-of-range grid points
// as [core.Missing]. Missing points are ignored when averaging.
//
// All operations are pure: inputs are never modified and outputs never
// share memory with inputs. Failures are reported with the sentinel errors
// in errors.go and can be matched with errors.Is.
package photometry
