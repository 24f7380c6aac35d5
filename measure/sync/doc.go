// Package sync maps timestamps from a secondary clock, such as behaviour
// video frames, onto the photometry recording clock.
//
// When both systems log the same TTL pulses, [NewPulseClock] fits a linear
// mapping through the matched pulse pairs, absorbing both offset and drift.
// When only continuous traces are shared, [EstimateLag] finds the offset
// from the cross-correlation peak.
package sync
