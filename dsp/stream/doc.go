// Package stream provides the sample stream type shared by the photometry
// analysis packages.
//
// A [Stream] is an ordered sequence of (timestamp, value) pairs with strictly
// increasing timestamps in seconds. Streams are treated as immutable values:
// every transform returns a new Stream and leaves its input untouched.
//
// Common workflows:
//   - FromRate(values, rate, t0) for demodulated fixed-rate channels
//   - New(times, values) for variable-interval data
//   - TrimBefore to drop the LED-onset artifact
//   - Decimate to block-average long recordings
//   - Shift to express time relative to an event of interest
package stream
