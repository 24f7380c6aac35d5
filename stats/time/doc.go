// Package time computes descriptive statistics of sampled signals in the
// time domain: mean, median, spread and standard error.
//
// NaN marks a missing sample throughout; every function skips it.
package time
