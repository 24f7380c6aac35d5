// Package freeze derives freezing episodes from a per-frame motion trace,
// turning behaviour video measurements into event timestamps that can be
// aligned against photometry recordings.
package freeze
