package photometry

import "errors"

var (
	// ErrEmptyWindow indicates a baseline window that overlaps the
	// recording but holds no usable sample.
	ErrEmptyWindow = errors.New("photometry: no samples in window")
	// ErrOutOfRange indicates a window entirely outside the recording.
	ErrOutOfRange = errors.New("photometry: window outside recording range")
	// ErrDivisionByZero indicates a zero baseline or a zero spread.
	ErrDivisionByZero = errors.New("photometry: division by zero")
	// ErrLengthMismatch indicates segments of different lengths.
	ErrLengthMismatch = errors.New("photometry: segment lengths differ")
	// ErrEmptyInput indicates an empty segment sequence.
	ErrEmptyInput = errors.New("photometry: no segments")
	// ErrInvalidWindow indicates reversed, negative or non-finite window
	// bounds, or a non-positive grid step.
	ErrInvalidWindow = errors.New("photometry: invalid window")
)
