// Package export writes aligned segments, averages and split epochs to
// CSV, and a per-recording summary to XLSX and PDF.
package export
