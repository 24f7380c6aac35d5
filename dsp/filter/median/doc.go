// Package median implements a running median filter for removing isolated
// spikes from photometry traces before linear filtering.
package median
