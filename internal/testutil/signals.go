package testutil

import (
	"math"
	"math/rand"
)

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ramp generates start, start+step, ... of the given length.
func Ramp(start, step float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// Bleach generates an exponentially decaying fluorescence baseline
// f0 * (1 + depth*exp(-t/tau)) sampled at sampleRate.
func Bleach(f0, depth, tau, sampleRate float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		t := float64(i) / sampleRate
		out[i] = f0 * (1 + depth*math.Exp(-t/tau))
	}
	return out
}

// Transients adds a calcium-like transient at each event time (seconds):
// instantaneous rise of amplitude, exponential decay with time constant tau.
// The input slice is modified in place and returned.
func Transients(data []float64, events []float64, amplitude, tau, sampleRate float64) []float64 {
	for _, ev := range events {
		start := int(math.Ceil(ev * sampleRate))
		if start < 0 {
			start = 0
		}
		for i := start; i < len(data); i++ {
			t := float64(i)/sampleRate - ev
			a := amplitude * math.Exp(-t/tau)
			if a < amplitude*1e-6 {
				break
			}
			data[i] += a
		}
	}
	return data
}

// Add returns a + b element-wise over the shorter length.
func Add(a, b []float64) []float64 {
	n := min(len(a), len(b))
	out := make([]float64, n)
	for i := range out {
		out[i] = a[i] + b[i]
	}
	return out
}
