// Package testutil holds signal generators and assertions shared by the
// echo packages' tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine returns length samples of a sine starting at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	w := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(w*float64(i))
	}

	return out
}

// DeterministicNoise returns uniform noise in [-amplitude, amplitude) from a
// fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, length)
	for i := range out {
		out[i] = amplitude * (2*rng.Float64() - 1)
	}

	return out
}

// PulseTrain returns a clock signal: high for the first width samples of
// every period, zero otherwise. The first pulse starts at sample 0.
func PulseTrain(period, width int, high float64, length int) []float64 {
	out := make([]float64, length)
	if period <= 0 {
		return out
	}

	for i := range out {
		if i%period < width {
			out[i] = high
		}
	}

	return out
}

// Delayed returns x shifted right by n samples, keeping its length.
func Delayed(x []float64, n int) []float64 {
	out := make([]float64, len(x))
	if n >= 0 && n < len(x) {
		copy(out[n:], x)
	}

	return out
}
