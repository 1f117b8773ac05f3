// Package envelope tracks the amplitude of an audio signal.
package envelope

import (
	"math"

	"github.com/cwbudde/algo-echo/dsp/filter/onepole"
)

const (
	// AttackSeconds is the time for the envelope to rise to 99% of a step.
	AttackSeconds = 0.003
	// DecaySeconds is the time for the envelope to fall to 1% after a step down.
	DecaySeconds = 0.150
	// SmoothingHz is the cutoff of the output smoothing filter.
	SmoothingHz = 80.0

	// correction scales a full-scale sine's envelope to its peak.
	correction = 5.0 / 4.783
)

// Follower is a peak envelope follower with separate attack and decay
// times followed by a low-pass smoother. The zero value is ready to use.
type Follower struct {
	sampleRate float64
	attack     float64
	decay      float64
	envelope   float64
	lp         onepole.LowPass
}

// Reset clears the envelope.
func (f *Follower) Reset() {
	f.envelope = 0
	f.lp.Reset()
}

// Value returns the last output.
func (f *Follower) Value() float64 { return f.lp.Value() }

// Process consumes one sample and returns the smoothed envelope.
func (f *Follower) Process(x, sampleRateHz float64) float64 {
	if sampleRateHz <= 0 {
		return f.lp.Value()
	}

	if sampleRateHz != f.sampleRate {
		f.sampleRate = sampleRateHz
		f.attack = math.Pow(0.01, 1/(AttackSeconds*sampleRateHz))
		f.decay = math.Pow(0.01, 1/(DecaySeconds*sampleRateHz))
		f.lp.SetCutoff(SmoothingHz, sampleRateHz)
	}

	v := math.Abs(x)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}

	k := f.decay
	if v > f.envelope {
		k = f.attack
	}
	f.envelope = k*(f.envelope-v) + v

	return f.lp.Process(correction * f.envelope)
}
