// Package onepole provides first-order smoothing filters.
//
// They are used for delay-time inertia, envelope smoothing and DC rejection,
// where a single pole is enough and the coefficient has to follow a cutoff
// that may change every sample.
package onepole

import "math"

// Coefficient returns the smoothing factor alpha = 1 - exp(-2*pi*fc/fs).
// A non-positive cutoff or sample rate returns 0 (the filter holds its state).
func Coefficient(cutoffHz, sampleRate float64) float64 {
	if cutoffHz <= 0 || sampleRate <= 0 {
		return 0
	}

	return 1.0 - math.Exp(-2.0*math.Pi*cutoffHz/sampleRate)
}

// LowPass is a one-pole low-pass filter.
type LowPass struct {
	cutoffHz   float64
	sampleRate float64
	alpha      float64
	state      float64
}

// SetCutoff configures the cutoff frequency. The coefficient is only
// recomputed when cutoff or sample rate actually change.
func (f *LowPass) SetCutoff(cutoffHz, sampleRate float64) {
	if cutoffHz == f.cutoffHz && sampleRate == f.sampleRate {
		return
	}

	f.cutoffHz = cutoffHz
	f.sampleRate = sampleRate
	f.alpha = Coefficient(cutoffHz, sampleRate)
}

// Cutoff returns the configured cutoff in Hz.
func (f *LowPass) Cutoff() float64 { return f.cutoffHz }

// Process filters one sample.
func (f *LowPass) Process(x float64) float64 {
	f.state += f.alpha * (x - f.state)
	return f.state
}

// Snap forces the filter state to x.
func (f *LowPass) Snap(x float64) {
	f.state = x
}

// Value returns the current output without advancing.
func (f *LowPass) Value() float64 { return f.state }

// Reset clears the filter state.
func (f *LowPass) Reset() {
	f.state = 0
}

// HighPass is a one-pole high-pass filter built as x - lowpass(x).
// A zero cutoff disables it and passes the input unchanged.
type HighPass struct {
	lp LowPass
}

// SetCutoff configures the cutoff frequency.
func (f *HighPass) SetCutoff(cutoffHz, sampleRate float64) {
	f.lp.SetCutoff(cutoffHz, sampleRate)
}

// Process filters one sample.
func (f *HighPass) Process(x float64) float64 {
	if f.lp.alpha == 0 {
		return x
	}

	return x - f.lp.Process(x)
}

// Reset clears the filter state.
func (f *HighPass) Reset() {
	f.lp.Reset()
}

// Stages is the number of sections in a StagedHighPass.
const Stages = 3

// StagedHighPass runs Stages high-pass sections in series. Each section
// adds 6 dB/octave of attenuation below the cutoff.
type StagedHighPass struct {
	stages [Stages]HighPass
}

// SetCutoff configures every section to the same cutoff.
func (f *StagedHighPass) SetCutoff(cutoffHz, sampleRate float64) {
	for i := range f.stages {
		f.stages[i].SetCutoff(cutoffHz, sampleRate)
	}
}

// Process filters one sample.
func (f *StagedHighPass) Process(x float64) float64 {
	for i := range f.stages {
		x = f.stages[i].Process(x)
	}

	return x
}

// Reset clears every section.
func (f *StagedHighPass) Reset() {
	for i := range f.stages {
		f.stages[i].Reset()
	}
}
