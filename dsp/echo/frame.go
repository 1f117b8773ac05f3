package echo

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// MaxChannels is the largest number of polyphonic channels a frame carries.
const MaxChannels = 16

// Frame is one sample for each of up to MaxChannels channels.
type Frame struct {
	NumChannels int
	Sample      [MaxChannels]float64
}

// NewFrame returns a frame holding samples. Samples past MaxChannels are dropped.
func NewFrame(samples ...float64) Frame {
	var f Frame
	f.NumChannels = copy(f.Sample[:], samples)

	return f
}

// Channels returns NumChannels clamped to [0, MaxChannels].
func (f *Frame) Channels() int {
	switch {
	case f.NumChannels < 0:
		return 0
	case f.NumChannels > MaxChannels:
		return MaxChannels
	default:
		return f.NumChannels
	}
}

// At returns channel c. It panics if c is not below Channels.
func (f *Frame) At(c int) float64 {
	if c < 0 || c >= f.Channels() {
		panic(fmt.Sprintf("echo: channel %d out of range [0, %d)", c, f.Channels()))
	}

	return f.Sample[c]
}

// Set stores v in channel c. It panics if c is outside [0, MaxChannels).
func (f *Frame) Set(c int, v float64) {
	if c < 0 || c >= MaxChannels {
		panic(fmt.Sprintf("echo: channel %d out of range [0, %d)", c, MaxChannels))
	}

	f.Sample[c] = v
}

// Poly returns channel c, repeating the last channel for c past the end.
// An empty frame reads as zero.
func (f *Frame) Poly(c int) float64 {
	n := f.Channels()
	switch {
	case n == 0 || c < 0:
		return 0
	case c < n:
		return f.Sample[c]
	default:
		return f.Sample[n-1]
	}
}

// Slice returns the active channels.
func (f *Frame) Slice() []float64 {
	return f.Sample[:f.Channels()]
}

// Reset sets the channel count to n and zeroes every sample.
func (f *Frame) Reset(n int) {
	*f = Frame{NumChannels: n}
}

// Add accumulates g into f, widening f to g's channel count if needed.
func (f *Frame) Add(g *Frame) {
	n := g.Channels()
	if f.Channels() < n {
		f.NumChannels = n
	}

	vecmath.AddBlockInPlace(f.Sample[:n], g.Sample[:n])
}

// Scale multiplies every active channel by gain.
func (f *Frame) Scale(gain float64) {
	s := f.Slice()
	vecmath.ScaleBlock(s, s, gain)
}
