package fade

import "github.com/cwbudde/algo-echo/dsp/core"

const (
	// DefaultCrossfadeSeconds is the fade length of a zero-value Crossfader.
	DefaultCrossfadeSeconds = 0.01

	minCrossfadeSeconds = 0.001
	maxCrossfadeSeconds = 10.0
)

// Crossfader moves a mix factor between front (0) and back (1) at a
// constant rate. The zero value sits at the front with the default duration.
type Crossfader struct {
	mix      float64
	target   float64
	duration float64
}

// NewCrossfader returns a crossfader with the given fade duration.
func NewCrossfader(durationSeconds float64) *Crossfader {
	c := &Crossfader{}
	c.SetDuration(durationSeconds)

	return c
}

// SetDuration sets the full-travel fade time, clamped to [1 ms, 10 s], and
// returns the value in effect. Non-finite values select the default.
func (c *Crossfader) SetDuration(seconds float64) float64 {
	if !core.IsFinite(seconds) {
		seconds = DefaultCrossfadeSeconds
	}

	c.duration = core.Clamp(seconds, minCrossfadeSeconds, maxCrossfadeSeconds)

	return c.duration
}

// Duration returns the full-travel fade time in seconds.
func (c *Crossfader) Duration() float64 {
	if c.duration <= 0 {
		return DefaultCrossfadeSeconds
	}

	return c.duration
}

// Mix returns the current mix factor in [0, 1].
func (c *Crossfader) Mix() float64 { return c.mix }

// SnapToFront jumps to the front without fading.
func (c *Crossfader) SnapToFront() { c.mix, c.target = 0, 0 }

// SnapToBack jumps to the back without fading.
func (c *Crossfader) SnapToBack() { c.mix, c.target = 1, 1 }

// Snap jumps to the back when back is true, else to the front.
func (c *Crossfader) Snap(back bool) {
	if back {
		c.SnapToBack()
	} else {
		c.SnapToFront()
	}
}

// BeginFade targets the back when back is true, else the front.
func (c *Crossfader) BeginFade(back bool) {
	if back {
		c.target = 1
	} else {
		c.target = 0
	}
}

// AtFront, AtBack and the Targeted predicates describe where the mix sits
// and where it is heading.
func (c *Crossfader) AtFront() bool       { return c.mix <= 0 }
func (c *Crossfader) AtBack() bool        { return c.mix >= 1 }
func (c *Crossfader) InTransition() bool  { return !c.AtFront() && !c.AtBack() }
func (c *Crossfader) FrontTargeted() bool { return c.target < 0.5 }
func (c *Crossfader) BackTargeted() bool  { return c.target > 0.5 }

// Settled reports whether the mix has reached its target.
func (c *Crossfader) Settled() bool {
	return (c.AtFront() && c.FrontTargeted()) || (c.AtBack() && c.BackTargeted())
}

// Advance returns the current mix factor and then steps it one sample
// toward the target. Use it to blend several channels with one mix value.
func (c *Crossfader) Advance(sampleRateHz float64) float64 {
	m := c.mix
	if c.Settled() || sampleRateHz <= 0 {
		return m
	}

	step := 1 / (c.Duration() * sampleRateHz)
	if c.mix < c.target {
		c.mix = core.Clamp(c.mix+step, 0, 1)
	} else if c.mix > c.target {
		c.mix = core.Clamp(c.mix-step, 0, 1)
	}

	return m
}

// Process blends front and back by the current mix and advances one sample.
func (c *Crossfader) Process(sampleRateHz, front, back float64) float64 {
	if c.AtFront() && c.FrontTargeted() {
		return front
	}

	if c.AtBack() && c.BackTargeted() {
		return back
	}

	m := c.Advance(sampleRateHz)

	return (1-m)*front + m*back
}

// ProcessFunc is Process with lazily computed inputs. While settled only
// the selected side is evaluated.
func (c *Crossfader) ProcessFunc(sampleRateHz float64, front, back func() float64) float64 {
	if c.AtFront() && c.FrontTargeted() {
		return front()
	}

	if c.AtBack() && c.BackTargeted() {
		return back()
	}

	return c.Process(sampleRateHz, front(), back())
}
