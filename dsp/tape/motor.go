package tape

import (
	"math"

	"github.com/cwbudde/algo-echo/dsp/core"
	"github.com/cwbudde/algo-echo/dsp/filter/onepole"
)

const (
	// DefaultSlew is the motor inertia knob position of a new motor.
	DefaultSlew = 0.5

	motorFastCutoffHz = 10.0
	motorSlowCutoffHz = 0.05
)

// Motor models the inertia of a tape transport. It low-pass filters the
// requested delay time and limits how quickly the actual delay time moves,
// which bounds the pitch shift heard while the delay time changes.
type Motor struct {
	slew    float64
	lp      onepole.LowPass
	actual  float64
	started bool
}

// MotorOption configures a Motor.
type MotorOption func(*Motor)

// WithSlew sets the inertia knob in [0, 1]: 0 follows quickly, 1 is sluggish.
func WithSlew(knob float64) MotorOption {
	return func(m *Motor) {
		m.SetSlew(knob)
	}
}

// NewMotor returns a motor with the default slew.
func NewMotor(opts ...MotorOption) *Motor {
	m := &Motor{slew: DefaultSlew}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	return m
}

// SetSlew sets the inertia knob, clamped to [0, 1]. Non-finite values are ignored.
func (m *Motor) SetSlew(knob float64) {
	if !core.IsFinite(knob) {
		return
	}

	m.slew = core.Clamp(knob, 0, 1)
}

// Slew returns the inertia knob position.
func (m *Motor) Slew() float64 { return m.slew }

// CutoffHz returns the low-pass cutoff implied by the slew knob.
// The knob maps exponentially with a cubic blend from 10 Hz down to 0.05 Hz.
func (m *Motor) CutoffHz() float64 {
	blend := 1 - core.Cube(m.slew)
	return motorSlowCutoffHz * math.Pow(motorFastCutoffHz/motorSlowCutoffHz, blend)
}

// Process advances the motor by one sample toward requestedDelaySeconds and
// returns the actual delay time. The first call snaps to the request.
func (m *Motor) Process(requestedDelaySeconds, sampleRateHz float64) float64 {
	if !core.IsFinite(requestedDelaySeconds) {
		return m.actual
	}

	target := core.Clamp(requestedDelaySeconds, MinDelaySeconds, MaxDelaySeconds)

	if !m.started {
		m.started = true
		m.actual = target
		m.lp.Snap(target)

		return target
	}

	m.lp.SetCutoff(m.CutoffHz(), sampleRateHz)
	filtered := m.lp.Process(target)

	maxStep := MaxMotorSpeed / sampleRateHz
	step := core.Clamp(filtered-m.actual, -maxStep, maxStep)
	m.actual = core.Clamp(m.actual+step, MinDelaySeconds, MaxDelaySeconds)

	return m.actual
}

// Value returns the most recent actual delay time, or 0 before the first Process call.
func (m *Motor) Value() float64 { return m.actual }

// Reset forgets the motor position so the next Process call snaps again.
func (m *Motor) Reset() {
	m.started = false
	m.actual = 0
	m.lp.Reset()
}
