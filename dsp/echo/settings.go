package echo

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-echo/dsp/clock"
	"github.com/cwbudde/algo-echo/dsp/interp"
	"github.com/cwbudde/algo-echo/dsp/tape"
)

// TimeMode selects how a loop unit interprets its time control.
type TimeMode int

const (
	// Seconds uses the time control as the delay in seconds.
	Seconds TimeMode = iota
	// ClockSync uses the time control as a multiplier of the clock period.
	ClockSync
)

// String returns the mode's name.
func (m TimeMode) String() string {
	switch m {
	case Seconds:
		return "seconds"
	case ClockSync:
		return "clock"
	default:
		return fmt.Sprintf("TimeMode(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m TimeMode) MarshalText() ([]byte, error) {
	if m != Seconds && m != ClockSync {
		return nil, fmt.Errorf("unknown time mode: %d", int(m))
	}

	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *TimeMode) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "seconds":
		*m = Seconds
	case "clock", "clocksync":
		*m = ClockSync
	default:
		return fmt.Errorf("unknown time mode: %q", text)
	}

	return nil
}

// InsertPoint selects where the send/return loop sits.
type InsertPoint int

const (
	// BeforeDelay sends the record signal and records the return.
	BeforeDelay InsertPoint = iota
	// AfterDelay sends the playback signal and mixes the return.
	AfterDelay
)

// String returns the insert point's name.
func (p InsertPoint) String() string {
	switch p {
	case BeforeDelay:
		return "before"
	case AfterDelay:
		return "after"
	default:
		return fmt.Sprintf("InsertPoint(%d)", int(p))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p InsertPoint) MarshalText() ([]byte, error) {
	if p != BeforeDelay && p != AfterDelay {
		return nil, fmt.Errorf("unknown insert point: %d", int(p))
	}

	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *InsertPoint) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "before":
		*p = BeforeDelay
	case "after":
		*p = AfterDelay
	default:
		return fmt.Errorf("unknown insert point: %q", text)
	}

	return nil
}

const (
	// MaxFeedbackRatio scales the feedback control; full feedback is unstable.
	MaxFeedbackRatio = 0.9

	// DefaultDCRejectHz is the head's input high-pass cutoff.
	DefaultDCRejectHz = 20.0

	// MaxEnvGain is the top of the envelope gain knob; the envelope output
	// is scaled by the fourth power of the knob.
	MaxEnvGain = 2.0

	defaultEnvGain = 1.0
	defaultMix     = 0.5
)

// Settings are the persisted controls of one unit. Loop fields apply to
// the head and taps, head fields only to the head, and Mix only to the tail.
// Level is used by every role.
type Settings struct {
	// Loop units.
	Time     float64     `yaml:"time"`
	TimeMode TimeMode    `yaml:"time_mode"`
	TimeCV   float64     `yaml:"time_cv"`
	Slew     float64     `yaml:"slew"`
	Level    float64     `yaml:"level"`
	Pan      float64     `yaml:"pan"`
	EnvGain  float64     `yaml:"env_gain"`
	Reverse  bool        `yaml:"reverse"`
	Flip     bool        `yaml:"flip"`
	Duck     bool        `yaml:"duck"`
	Mute     bool        `yaml:"mute"`
	Solo     bool        `yaml:"solo"`
	Insert   InsertPoint `yaml:"send_return"`

	// Head.
	Feedback               float64      `yaml:"feedback"`
	DCRejectHz             float64      `yaml:"dc_reject_hz"`
	Freeze                 bool         `yaml:"freeze"`
	Routing                Routing      `yaml:"routing"`
	Interpolator           interp.Kind  `yaml:"interpolator"`
	ClockFormat            clock.Format `yaml:"clock_format"`
	SnapToMusicalIntervals bool         `yaml:"snap"`

	// Tail.
	Mix float64 `yaml:"mix"`
}

// DefaultSettings returns the controls of a freshly initialized unit.
func DefaultSettings() Settings {
	return Settings{
		Time:       tape.DefaultDelaySeconds,
		Slew:       tape.DefaultSlew,
		Level:      1,
		EnvGain:    defaultEnvGain,
		DCRejectHz: DefaultDCRejectHz,
		Mix:        defaultMix,
	}
}

// Validate reports every control outside its range.
func (s Settings) Validate() error {
	var errs []error

	check := func(name string, v, lo, hi float64) {
		if math.IsNaN(v) || v < lo || v > hi {
			errs = append(errs, fmt.Errorf("%s must be in [%g, %g]: %g", name, lo, hi, v))
		}
	}

	check("time", s.Time, tape.MinDelaySeconds, tape.MaxDelaySeconds)
	check("time_cv", s.TimeCV, -1, 1)
	check("slew", s.Slew, 0, 1)
	check("level", s.Level, 0, 2)
	check("pan", s.Pan, -1, 1)
	check("env_gain", s.EnvGain, 0, MaxEnvGain)
	check("feedback", s.Feedback, 0, 1)
	check("dc_reject_hz", s.DCRejectHz, 0, 1000)
	check("mix", s.Mix, 0, 1)

	if !s.Interpolator.Valid() {
		errs = append(errs, fmt.Errorf("unknown interpolator: %d", int(s.Interpolator)))
	}

	return errors.Join(errs...)
}
