package fade

import (
	"fmt"

	"github.com/cwbudde/algo-echo/dsp/core"
)

// DefaultRampSeconds is the fade-out (and fade-in) time of a Smoother.
const DefaultRampSeconds = 0.005

// State is a Smoother phase.
type State int

const (
	Stable State = iota
	Fading
	Ramping
)

func (s State) String() string {
	switch s {
	case Stable:
		return "stable"
	case Fading:
		return "fading"
	case Ramping:
		return "ramping"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Smoother ducks a gain to zero and back: Stable -> Fading -> Ramping -> Stable.
// OnSilent runs once when the gain reaches zero and OnStable once when it
// is back at one.
type Smoother struct {
	OnSilent func()
	OnStable func()

	state       State
	gain        float64
	rampSeconds float64
}

// SmootherOption configures a Smoother.
type SmootherOption func(*Smoother)

// WithRampSeconds sets the duration of each half of the duck.
func WithRampSeconds(seconds float64) SmootherOption {
	return func(s *Smoother) {
		if core.IsFinite(seconds) && seconds > 0 {
			s.rampSeconds = seconds
		}
	}
}

// WithOnSilent sets the callback run at the silent point.
func WithOnSilent(fn func()) SmootherOption {
	return func(s *Smoother) { s.OnSilent = fn }
}

// WithOnStable sets the callback run when the gain returns to one.
func WithOnStable(fn func()) SmootherOption {
	return func(s *Smoother) { s.OnStable = fn }
}

// NewSmoother returns a stable smoother at unity gain.
func NewSmoother(opts ...SmootherOption) *Smoother {
	s := &Smoother{gain: 1, rampSeconds: DefaultRampSeconds}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// Reset returns to Stable at unity gain without running callbacks.
func (s *Smoother) Reset() {
	s.state = Stable
	s.gain = 1
}

// Begin starts a duck. Calling it during a duck restarts the fade-out
// from the current gain.
func (s *Smoother) Begin() {
	if s.state == Stable {
		s.gain = 1
	}
	s.state = Fading
}

// State returns the current phase.
func (s *Smoother) State() State { return s.state }

// IsStable reports whether no duck is in progress.
func (s *Smoother) IsStable() bool { return s.state == Stable }

// Gain returns the gain produced by the last Process call.
func (s *Smoother) Gain() float64 {
	if s.state == Stable {
		return 1
	}

	return s.gain
}

// Process advances one sample and returns the gain.
func (s *Smoother) Process(sampleRateHz float64) float64 {
	if s.state == Stable {
		s.gain = 1
		return 1
	}

	if sampleRateHz <= 0 {
		return s.gain
	}

	ramp := s.rampSeconds
	if ramp <= 0 {
		ramp = DefaultRampSeconds
	}
	change := 1 / (ramp * sampleRateHz)

	if s.state == Fading {
		s.gain = core.Clamp(s.gain-change, 0, 1)
		if s.gain == 0 {
			s.state = Ramping
			if s.OnSilent != nil {
				s.OnSilent()
			}
		}

		return s.gain
	}

	s.gain = core.Clamp(s.gain+change, 0, 1)
	if s.gain == 1 {
		s.state = Stable
		if s.OnStable != nil {
			s.OnStable()
		}
	}

	return s.gain
}
