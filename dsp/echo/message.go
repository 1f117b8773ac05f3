package echo

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-echo/dsp/clock"
	"github.com/cwbudde/algo-echo/dsp/interp"
)

// Routing selects which signal the taps after the head record.
type Routing int

const (
	// Serial feeds each tap the previous unit's chain output. Only the head
	// receives feedback, taken from the last tap.
	Serial Routing = iota
	// Parallel feeds every tap the original input. Each unit feeds back its
	// own output.
	Parallel
)

// String returns the routing's name.
func (r Routing) String() string {
	switch r {
	case Serial:
		return "serial"
	case Parallel:
		return "parallel"
	default:
		return fmt.Sprintf("Routing(%d)", int(r))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r Routing) MarshalText() ([]byte, error) {
	if r != Serial && r != Parallel {
		return nil, fmt.Errorf("unknown routing: %d", int(r))
	}

	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Routing) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "serial":
		*r = Serial
	case "parallel":
		*r = Parallel
	default:
		return fmt.Errorf("unknown routing: %q", text)
	}

	return nil
}

// Message travels left to right, one per frame.
type Message struct {
	Valid      bool
	ChainIndex int

	// ChainAudio is the previous unit's chain output (Serial input).
	ChainAudio Frame
	// OriginalAudio is the head's filtered input (Parallel input, dry mix).
	OriginalAudio Frame
	// SummedAudio is the running sum of every unit's audible output.
	SummedAudio Frame
	SoloCount   int
	SoloAudio   Frame

	// Feedback is the per-channel feedback gain.
	Feedback     Frame
	ClockVoltage Frame
	// FreezeMix is the head's freeze crossfade position: 1 records the
	// loop's own playback instead of new input.
	FreezeMix      float64
	Clear          bool
	ClockConnected bool
	ClockFormat    clock.Format

	// Routing is the effective routing; a single-loop chain is always Parallel.
	Routing Routing
	// RoutingGain is the head's transition gain. It ducks every unit while
	// a clear, routing change or tap removal takes effect.
	RoutingGain float64

	Interpolator           interp.Kind
	Polyphonic             bool
	SnapToMusicalIntervals bool
}

// BackwardMessage travels right to left, one per frame. The last tap
// produces it and every other tap passes it on unchanged.
type BackwardMessage struct {
	Valid bool
	// LoopAudio is the last tap's chain output, used as serial feedback.
	LoopAudio Frame
	// SoloCount is the total number of soloing units.
	SoloCount int
}
