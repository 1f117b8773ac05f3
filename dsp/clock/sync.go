package clock

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-echo/dsp/core"
)

const (
	// MinPeriodSeconds and MaxPeriodSeconds bound every measured period.
	// They match the tape loop's delay range.
	MinPeriodSeconds = 0.1
	MaxPeriodSeconds = 10.0

	// WarningDebounceSeconds is how long a clock must stay dead before
	// Sync.Warning reports it.
	WarningDebounceSeconds = 0.25
)

// Format selects how a clock voltage is interpreted.
type Format int

const (
	// Pulses treats the voltage as a pulse train; the period is the
	// interval between rising edges.
	Pulses Format = iota
	// VoltPerOctave treats the voltage as a rate; the period is 2^-v seconds.
	VoltPerOctave
)

// String returns the format's name.
func (f Format) String() string {
	switch f {
	case Pulses:
		return "pulses"
	case VoltPerOctave:
		return "voct"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	if f != Pulses && f != VoltPerOctave {
		return nil, fmt.Errorf("unknown clock format: %d", int(f))
	}

	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "pulses", "pulse":
		*f = Pulses
	case "voct", "v/oct", "voltperoctave":
		*f = VoltPerOctave
	default:
		return fmt.Errorf("unknown clock format: %q", text)
	}

	return nil
}

// Sync tracks one channel of clock input.
type Sync struct {
	receiver   Receiver
	period     float64
	measured   bool
	deadFor    int
	sampleRate float64
}

// Reset forgets the measured period and the receiver state.
func (s *Sync) Reset() {
	*s = Sync{}
}

// Process consumes one clock voltage sample in the given format and
// returns the current clock period in seconds. ok is false when no period
// is known: before the second pulse, or while the clock is dead.
func (s *Sync) Process(voltage, sampleRateHz float64, format Format) (period float64, ok bool) {
	s.sampleRate = sampleRateHz

	if format == VoltPerOctave {
		s.deadFor = 0
		if !core.IsFinite(voltage) {
			return s.period, s.measured
		}

		s.period = PeriodFromVoltage(voltage)
		s.measured = true

		return s.period, true
	}

	elapsed := s.receiver.SamplesSinceTrigger() + 1
	seen := s.receiver.Seen()
	if s.receiver.Update(voltage, sampleRateHz) {
		if seen && sampleRateHz > 0 {
			s.period = PeriodFromInterval(elapsed, sampleRateHz)
			s.measured = true
		}
		s.deadFor = 0
	} else if s.Dead() {
		s.deadFor++
	}

	if s.Dead() {
		return s.period, false
	}

	return s.period, s.measured
}

// Dead reports whether no edge has arrived for longer than MaxPeriodSeconds.
func (s *Sync) Dead() bool {
	if s.sampleRate <= 0 {
		return false
	}

	return float64(s.receiver.SamplesSinceTrigger()) > MaxPeriodSeconds*s.sampleRate
}

// Warning reports whether the clock has been dead for at least
// WarningDebounceSeconds.
func (s *Sync) Warning() bool {
	if s.sampleRate <= 0 {
		return false
	}

	return float64(s.deadFor) >= WarningDebounceSeconds*s.sampleRate
}

// Receiver exposes the underlying edge detector.
func (s *Sync) Receiver() *Receiver { return &s.receiver }

// PeriodFromInterval converts an edge interval in samples to a clamped period.
func PeriodFromInterval(samples int, sampleRateHz float64) float64 {
	return core.Clamp(float64(samples)/sampleRateHz, MinPeriodSeconds, MaxPeriodSeconds)
}

// PeriodFromVoltage converts a 1 V/oct rate voltage to a clamped period:
// 0 V is one second and every volt halves it.
func PeriodFromVoltage(voltage float64) float64 {
	return core.Clamp(math.Exp2(-voltage), MinPeriodSeconds, MaxPeriodSeconds)
}

// SyncedDelay returns the delay time for a clock multiplier and a period.
// With snap set, the multiplier is first replaced by the closest Fraction.
func SyncedDelay(multiplier, period float64, snap bool) float64 {
	if snap {
		multiplier = PickClosestFraction(multiplier).Ratio()
	}

	return multiplier * period
}
