package clock

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-echo/internal/testutil"
)

func pulse(s *Sync, sampleRate float64, period int, pulses int) (float64, bool) {
	var (
		p  float64
		ok bool
	)

	for _, v := range testutil.PulseTrain(period, period/2, 5, pulses*period) {
		p, ok = s.Process(v, sampleRate, Pulses)
	}

	return p, ok
}

func TestSyncMeasuresPulsePeriod(t *testing.T) {
	const sampleRate = 1000.0

	var s Sync
	p, ok := pulse(&s, sampleRate, 500, 3)
	if !ok {
		t.Fatal("no period after three pulses")
	}
	if math.Abs(p-0.5) > 1e-12 {
		t.Fatalf("period %v want 0.5", p)
	}
}

func TestSyncNeedsTwoEdges(t *testing.T) {
	var s Sync
	if _, ok := s.Process(5, 1000, Pulses); ok {
		t.Fatal("period reported after a single edge")
	}
}

func TestSyncClampsPulsePeriod(t *testing.T) {
	const sampleRate = 1000.0

	var s Sync
	p, ok := pulse(&s, sampleRate, 20, 4)
	if !ok || p != MinPeriodSeconds {
		t.Fatalf("fast clock: got %v %v want %v", p, ok, MinPeriodSeconds)
	}
}

func TestSyncVoltPerOctave(t *testing.T) {
	tests := []struct {
		v    float64
		want float64
	}{
		{v: 0, want: 1},
		{v: 1, want: 0.5},
		{v: -2, want: 4},
		{v: 10, want: MinPeriodSeconds},
		{v: -10, want: MaxPeriodSeconds},
	}

	for _, tt := range tests {
		var s Sync
		got, ok := s.Process(tt.v, 48000, VoltPerOctave)
		if !ok || math.Abs(got-tt.want) > 1e-12 {
			t.Fatalf("v=%v: got %v %v want %v", tt.v, got, ok, tt.want)
		}
	}
}

func TestSyncDeadClockWarning(t *testing.T) {
	const sampleRate = 1000.0

	var s Sync
	if _, ok := pulse(&s, sampleRate, 500, 3); !ok {
		t.Fatal("no period")
	}

	// Last edge was at sample 1000; stop the clock.
	quiet := int(MaxPeriodSeconds*sampleRate) - 500
	for i := 0; i < quiet; i++ {
		s.Process(0, sampleRate, Pulses)
	}
	if s.Dead() {
		t.Fatal("dead before the maximum period elapsed")
	}

	for i := 0; i < 2; i++ {
		s.Process(0, sampleRate, Pulses)
	}
	if !s.Dead() {
		t.Fatal("not dead after the maximum period")
	}
	if _, ok := s.Process(0, sampleRate, Pulses); ok {
		t.Fatal("dead clock still reports a period")
	}
	if s.Warning() {
		t.Fatal("warning raised before debounce")
	}

	for i := 0; i < int(WarningDebounceSeconds*sampleRate); i++ {
		s.Process(0, sampleRate, Pulses)
	}
	if !s.Warning() {
		t.Fatal("warning not raised after debounce")
	}

	// A new pulse revives the clock.
	s.Process(5, sampleRate, Pulses)
	if s.Dead() || s.Warning() {
		t.Fatal("clock still dead after an edge")
	}
}

func TestSyncedDelay(t *testing.T) {
	if got := SyncedDelay(0.74, 0.5, false); math.Abs(got-0.37) > 1e-12 {
		t.Fatalf("unsnapped: got %v", got)
	}
	if got := SyncedDelay(0.74, 0.5, true); math.Abs(got-0.375) > 1e-12 {
		t.Fatalf("snapped: got %v", got)
	}
}

func TestFormatText(t *testing.T) {
	for _, f := range []Format{Pulses, VoltPerOctave} {
		b, err := f.MarshalText()
		if err != nil {
			t.Fatal(err)
		}

		var back Format
		if err := back.UnmarshalText(b); err != nil || back != f {
			t.Fatalf("%v: got %v %v", f, back, err)
		}
	}

	var f Format
	if err := f.UnmarshalText([]byte("sawtooth")); err == nil {
		t.Fatal("expected error")
	}
}
