package fade

import (
	"math"
	"testing"
)

func TestCrossfaderZeroValueAtFront(t *testing.T) {
	var c Crossfader
	if got := c.Process(48000, 1, 2); got != 1 {
		t.Fatalf("got %v want front value", got)
	}
	if c.Duration() != DefaultCrossfadeSeconds {
		t.Fatalf("duration %v", c.Duration())
	}
}

func TestCrossfaderDurationClamp(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{in: 0, want: 0.001},
		{in: 100, want: 10},
		{in: 0.05, want: 0.05},
		{in: math.NaN(), want: DefaultCrossfadeSeconds},
	}

	for _, tt := range tests {
		var c Crossfader
		if got := c.SetDuration(tt.in); got != tt.want {
			t.Fatalf("SetDuration(%v) = %v want %v", tt.in, got, tt.want)
		}
	}
}

func TestCrossfaderLinearRamp(t *testing.T) {
	const sampleRate = 1024.0

	c := NewCrossfader(1.0 / 128) // 8 samples
	c.BeginFade(true)

	for i := 0; i < 8; i++ {
		want := float64(i) / 8
		if got := c.Process(sampleRate, 0, 1); math.Abs(got-want) > 1e-12 {
			t.Fatalf("sample %d: got %v want %v", i, got, want)
		}
	}

	if !c.AtBack() || !c.Settled() {
		t.Fatalf("not settled at back: mix=%v", c.Mix())
	}
	if got := c.Process(sampleRate, 0, 1); got != 1 {
		t.Fatalf("settled value %v", got)
	}
}

func TestCrossfaderReversesMidway(t *testing.T) {
	c := NewCrossfader(0.01)
	c.BeginFade(true)
	for i := 0; i < 4; i++ {
		c.Advance(1000)
	}

	c.BeginFade(false)
	prev := c.Mix()
	for !c.AtFront() {
		c.Advance(1000)
		if c.Mix() >= prev {
			t.Fatalf("mix did not fall: %v -> %v", prev, c.Mix())
		}
		prev = c.Mix()
	}
}

func TestCrossfaderProcessFuncLazy(t *testing.T) {
	var c Crossfader
	calls := 0
	back := func() float64 {
		calls++
		return 1
	}

	c.ProcessFunc(48000, func() float64 { return 0 }, back)
	if calls != 0 {
		t.Fatalf("back evaluated %d times while settled at front", calls)
	}

	c.BeginFade(true)
	c.ProcessFunc(48000, func() float64 { return 0 }, back)
	if calls != 1 {
		t.Fatalf("back evaluated %d times during fade", calls)
	}
}

func TestCrossfaderSnap(t *testing.T) {
	var c Crossfader
	c.Snap(true)
	if !c.AtBack() || !c.BackTargeted() || c.InTransition() {
		t.Fatal("Snap(true) did not reach back")
	}

	c.Snap(false)
	if !c.AtFront() || !c.FrontTargeted() {
		t.Fatal("Snap(false) did not reach front")
	}
}
