package echo

import (
	"testing"
)

func TestNewFrameDropsExtraSamples(t *testing.T) {
	samples := make([]float64, MaxChannels+4)
	for i := range samples {
		samples[i] = float64(i)
	}

	f := NewFrame(samples...)
	if f.Channels() != MaxChannels {
		t.Fatalf("channels: got %d want %d", f.Channels(), MaxChannels)
	}

	if f.Sample[MaxChannels-1] != MaxChannels-1 {
		t.Fatalf("last sample: got %v", f.Sample[MaxChannels-1])
	}
}

func TestFramePoly(t *testing.T) {
	f := NewFrame(1, 2)

	tests := []struct {
		c    int
		want float64
	}{
		{0, 1},
		{1, 2},
		{5, 2},
		{-1, 0},
	}
	for _, tt := range tests {
		if got := f.Poly(tt.c); got != tt.want {
			t.Errorf("Poly(%d) = %v, want %v", tt.c, got, tt.want)
		}
	}

	var empty Frame
	if got := empty.Poly(3); got != 0 {
		t.Fatalf("empty Poly = %v, want 0", got)
	}
}

func TestFrameChannelsClamp(t *testing.T) {
	f := Frame{NumChannels: -3}
	if f.Channels() != 0 {
		t.Fatalf("negative count: got %d", f.Channels())
	}

	f.NumChannels = 99
	if f.Channels() != MaxChannels {
		t.Fatalf("oversized count: got %d", f.Channels())
	}
}

func TestFrameAtPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()

	f := NewFrame(1)
	f.At(1)
}

func TestFrameAddWidens(t *testing.T) {
	a := NewFrame(1)
	b := NewFrame(2, 3, 4)
	a.Add(&b)

	if a.Channels() != 3 {
		t.Fatalf("channels: got %d want 3", a.Channels())
	}

	want := []float64{3, 3, 4}
	for i, w := range want {
		if a.Sample[i] != w {
			t.Fatalf("sample %d: got %v want %v", i, a.Sample[i], w)
		}
	}
}

func TestFrameScale(t *testing.T) {
	f := NewFrame(1, -2)
	f.Sample[2] = 7
	f.Scale(0.5)

	if f.Sample[0] != 0.5 || f.Sample[1] != -1 {
		t.Fatalf("got %v", f.Slice())
	}

	if f.Sample[2] != 7 {
		t.Fatalf("inactive channel scaled: %v", f.Sample[2])
	}
}

func TestLinkDelaysByOneFlip(t *testing.T) {
	var l Link[int]

	l.Send(1)
	if got := *l.Receive(); got != 0 {
		t.Fatalf("before flip: got %d want 0", got)
	}

	l.Flip()
	l.Send(2)
	if got := *l.Receive(); got != 1 {
		t.Fatalf("after flip: got %d want 1", got)
	}

	l.Flip()
	if got := *l.Receive(); got != 2 {
		t.Fatalf("after second flip: got %d want 2", got)
	}

	l.Reset()
	if got := *l.Receive(); got != 0 {
		t.Fatalf("after reset: got %d want 0", got)
	}
}
