package tape

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-echo/dsp/interp"
	"github.com/cwbudde/algo-echo/internal/testutil"
)

func newTestLoop(t *testing.T, kind interp.Kind, delay, sampleRate float64) *Loop {
	t.Helper()

	l := NewLoop(WithInterpolator(kind))
	if !l.SetDelayTime(delay, sampleRate) {
		t.Fatalf("SetDelayTime(%v, %v) rejected", delay, sampleRate)
	}

	return l
}

// --- configuration ---

func TestSetDelayTimeRejectsInvalid(t *testing.T) {
	l := NewLoop()

	if l.SetDelayTime(math.NaN(), 48000) {
		t.Fatal("accepted NaN delay")
	}
	if l.SetDelayTime(math.Inf(1), 48000) {
		t.Fatal("accepted Inf delay")
	}
	if l.SetDelayTime(1, 999) {
		t.Fatal("accepted sample rate below minimum")
	}
	if l.SetDelayTime(1, math.NaN()) {
		t.Fatal("accepted NaN sample rate")
	}
	if l.Len() != 0 || l.DelayTime() != 0 {
		t.Fatalf("rejected calls changed state: len=%d delay=%v", l.Len(), l.DelayTime())
	}

	if !l.SetDelayTime(0.5, 1000) {
		t.Fatal("valid request rejected")
	}
	if l.SetDelayTime(math.NaN(), 1000) {
		t.Fatal("accepted NaN after valid request")
	}
	if got := l.DelayTime(); got != 0.5 {
		t.Fatalf("previous delay not retained: %v", got)
	}
}

func TestBufferSizedForMaximumDelay(t *testing.T) {
	for _, sr := range []float64{1000, 44100, 48000} {
		l := newTestLoop(t, interp.Linear, 1, sr)
		want := int(math.Ceil(sr * (MaxDelaySeconds + CrossoverSeconds)))
		if l.Len() < want {
			t.Fatalf("sr=%v: len %d < %d", sr, l.Len(), want)
		}
	}
}

func TestSampleRateChangeResizesAndClears(t *testing.T) {
	l := newTestLoop(t, interp.Linear, 0.2, 1000)
	for i := 0; i < 300; i++ {
		l.Write(1, 1)
	}

	if !l.SetDelayTime(0.2, 2000) {
		t.Fatal("rate change rejected")
	}
	if l.SampleRate() != 2000 {
		t.Fatalf("sample rate %v want 2000", l.SampleRate())
	}
	if got := l.ReadForward(); got != 0 {
		t.Fatalf("stale data after resize: %v", got)
	}
}

func TestDelayTimeInvariant(t *testing.T) {
	l := newTestLoop(t, interp.Linear, 0, 1000)
	if got := l.DelayTime(); got <= 0 || got > MaxDelaySeconds {
		t.Fatalf("delay %v outside (0, max]", got)
	}
}

// --- round trip ---

func TestRoundTripDelay(t *testing.T) {
	const (
		sampleRate = 1000.0
		delay      = 0.25
		marker     = 0.7
	)

	for _, kind := range []interp.Kind{interp.Linear, interp.Sinc} {
		t.Run(kind.String(), func(t *testing.T) {
			l := newTestLoop(t, kind, delay, sampleRate)
			n := int(math.Round(delay * sampleRate))

			for step := 0; step <= n; step++ {
				l.SetDelayTime(delay, sampleRate)
				got := l.ReadForward()

				want := 0.0
				if step == n {
					want = marker
				}
				if math.Abs(got-want) > 1e-9 {
					t.Fatalf("step %d: got %v want %v", step, got, want)
				}

				in := 0.0
				if step == 0 {
					in = marker
				}
				l.Write(in, 1)
			}
		})
	}
}

func TestWriteAppliesGain(t *testing.T) {
	l := newTestLoop(t, interp.Linear, 0.1, 1000)
	l.Write(0.5, 0.5)
	for i := 1; i < 100; i++ {
		l.Write(0, 1)
	}

	if got := l.ReadForward(); math.Abs(got-0.25) > 1e-12 {
		t.Fatalf("got %v want 0.25", got)
	}
}

// --- crossover ---

func TestRecallContinuity(t *testing.T) {
	const (
		sampleRate = 1000.0
		delay      = 0.2
		eps        = 1e-6
	)

	noise := testutil.DeterministicNoise(1, 1, 3000)

	for _, kind := range []interp.Kind{interp.Linear, interp.Sinc} {
		t.Run(kind.String(), func(t *testing.T) {
			l := newTestLoop(t, kind, delay, sampleRate)
			for _, x := range noise {
				l.Write(x, 1)
			}

			check := func(x float64) {
				if diff := math.Abs(l.Recall(x+eps) - l.Recall(x)); diff > 1e-2 {
					t.Fatalf("Recall jumps by %v between %v and %v", diff, x, x+eps)
				}
			}

			for x := 0.0; x < 2*delay+CrossoverSeconds; x += 0.00037 {
				check(x)
			}

			// Seams: the wrap point, the crossover edge and zero.
			for _, x := range []float64{-eps / 2, CrossoverSeconds - eps/2, delay - eps/2, delay + CrossoverSeconds - eps/2} {
				check(x)
			}
		})
	}
}

func TestRecallOffsetIsModuloDelay(t *testing.T) {
	l := newTestLoop(t, interp.Linear, 0.3, 1000)
	for _, x := range testutil.DeterministicNoise(3, 1, 2000) {
		l.Write(x, 1)
	}

	for _, x := range []float64{0.07, 0.15, 0.29} {
		a := l.Recall(x)
		b := l.Recall(x + 0.3)
		c := l.Recall(x - 0.6)
		if math.Abs(a-b) > 1e-9 || math.Abs(a-c) > 1e-9 {
			t.Fatalf("Recall(%v) not periodic: %v %v %v", x, a, b, c)
		}
	}
}

// --- overload ---

func TestOverloadSelfRecovery(t *testing.T) {
	const sampleRate = 1000.0

	l := newTestLoop(t, interp.Linear, 0.1, sampleRate)
	for i := 0; i < 200; i++ {
		if !l.Write(0.5, 1) {
			t.Fatalf("write %d rejected before overload", i)
		}
	}

	if l.Write(math.NaN(), 1) {
		t.Fatal("NaN write reported success")
	}
	if !l.Recovering() {
		t.Fatal("loop not recovering after NaN")
	}

	for i := 0; i < int(sampleRate); i++ {
		if got := l.ReadForward(); got != 0 {
			t.Fatalf("recovery sample %d reads %v, want silence", i, got)
		}
		if l.Write(0.5, 1) {
			t.Fatalf("recovery write %d reported success", i)
		}
	}

	if l.Recovering() {
		t.Fatal("still recovering after one second")
	}

	if !l.Write(0.25, 1) {
		t.Fatal("write after recovery rejected")
	}
	for i := 0; i < 99; i++ {
		l.Write(0, 1)
	}
	if got := l.ReadForward(); math.Abs(got-0.25) > 1e-12 {
		t.Fatalf("post-recovery readback %v, want 0.25", got)
	}
}

func TestOverloadOnCeiling(t *testing.T) {
	l := newTestLoop(t, interp.Linear, 0.1, 1000)

	if !l.Write(RecordCeiling, 1) {
		t.Fatal("write at the ceiling rejected")
	}
	if l.Write(-RecordCeiling-1, 1) {
		t.Fatal("write above the ceiling accepted")
	}
}

func TestOverloadBeforeSampleRateKnown(t *testing.T) {
	l := NewLoop()
	l.Write(math.Inf(1), 1)

	count := 0
	for l.Recovering() {
		l.Write(0, 1)
		count++
	}

	if count != DefaultRecoverySamples {
		t.Fatalf("recovered after %d samples, want %d", count, DefaultRecoverySamples)
	}
}

// --- reverse ---

func TestReversePlaybackHeadAdvance(t *testing.T) {
	const sampleRate = 1000.0

	l := newTestLoop(t, interp.Linear, 0.1, sampleRate)
	for i := 0; i < 60; i++ {
		l.UpdateReversePlaybackHead()
	}

	// 60 samples at 2x is 0.12 s, wrapped modulo 0.1 s.
	if got := l.ReversePlaybackHead(); math.Abs(got-0.02) > 1e-9 {
		t.Fatalf("head at %v, want 0.02", got)
	}
}

func TestReversePlaysBackward(t *testing.T) {
	const (
		sampleRate = 1000.0
		delay      = 1.0
		step       = 0.001
	)

	l := newTestLoop(t, interp.Linear, delay, sampleRate)
	j := 0
	for ; j < 2000; j++ {
		l.Write(float64(j)*step, 1)
	}

	checked := 0
	prevValue, prevHead := 0.0, -1.0
	for i := 0; i < 1500; i++ {
		head := l.ReversePlaybackHead()
		v := l.ReadReverse()

		if prevHead > 2*CrossoverSeconds && head > prevHead {
			if diff := v - prevValue; math.Abs(diff+step) > 1e-9 {
				t.Fatalf("sample %d: reverse step %v, want %v", i, diff, -step)
			}
			checked++
		}

		prevValue, prevHead = v, head
		l.UpdateReversePlaybackHead()
		l.Write(float64(j)*step, 1)
		j++
	}

	if checked < 1000 {
		t.Fatalf("only %d reverse steps checked", checked)
	}
}

func TestResetKeepsAllocation(t *testing.T) {
	l := newTestLoop(t, interp.Linear, 0.5, 1000)
	n := l.Len()
	l.Write(1, 1)
	l.Reset()

	if l.Len() != n {
		t.Fatalf("Reset changed length %d -> %d", n, l.Len())
	}
	if l.DelayTime() != 0 {
		t.Fatalf("Reset kept delay %v", l.DelayTime())
	}
}

func TestReadsBeforeSampleRateAreSilent(t *testing.T) {
	l := NewLoop()
	if got := l.ReadForward(); got != 0 {
		t.Fatalf("got %v want 0", got)
	}
	if got := l.ReadReverse(); got != 0 {
		t.Fatalf("got %v want 0", got)
	}
	if !l.Write(0.3, 1) {
		t.Fatal("write without buffer rejected")
	}
}
