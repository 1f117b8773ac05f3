package envelope

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-echo/internal/testutil"
)

func TestFollowerSilence(t *testing.T) {
	var f Follower
	for i := 0; i < 1000; i++ {
		if got := f.Process(0, 48000); got != 0 {
			t.Fatalf("got %v for silence", got)
		}
	}
}

func TestFollowerSineLevel(t *testing.T) {
	const sampleRate = 48000.0

	var f Follower
	var got float64
	for _, x := range testutil.DeterministicSine(440, sampleRate, 1, int(sampleRate)) {
		got = f.Process(x, sampleRate)
	}

	if math.Abs(got-1) > 0.05 {
		t.Fatalf("envelope of a unit sine settled at %v, want about 1", got)
	}
}

func TestFollowerAttackFasterThanDecay(t *testing.T) {
	const sampleRate = 48000.0

	var f Follower
	n := int(0.02 * sampleRate)
	var peak float64
	for i := 0; i < n; i++ {
		peak = f.Process(1, sampleRate)
	}
	if peak < 0.9 {
		t.Fatalf("envelope only reached %v after 20 ms", peak)
	}

	var after float64
	for i := 0; i < n; i++ {
		after = f.Process(0, sampleRate)
	}
	if after < 0.5*peak {
		t.Fatalf("envelope fell from %v to %v in 20 ms", peak, after)
	}
}

func TestFollowerIgnoresNonFinite(t *testing.T) {
	var f Follower
	f.Process(math.NaN(), 48000)
	f.Process(math.Inf(-1), 48000)

	if got := f.Value(); got != 0 {
		t.Fatalf("got %v", got)
	}
}

func TestFollowerReset(t *testing.T) {
	var f Follower
	for i := 0; i < 100; i++ {
		f.Process(1, 48000)
	}
	f.Reset()

	if f.Value() != 0 {
		t.Fatalf("Reset left %v", f.Value())
	}
}
