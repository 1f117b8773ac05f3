package clock

import "testing"

func TestReceiverHysteresis(t *testing.T) {
	var r Receiver

	steps := []struct {
		v       float64
		trigger bool
		gate    bool
	}{
		{v: 0, trigger: false, gate: false},
		{v: 0.9, trigger: false, gate: false},
		{v: 1.0, trigger: true, gate: true},
		{v: 5, trigger: false, gate: true},
		{v: 0.5, trigger: false, gate: true}, // still above the low threshold
		{v: 1.2, trigger: false, gate: true}, // no re-trigger without re-arm
		{v: 0.05, trigger: false, gate: false},
		{v: 2, trigger: true, gate: true},
	}

	for i, s := range steps {
		got := r.Update(s.v, 1000)
		if got != s.trigger || r.Gate() != s.gate {
			t.Fatalf("step %d (v=%v): trigger=%v gate=%v, want %v %v", i, s.v, got, r.Gate(), s.trigger, s.gate)
		}
	}
}

func TestReceiverDeadTime(t *testing.T) {
	const sampleRate = 10000.0 // dead time is 10 samples

	var r Receiver
	if !r.Update(5, sampleRate) {
		t.Fatal("first edge ignored")
	}

	// Re-arm and fire again after 4 samples: inside the dead time.
	r.Update(0, sampleRate)
	r.Update(0, sampleRate)
	r.Update(0, sampleRate)
	if r.Update(5, sampleRate) {
		t.Fatal("edge inside dead time accepted")
	}

	for i := 0; i < 10; i++ {
		r.Update(0, sampleRate)
	}
	if !r.Update(5, sampleRate) {
		t.Fatal("edge after dead time ignored")
	}
}

func TestReceiverCountsSamples(t *testing.T) {
	var r Receiver
	r.Update(5, 48000)
	for i := 0; i < 41; i++ {
		r.Update(0, 48000)
	}

	if got := r.SamplesSinceTrigger(); got != 41 {
		t.Fatalf("got %d want 41", got)
	}

	r.Reset()
	if r.Seen() || r.Gate() || r.SamplesSinceTrigger() != 0 {
		t.Fatal("Reset left state behind")
	}
}
