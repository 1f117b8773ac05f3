package main

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-echo/internal/testutil"
)

func TestWAVRoundTrip(t *testing.T) {
	for _, bits := range []int{16, 24, 32} {
		path := filepath.Join(t.TempDir(), "clip.wav")

		in := newClip(44100, 2, 1000)
		copy(in.channels[0], testutil.DeterministicSine(440, 44100, 0.8, 1000))
		copy(in.channels[1], testutil.DeterministicNoise(5, 0.5, 1000))

		if err := writeWAV(path, in, bits); err != nil {
			t.Fatalf("%d bits: writeWAV: %v", bits, err)
		}

		out, err := readWAV(path)
		if err != nil {
			t.Fatalf("%d bits: readWAV: %v", bits, err)
		}

		if out.sampleRate != 44100 || len(out.channels) != 2 {
			t.Fatalf("%d bits: rate %d channels %d", bits, out.sampleRate, len(out.channels))
		}

		eps := 2 / math.Pow(2, float64(bits-1))
		for ch := range in.channels {
			testutil.RequireSliceNearlyEqual(t, out.channels[ch], in.channels[ch], eps)
		}
	}
}

func TestEncodeWAVRejectsBitDepth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := writeWAV(path, newClip(1000, 1, 10), 12); err == nil {
		t.Fatal("expected error")
	}
}

func TestReadWAVMissing(t *testing.T) {
	if _, err := readWAV(filepath.Join(t.TempDir(), "nope.wav")); err == nil {
		t.Fatal("expected error")
	}
}
