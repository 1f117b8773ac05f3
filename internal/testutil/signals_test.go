package testutil

import (
	"math"
	"slices"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}

	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}

	if math.Abs(s[12]-1) > 1e-12 {
		t.Fatalf("quarter period = %v, want 1", s[12])
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 0.5, 256)
	b := DeterministicNoise(42, 0.5, 256)
	c := DeterministicNoise(43, 0.5, 256)

	if !slices.Equal(a, b) {
		t.Fatal("same seed produced different noise")
	}

	if slices.Equal(a, c) {
		t.Fatal("different seeds produced identical noise")
	}

	for i, v := range a {
		if v < -0.5 || v >= 0.5 {
			t.Fatalf("a[%d] = %v out of range", i, v)
		}
	}
}

func TestPulseTrain(t *testing.T) {
	got := PulseTrain(4, 2, 5, 10)
	want := []float64{5, 5, 0, 0, 5, 5, 0, 0, 5, 5}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}

	if got := PulseTrain(0, 1, 5, 3); !slices.Equal(got, []float64{0, 0, 0}) {
		t.Fatalf("zero period: got %v", got)
	}
}

func TestDelayed(t *testing.T) {
	got := Delayed([]float64{1, 2, 3, 4}, 2)
	if !slices.Equal(got, []float64{0, 0, 1, 2}) {
		t.Fatalf("got %v", got)
	}

	if got := Delayed([]float64{1, 2}, 5); !slices.Equal(got, []float64{0, 0}) {
		t.Fatalf("past end: got %v", got)
	}
}
