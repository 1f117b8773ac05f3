package interp

import (
	"fmt"
	"math"
	"sync"
)

const (
	// SincHalfWidth is the number of samples read on each side of the
	// interpolation point.
	SincHalfWidth = 3

	// SincWindowLen is the number of samples in a sinc window.
	SincWindowLen = 2*SincHalfWidth + 1

	defaultStepsPerUnit = 64
)

// SincWindow holds the samples x[i0-3] .. x[i0+3] around the integer
// position i0 of a read at i0+frac.
type SincWindow [SincWindowLen]float64

// SincTable is a precomputed sinc×Blackman kernel over |t| <= SincHalfWidth.
type SincTable struct {
	stepsPerUnit int
	points       []float64
}

var (
	defaultTable     *SincTable
	defaultTableOnce sync.Once
)

// DefaultSincTable returns the shared table with 64 points per sample.
// It is built on first use and never modified afterwards.
func DefaultSincTable() *SincTable {
	defaultTableOnce.Do(func() {
		t, err := NewSincTable(defaultStepsPerUnit)
		if err != nil {
			panic(err)
		}
		defaultTable = t
	})

	return defaultTable
}

// NewSincTable builds a table with stepsPerUnit points per sample period.
// stepsPerUnit must be even and positive so the point count is odd.
func NewSincTable(stepsPerUnit int) (*SincTable, error) {
	if stepsPerUnit <= 0 || stepsPerUnit%2 != 0 {
		return nil, fmt.Errorf("sinc table steps per unit must be even and > 0: %d", stepsPerUnit)
	}

	n := SincHalfWidth*stepsPerUnit + 1
	points := make([]float64, n)
	for j := range points {
		points[j] = windowedSinc(float64(j) / float64(stepsPerUnit))
	}

	return &SincTable{stepsPerUnit: stepsPerUnit, points: points}, nil
}

// Len returns the number of stored points (always odd).
func (t *SincTable) Len() int { return len(t.points) }

// At evaluates the kernel at offset x (in samples).
func (t *SincTable) At(x float64) float64 {
	x = math.Abs(x)
	if x >= SincHalfWidth {
		return 0
	}

	u := x * float64(t.stepsPerUnit)
	lastSegment := (len(t.points) - 3) / 2
	m := int(u / 2)
	if m > lastSegment {
		m = lastSegment
	}

	s := u - float64(2*m)
	y0 := t.points[2*m]
	y1 := t.points[2*m+1]
	y2 := t.points[2*m+2]

	// Quadratic through (0,y0), (1,y1), (2,y2).
	return y0*(s-1)*(s-2)/2 - y1*s*(s-2) + y2*s*(s-1)/2
}

// Interpolate evaluates the band-limited value at i0+frac given the window
// around i0. The weights are normalized so a constant signal is reproduced
// exactly.
func (t *SincTable) Interpolate(frac float64, w *SincWindow) float64 {
	var sum, norm float64
	for k := -SincHalfWidth; k <= SincHalfWidth; k++ {
		h := t.At(float64(k) - frac)
		sum += h * w[k+SincHalfWidth]
		norm += h
	}

	if norm == 0 {
		return 0
	}

	return sum / norm
}

// Weights returns the normalized tap weights Interpolate applies at frac.
func (t *SincTable) Weights(frac float64) SincWindow {
	var (
		w    SincWindow
		norm float64
	)

	for k := -SincHalfWidth; k <= SincHalfWidth; k++ {
		w[k+SincHalfWidth] = t.At(float64(k) - frac)
		norm += w[k+SincHalfWidth]
	}

	if norm != 0 {
		for i := range w {
			w[i] /= norm
		}
	}

	return w
}

func windowedSinc(x float64) float64 {
	if x == 0 {
		return 1
	}

	if math.Abs(x) >= SincHalfWidth {
		return 0
	}

	px := math.Pi * x
	sinc := math.Sin(px) / px
	phase := math.Pi * x / SincHalfWidth
	blackman := 0.42 + 0.5*math.Cos(phase) + 0.08*math.Cos(2*phase)

	return sinc * blackman
}
