// Package kernel measures the frequency response of the tape loop's
// fractional-delay interpolators.
package kernel

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-echo/dsp/interp"
)

// DefaultFFTSize is the transform length used by PassbandDroopDB.
const DefaultFFTSize = 1024

// Response returns the magnitude response |H| of the interpolator reading
// frac past a sample, for bins 0 .. fftSize/2. fftSize must be a power of
// two of at least 16.
func Response(kind interp.Kind, frac float64, fftSize int) ([]float64, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("kernel: unknown interpolator kind: %v", kind)
	}

	if math.IsNaN(frac) || frac < 0 || frac >= 1 {
		return nil, fmt.Errorf("kernel: fraction must be in [0, 1): %f", frac)
	}

	if fftSize < 16 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("kernel: fft size must be a power of two >= 16: %d", fftSize)
	}

	in := make([]complex128, fftSize)
	for i, h := range interp.Taps(kind, frac) {
		in[i] = complex(h, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("kernel: failed to create FFT plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("kernel: forward FFT: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	return mag, nil
}

// PassbandDroopDB returns the gain in dB of the interpolator at frac for a
// frequency given as a fraction of Nyquist in [0, 1].
func PassbandDroopDB(kind interp.Kind, frac, normFreq float64) (float64, error) {
	if math.IsNaN(normFreq) || normFreq < 0 || normFreq > 1 {
		return 0, fmt.Errorf("kernel: normalized frequency must be in [0, 1]: %f", normFreq)
	}

	mag, err := Response(kind, frac, DefaultFFTSize)
	if err != nil {
		return 0, err
	}

	bin := int(math.Round(normFreq * float64(len(mag)-1)))

	return toDB(mag[bin]), nil
}

// Summary is the droop of one interpolator setting at a few frequencies.
type Summary struct {
	Kind     interp.Kind
	Frac     float64
	DroopDB  []float64
	FreqsNyq []float64
}

// Summarize evaluates PassbandDroopDB at each normalized frequency.
func Summarize(kind interp.Kind, frac float64, freqs ...float64) (Summary, error) {
	mag, err := Response(kind, frac, DefaultFFTSize)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{Kind: kind, Frac: frac, FreqsNyq: freqs, DroopDB: make([]float64, len(freqs))}
	for i, f := range freqs {
		if math.IsNaN(f) || f < 0 || f > 1 {
			return Summary{}, fmt.Errorf("kernel: normalized frequency must be in [0, 1]: %f", f)
		}
		s.DroopDB[i] = toDB(mag[int(math.Round(f*float64(len(mag)-1)))])
	}

	return s, nil
}

func toDB(m float64) float64 {
	if m <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(m)
}
