package core

import "math"

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// LinearMix blends a toward b: mix=0 returns a, mix=1 returns b.
// The mix factor is clamped to [0, 1].
func LinearMix(mix, a, b float64) float64 {
	mix = Clamp(mix, 0, 1)
	return (1-mix)*a + mix*b
}

// Cube returns x*x*x.
func Cube(x float64) float64 {
	return x * x * x
}

// FourthPower returns x raised to the fourth power.
func FourthPower(x float64) float64 {
	x2 := x * x
	return x2 * x2
}

// Wrap reduces x into [0, period). A non-positive period returns 0.
func Wrap(x, period float64) float64 {
	if period <= 0 {
		return 0
	}

	r := math.Mod(x, period)
	if r < 0 {
		r += period
	}

	// math.Mod of a tiny negative value can round up to period itself.
	if r >= period {
		r = 0
	}

	return r
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// Long feedback tails decay through this range and stall the FPU otherwise.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// NearlyEqual reports whether a and b are equal within eps, absolute or relative.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = 1e-12
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return false
	}

	return diff/largest <= eps
}
