package clock

import (
	"fmt"
	"math"
)

// Fraction is a clock multiplier expressed as a ratio of small integers.
type Fraction struct {
	Numerator   int
	Denominator int
	Name        string
}

// Ratio returns Numerator/Denominator.
func (f Fraction) Ratio() float64 {
	return float64(f.Numerator) / float64(f.Denominator)
}

// String returns "n/d".
func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
}

// The clock period is treated as a quarter note.
var fractionTable = [...]Fraction{
	{1, 8, "1/32 note"},
	{1, 6, "1/16 triplet"},
	{1, 4, "1/16 note"},
	{1, 3, "1/8 triplet"},
	{3, 8, "dotted 1/16 note"},
	{1, 2, "1/8 note"},
	{2, 3, "1/4 triplet"},
	{3, 4, "dotted 1/8 note"},
	{1, 1, "1/4 note"},
	{4, 3, "1/2 triplet"},
	{3, 2, "dotted 1/4 note"},
	{2, 1, "1/2 note"},
	{8, 3, "whole triplet"},
	{3, 1, "dotted 1/2 note"},
	{4, 1, "whole note"},
	{6, 1, "dotted whole note"},
	{8, 1, "double whole note"},
}

// NumFractions is the size of the fraction table.
const NumFractions = len(fractionTable)

// Fractions returns a copy of the fraction table in ascending ratio order.
func Fractions() []Fraction {
	out := make([]Fraction, NumFractions)
	copy(out, fractionTable[:])

	return out
}

// FractionAt returns table entry i. It panics when i is out of range.
func FractionAt(i int) Fraction {
	if i < 0 || i >= NumFractions {
		panic(fmt.Sprintf("clock: fraction index %d out of range [0, %d)", i, NumFractions))
	}

	return fractionTable[i]
}

// PickClosestFraction returns the table entry closest to ratio.
func PickClosestFraction(ratio float64) Fraction {
	return fractionTable[ClosestFractionIndex(ratio)]
}

// ClosestFractionIndex returns the index of the table entry closest to
// ratio. Ratios at or below zero (and NaN) map to the first entry, ratios
// above 8 to the last. A ratio exactly halfway between two entries maps to
// the lower one.
//
// All table ratios are whole multiples of 1/48, so the comparison runs in
// that domain against the arithmetic midpoints of adjacent entries.
func ClosestFractionIndex(ratio float64) int {
	if math.IsNaN(ratio) {
		return 0
	}

	x := ratio * 48

	if x <= 42 {
		if x <= 14 {
			if x <= 7 {
				return 0
			}
			if x <= 10 {
				return 1
			}
			return 2
		}
		if x <= 21 {
			if x <= 17 {
				return 3
			}
			return 4
		}
		if x <= 28 {
			return 5
		}
		if x <= 34 {
			return 6
		}
		return 7
	}

	if x <= 136 {
		if x <= 68 {
			if x <= 56 {
				return 8
			}
			return 9
		}
		if x <= 84 {
			return 10
		}
		if x <= 112 {
			return 11
		}
		return 12
	}

	if x <= 240 {
		if x <= 168 {
			return 13
		}
		return 14
	}
	if x <= 336 {
		return 15
	}
	return 16
}
