package interp

import (
	"fmt"
	"strings"
)

// Kind selects the interpolation algorithm.
type Kind int

const (
	// Linear blends the two bracketing samples.
	Linear Kind = iota
	// Sinc evaluates a windowed sinc over ±SincHalfWidth samples.
	Sinc
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case Linear:
		return "linear"
	case Sinc:
		return "sinc"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Valid reports whether k names a known kernel.
func (k Kind) Valid() bool {
	return k == Linear || k == Sinc
}

// ParseKind converts a name produced by String back into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linear", "":
		return Linear, nil
	case "sinc":
		return Sinc, nil
	default:
		return Linear, fmt.Errorf("unknown interpolator kind: %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid interpolator kind: %d", int(k))
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}

	*k = parsed

	return nil
}

// Linear2 interpolates between x0 (frac=0) and x1 (frac=1).
func Linear2(frac, x0, x1 float64) float64 {
	return x0 + frac*(x1-x0)
}

// Taps returns the FIR weights kind applies to read at frac past a sample.
// Linear weights apply to x[i0], x[i0+1]; sinc weights to x[i0-3] .. x[i0+3].
func Taps(kind Kind, frac float64) []float64 {
	if kind == Sinc {
		w := DefaultSincTable().Weights(frac)
		return w[:]
	}

	return []float64{1 - frac, frac}
}
