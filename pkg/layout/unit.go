package layout

import (
	"strconv"
)

// Unit specifies how a Scalar is interpreted.
type Unit uint8

const (
	UnitPx      Unit = iota // Absolute pixels
	UnitPercent             // Percent of the nearest sized ancestor
	UnitVw                  // Percent of the root width
	UnitVh                  // Percent of the root height
)

var unitSuffix = [...]string{
	UnitPx:      "px",
	UnitPercent: "%",
	UnitVw:      "vw",
	UnitVh:      "vh",
}

// String returns the CSS suffix of the unit.
func (u Unit) String() string {
	if int(u) < len(unitSuffix) {
		return unitSuffix[u]
	}
	return "unit(" + strconv.Itoa(int(u)) + ")"
}

// FixedScalar is a signed pixel quantity that has already been resolved.
type FixedScalar int

// Scalar is a magnitude paired with a unit. Scalars are values and are only
// ever resolved, never mutated.
type Scalar struct {
	Amount float64
	Unit   Unit
}

// Px returns a Scalar of n pixels.
func Px(n float64) Scalar {
	return Scalar{Amount: n, Unit: UnitPx}
}

// Percent returns a Scalar relative to the nearest sized ancestor.
// The value is on a 0-100 scale (50 = 50%).
func Percent(p float64) Scalar {
	return Scalar{Amount: p, Unit: UnitPercent}
}

// Vw returns a Scalar relative to the root width (0-100 scale).
func Vw(p float64) Scalar {
	return Scalar{Amount: p, Unit: UnitVw}
}

// Vh returns a Scalar relative to the root height (0-100 scale).
func Vh(p float64) Scalar {
	return Scalar{Amount: p, Unit: UnitVh}
}

// String renders the scalar in CSS notation, e.g. "50%" or "10vw".
func (s Scalar) String() string {
	return strconv.FormatFloat(s.Amount, 'f', -1, 64) + s.Unit.String()
}

// of returns amount percent of base, truncated toward zero.
func (s Scalar) of(base FixedScalar) FixedScalar {
	return FixedScalar(float64(base) * s.Amount / 100.0)
}
