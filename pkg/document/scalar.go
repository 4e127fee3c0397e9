package document

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/boxsize/pkg/errors"
	"github.com/matzehuels/boxsize/pkg/layout"
)

// unitSuffixes maps CSS suffixes to units; anything else is a bare pixel count.
var unitSuffixes = []struct {
	suffix string
	unit   layout.Unit
}{
	{"px", layout.UnitPx},
	{"vw", layout.UnitVw},
	{"vh", layout.UnitVh},
	{"%", layout.UnitPercent},
}

// ParseScalar parses a CSS-style length such as "100px", "50%", "10vw",
// "5vh" or a bare number of pixels.
func ParseScalar(s string) (layout.Scalar, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return layout.Scalar{}, errors.New(errors.ErrCodeInvalidUnit, "empty length")
	}

	num, unit := raw, layout.UnitPx
	lower := strings.ToLower(raw)
	for _, u := range unitSuffixes {
		if strings.HasSuffix(lower, u.suffix) {
			num, unit = strings.TrimSpace(raw[:len(raw)-len(u.suffix)]), u.unit
			break
		}
	}

	amount, err := strconv.ParseFloat(num, 64)
	if err != nil || !finite(amount) {
		return layout.Scalar{}, errors.New(errors.ErrCodeInvalidUnit, "invalid length %q", s)
	}
	return layout.Scalar{Amount: amount, Unit: unit}, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Length is a layout.Scalar that decodes from TOML and JSON, either as a
// string in CSS notation or as a bare number of pixels.
type Length struct {
	layout.Scalar
}

// UnmarshalTOML implements toml.Unmarshaler.
func (l *Length) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case string:
		s, err := ParseScalar(v)
		if err != nil {
			return err
		}
		l.Scalar = s
	case int64:
		l.Scalar = layout.Px(float64(v))
	case float64:
		if !finite(v) {
			return errors.New(errors.ErrCodeInvalidUnit, "invalid length %v", v)
		}
		l.Scalar = layout.Px(v)
	default:
		return errors.New(errors.ErrCodeInvalidUnit, "length must be a string or number, got %T", v)
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *Length) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return l.UnmarshalTOML(s)
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return errors.New(errors.ErrCodeInvalidUnit, "length must be a string or number, got %s", data)
	}
	l.Scalar = layout.Px(f)
	return nil
}

// MarshalText renders the length in CSS notation.
func (l Length) MarshalText() ([]byte, error) {
	return []byte(l.Scalar.String()), nil
}

// ParseDirection parses "x", "y" or "z" (case-insensitive). The empty
// string selects the default, y.
func ParseDirection(s string) (layout.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "y", "column":
		return layout.Y, nil
	case "x", "row":
		return layout.X, nil
	case "z", "stack":
		return layout.Z, nil
	default:
		return layout.Y, errors.New(errors.ErrCodeInvalidDirection, "unknown direction %q (want x, y or z)", s)
	}
}

var (
	hAligns = map[string]layout.HAlign{
		"start": layout.HStart, "center": layout.HCenter, "end": layout.HEnd, "wide": layout.HWide,
	}
	vAligns = map[string]layout.VAlign{
		"top": layout.VTop, "center": layout.VCenter, "bottom": layout.VBottom, "tall": layout.VTall,
	}
)

// ParseAlign parses an alignment. A single keyword selects one axis:
// start, end and wide are horizontal; top, bottom and tall are vertical;
// center centers both axes. "h:v" names both, e.g. "end:top".
func ParseAlign(s string) (layout.Align, error) {
	raw := strings.ToLower(strings.TrimSpace(s))

	if h, v, ok := strings.Cut(raw, ":"); ok {
		ha, hok := hAligns[strings.TrimSpace(h)]
		va, vok := vAligns[strings.TrimSpace(v)]
		if !hok || !vok {
			return layout.Align{}, errors.New(errors.ErrCodeInvalidAlign, "invalid alignment %q", s)
		}
		return layout.AlignBoth(ha, va), nil
	}

	if raw == "center" {
		return layout.AlignBoth(layout.HCenter, layout.VCenter), nil
	}
	if ha, ok := hAligns[raw]; ok {
		return layout.AlignH(ha), nil
	}
	if va, ok := vAligns[raw]; ok {
		return layout.AlignV(va), nil
	}
	return layout.Align{}, errors.New(errors.ErrCodeInvalidAlign, "invalid alignment %q", s)
}

// formatScalar is the inverse of ParseScalar for reports and labels.
func formatScalar(s *layout.Scalar) string {
	if s == nil {
		return ""
	}
	return fmt.Sprint(*s)
}
