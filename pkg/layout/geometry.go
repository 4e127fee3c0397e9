package layout

import "fmt"

// Direction is the axis along which a node stacks its children.
type Direction uint8

const (
	Y Direction = iota // Children stacked top-to-bottom (default)
	X                  // Children laid out left-to-right
	Z                  // Children overlaid on top of each other
)

// String returns the lowercase axis name.
func (d Direction) String() string {
	switch d {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// Size is a width/height pair in resolved pixels.
type Size struct {
	Width  FixedScalar
	Height FixedScalar
}

// NewSize returns a Size of the given dimensions.
func NewSize(width, height FixedScalar) Size {
	return Size{Width: width, Height: height}
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// Add combines two sizes along direction d. Along the stacking axis the
// extents sum; across it the larger extent is kept. Z keeps the larger
// extent on both axes.
func (s Size) Add(other Size, d Direction) Size {
	switch d {
	case X:
		return Size{Width: s.Width + other.Width, Height: max(s.Height, other.Height)}
	case Z:
		return Size{Width: max(s.Width, other.Width), Height: max(s.Height, other.Height)}
	default:
		return Size{Width: max(s.Width, other.Width), Height: s.Height + other.Height}
	}
}

// String returns the size as "WxH".
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Rect is a placed box. The sizing pass never sets X or Y.
type Rect struct {
	X, Y          FixedScalar
	Width, Height FixedScalar
}

// NewRect returns a Rect with the given origin and dimensions.
func NewRect(x, y, width, height FixedScalar) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Size returns the dimensions of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}
