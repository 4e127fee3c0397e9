package layout

// Style holds the box-model properties of a node.
//
// Every constraint is optional; a nil field means the property does not
// constrain its axis. Padding applies uniformly to all four sides and Gap to
// every space between adjacent children.
type Style struct {
	// Sizing
	Width     *Scalar
	Height    *Scalar
	MinWidth  *Scalar
	MaxWidth  *Scalar
	MinHeight *Scalar
	MaxHeight *Scalar

	// Spacing
	Padding *FixedScalar
	Gap     *FixedScalar

	// Placement, read by the placement phase only
	Align  *Align
	Anchor *Align

	Direction Direction
}

// NewStyle returns an unconstrained style stacking along Y.
func NewStyle() Style {
	return Style{Direction: Y}
}

func (s *Style) SetWidth(v Scalar) *Style     { s.Width = &v; return s }
func (s *Style) SetHeight(v Scalar) *Style    { s.Height = &v; return s }
func (s *Style) SetMinWidth(v Scalar) *Style  { s.MinWidth = &v; return s }
func (s *Style) SetMaxWidth(v Scalar) *Style  { s.MaxWidth = &v; return s }
func (s *Style) SetMinHeight(v Scalar) *Style { s.MinHeight = &v; return s }
func (s *Style) SetMaxHeight(v Scalar) *Style { s.MaxHeight = &v; return s }

func (s *Style) SetPadding(v FixedScalar) *Style { s.Padding = &v; return s }
func (s *Style) SetGap(v FixedScalar) *Style     { s.Gap = &v; return s }

func (s *Style) SetAlign(a Align) *Style  { s.Align = &a; return s }
func (s *Style) SetAnchor(a Align) *Style { s.Anchor = &a; return s }

func (s *Style) SetDirection(d Direction) *Style { s.Direction = d; return s }

// padding returns the uniform padding, or zero when unset.
func (s *Style) padding() FixedScalar {
	if s.Padding == nil {
		return 0
	}
	return *s.Padding
}

// gap returns the inter-child gap, or zero when unset.
func (s *Style) gap() FixedScalar {
	if s.Gap == nil {
		return 0
	}
	return *s.Gap
}

// Clone returns a deep copy so later setter calls on either style do not
// leak into the other.
func (s Style) Clone() Style {
	c := s
	c.Width = clonePtr(s.Width)
	c.Height = clonePtr(s.Height)
	c.MinWidth = clonePtr(s.MinWidth)
	c.MaxWidth = clonePtr(s.MaxWidth)
	c.MinHeight = clonePtr(s.MinHeight)
	c.MaxHeight = clonePtr(s.MaxHeight)
	c.Padding = clonePtr(s.Padding)
	c.Gap = clonePtr(s.Gap)
	c.Align = clonePtr(s.Align)
	c.Anchor = clonePtr(s.Anchor)
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
