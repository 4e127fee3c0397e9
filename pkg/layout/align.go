package layout

// HAlign positions content along the horizontal axis.
type HAlign uint8

const (
	HStart HAlign = iota
	HCenter
	HEnd
	HWide // Stretch to the full width
)

// VAlign positions content along the vertical axis.
type VAlign uint8

const (
	VTop VAlign = iota
	VCenter
	VBottom
	VTall // Stretch to the full height
)

// AlignKind tells which axes an Align constrains.
type AlignKind uint8

const (
	AlignHorizontal AlignKind = iota
	AlignVertical
	AlignBothAxes
)

// Align is a horizontal alignment, a vertical alignment, or both.
// It is stored on a Style for the placement phase and is not read by the
// sizing algorithm.
type Align struct {
	Kind AlignKind
	H    HAlign
	V    VAlign
}

// AlignH returns a horizontal-only alignment.
func AlignH(h HAlign) Align {
	return Align{Kind: AlignHorizontal, H: h}
}

// AlignV returns a vertical-only alignment.
func AlignV(v VAlign) Align {
	return Align{Kind: AlignVertical, V: v}
}

// AlignBoth returns an alignment on both axes.
func AlignBoth(h HAlign, v VAlign) Align {
	return Align{Kind: AlignBothAxes, H: h, V: v}
}

// Horizontal returns the horizontal component, if any.
func (a Align) Horizontal() (HAlign, bool) {
	return a.H, a.Kind != AlignVertical
}

// Vertical returns the vertical component, if any.
func (a Align) Vertical() (VAlign, bool) {
	return a.V, a.Kind != AlignHorizontal
}

var (
	hAlignNames = [...]string{HStart: "start", HCenter: "center", HEnd: "end", HWide: "wide"}
	vAlignNames = [...]string{VTop: "top", VCenter: "center", VBottom: "bottom", VTall: "tall"}
)

func (h HAlign) String() string {
	if int(h) < len(hAlignNames) {
		return hAlignNames[h]
	}
	return "halign(?)"
}

func (v VAlign) String() string {
	if int(v) < len(vAlignNames) {
		return vAlignNames[v]
	}
	return "valign(?)"
}

// String renders the alignment as "h", "v" or "h:v".
func (a Align) String() string {
	switch a.Kind {
	case AlignHorizontal:
		return a.H.String()
	case AlignVertical:
		return a.V.String()
	default:
		return a.H.String() + ":" + a.V.String()
	}
}
