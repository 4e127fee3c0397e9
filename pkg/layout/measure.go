package layout

// Measurer supplies the intrinsic size of leaf content that is not expressed
// as child nodes, such as text or images.
//
// When Measure reports ok, the node takes the returned size as its own and
// its children are not visited. The context carries the desired size for
// content that fills the available space.
type Measurer interface {
	Measure(ctx Context) (size Size, ok bool)
}

// NoMeasure never overrides child-based sizing. It is the default measurer
// of every node.
type NoMeasure struct{}

func (NoMeasure) Measure(Context) (Size, bool) { return Size{}, false }

// MeasureFunc adapts a function to the Measurer interface.
type MeasureFunc func(ctx Context) Size

func (f MeasureFunc) Measure(ctx Context) (Size, bool) { return f(ctx), true }

// FixedMeasure returns a Measurer that always reports s.
func FixedMeasure(s Size) Measurer {
	return MeasureFunc(func(Context) Size { return s })
}

// FillMeasure returns a Measurer that takes the desired size of its
// context, never going below floor.
func FillMeasure(floor Size) Measurer {
	return MeasureFunc(func(ctx Context) Size {
		d := ctx.Desired()
		return Size{Width: max(d.Width, floor.Width), Height: max(d.Height, floor.Height)}
	})
}

var (
	_ Measurer = NoMeasure{}
	_ Measurer = MeasureFunc(nil)
)
