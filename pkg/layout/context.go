package layout

import "fmt"

// Context is the resolution frame for one sizing traversal.
//
// The sized-ancestor dimensions always describe the nearest ancestor (or the
// root) that declared an explicit width or height; unsized intermediates are
// skipped. The desired dimensions carry the parent's already computed box,
// for measurers that want to fill the available space.
type Context struct {
	rootWidth           FixedScalar
	rootHeight          FixedScalar
	sizedAncestorWidth  FixedScalar
	sizedAncestorHeight FixedScalar
	desiredWidth        FixedScalar
	desiredHeight       FixedScalar
}

// NewContext returns the root context for a viewport of the given size.
// The root acts as the sized ancestor and desired size of the top node.
func NewContext(rootWidth, rootHeight FixedScalar) Context {
	return Context{
		rootWidth:           rootWidth,
		rootHeight:          rootHeight,
		sizedAncestorWidth:  rootWidth,
		sizedAncestorHeight: rootHeight,
		desiredWidth:        rootWidth,
		desiredHeight:       rootHeight,
	}
}

// AsMinimum returns a copy of c with the desired size zeroed.
func (c Context) AsMinimum() Context {
	c.desiredWidth = 0
	c.desiredHeight = 0
	return c
}

// IsMinimum reports whether c carries no desired size.
func (c Context) IsMinimum() bool {
	return c.desiredWidth == 0 && c.desiredHeight == 0
}

// ChildContext derives the context for the children of n.
//
// An explicit width or height on n, resolved against c, becomes the sized
// ancestor for that axis; otherwise the ancestor is inherited from c. The
// root passes through unchanged and the desired size becomes n's computed box.
func (c Context) ChildContext(n *Node) Context {
	child := Context{
		rootWidth:           c.rootWidth,
		rootHeight:          c.rootHeight,
		sizedAncestorWidth:  c.sizedAncestorWidth,
		sizedAncestorHeight: c.sizedAncestorHeight,
		desiredWidth:        n.computed.Width,
		desiredHeight:       n.computed.Height,
	}
	if w := n.style.Width; w != nil {
		child.sizedAncestorWidth = c.PixelizeWidth(*w)
	}
	if h := n.style.Height; h != nil {
		child.sizedAncestorHeight = c.PixelizeHeight(*h)
	}
	return child
}

// PixelizeWidth resolves s as a horizontal length.
func (c Context) PixelizeWidth(s Scalar) FixedScalar {
	return c.pixelize(s, c.sizedAncestorWidth)
}

// PixelizeHeight resolves s as a vertical length.
func (c Context) PixelizeHeight(s Scalar) FixedScalar {
	return c.pixelize(s, c.sizedAncestorHeight)
}

// pixelize resolves s; ancestor is the percent base for the axis being
// resolved. Viewport units ignore the axis: vw is always the root width.
func (c Context) pixelize(s Scalar, ancestor FixedScalar) FixedScalar {
	switch s.Unit {
	case UnitPercent:
		return s.of(ancestor)
	case UnitVw:
		return s.of(c.rootWidth)
	case UnitVh:
		return s.of(c.rootHeight)
	default:
		return FixedScalar(s.Amount)
	}
}

// Root returns the viewport dimensions.
func (c Context) Root() Size {
	return Size{Width: c.rootWidth, Height: c.rootHeight}
}

// SizedAncestor returns the percent base dimensions.
func (c Context) SizedAncestor() Size {
	return Size{Width: c.sizedAncestorWidth, Height: c.sizedAncestorHeight}
}

// Desired returns the size inherited from the parent's computed box.
func (c Context) Desired() Size {
	return Size{Width: c.desiredWidth, Height: c.desiredHeight}
}

func (c Context) String() string {
	return fmt.Sprintf("root=%dx%d ancestor=%dx%d desired=%dx%d",
		c.rootWidth, c.rootHeight,
		c.sizedAncestorWidth, c.sizedAncestorHeight,
		c.desiredWidth, c.desiredHeight)
}
