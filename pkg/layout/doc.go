// Package layout computes intrinsic (minimum) box sizes for a tree of layout
// nodes.
//
// A [Node] tree is sized against a [Context], the per-traversal resolution
// frame. The context carries the root (viewport) dimensions, the dimensions of
// the nearest explicitly sized ancestor, and the desired size inherited from
// the parent's computed box. Lengths are expressed as [Scalar] values and
// resolved to [FixedScalar] pixels against that frame:
//
//   - px: passes through unchanged
//   - %: percent of the nearest sized ancestor on the same axis
//   - vw: percent of the root width, on either axis
//   - vh: percent of the root height, on either axis
//
// # Sizing
//
// [Node.ComputeSize] folds the minimum sizes of a node's children along its
// [Direction] (X sums widths, Y sums heights, Z overlays), adds padding and
// on-axis gaps, then applies the node's own width/max/min constraints in that
// order, width before height. A node carrying a [Measurer] skips its children
// and reports the measured size instead.
//
// [Node.MinimumSize] memoizes the result against a minimum context (desired
// size zeroed). The cache is invalidated whenever the node or any of its
// descendants is mutated. Edits made through [Node.Style] must be followed
// by [Node.Touch]; the shortcut setters do this themselves.
//
// # Example
//
//	root := layout.New().AddChild(
//	    layout.New().Width(layout.Px(150)).AddChild(
//	        layout.New().Width(layout.Px(50)).Height(layout.Px(50)),
//	    ),
//	    layout.New().Width(layout.Px(200)).Height(layout.Vh(10)),
//	)
//	size := root.ComputeSize(layout.NewContext(1000, 1000).AsMinimum())
//
// Placement (origin, alignment, anchoring, wrapping) is not computed yet:
// [Node.ComputeLayout] yields a zero rectangle.
package layout
