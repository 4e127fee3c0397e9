package layout

import "slices"

// cacheState tracks the freshness of a node's cached minimum size.
type cacheState uint8

const (
	stateUncomputed cacheState = iota
	stateComputed
	stateStale // computed, then mutated
)

// Node is an element of the layout tree.
//
// A node exclusively owns its children: a node attached with AddChild
// belongs to that parent until it is removed again. Nodes are not safe for
// concurrent use; callers sizing and mutating one tree from several
// goroutines must serialize access themselves.
type Node struct {
	id       string
	children []*Node
	parent   *Node

	style   Style
	measure Measurer

	computed Rect
	dirty    bool

	minSize  Size
	minCtx   Context
	state    cacheState
	measured bool // last computation took the measurer path

	// subtreeChanged is set when n or a descendant was mutated or
	// recomputed after n last stored its size. A set flag implies the flag
	// of every ancestor up to the nearest measured node is set too.
	subtreeChanged bool
}

// New returns an unstyled node. New nodes start dirty.
func New() *Node {
	return &Node{
		style:   NewStyle(),
		measure: NoMeasure{},
		dirty:   true,
	}
}

// NewWithStyle returns a node using a copy of style.
func NewWithStyle(style Style) *Node {
	n := New()
	n.style = style.Clone()
	return n
}

// ID returns the identifier of the node. Identifiers are informational and
// do not affect sizing.
func (n *Node) ID() string { return n.id }

// SetID sets the identifier of the node.
func (n *Node) SetID(id string) *Node {
	n.id = id
	return n
}

// =============================================================================
// Tree
// =============================================================================

// AddChild appends children in order. Nil children, nodes that already
// belong to a parent, and n or any of its ancestors are ignored, so the tree
// never contains a cycle.
func (n *Node) AddChild(children ...*Node) *Node {
	for _, c := range children {
		if c == nil || c.parent != nil || n.hasAncestor(c) {
			continue
		}
		c.parent = n
		n.children = append(n.children, c)
		n.changed()
	}
	return n
}

// hasAncestor reports whether a is n or one of n's ancestors.
func (n *Node) hasAncestor(a *Node) bool {
	for p := n; p != nil; p = p.parent {
		if p == a {
			return true
		}
	}
	return false
}

// RemoveChild detaches the child at index i and reports whether it existed.
// An out-of-range index is a no-op. Slices returned by Children before the
// call keep their contents.
func (n *Node) RemoveChild(i int) bool {
	if i < 0 || i >= len(n.children) {
		return false
	}
	n.children[i].parent = nil
	n.children = slices.Delete(slices.Clone(n.children), i, i+1)
	n.changed()
	return true
}

// Child returns the child at index i.
func (n *Node) Child(i int) (*Node, bool) {
	if i < 0 || i >= len(n.children) {
		return nil, false
	}
	return n.children[i], true
}

// Children returns the children in declaration order. The slice must not be
// modified.
func (n *Node) Children() []*Node { return n.children }

// Len returns the number of children.
func (n *Node) Len() int { return len(n.children) }

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the visited node.
func (n *Node) Walk(fn func(n *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.children {
		c.walk(fn, depth+1)
	}
}

// =============================================================================
// Mutation
// =============================================================================

// Style returns the node's style for in-place edits. Call Touch after
// editing it so that cached sizes are recomputed.
func (n *Node) Style() *Style { return &n.style }

// Touch records an edit made through Style.
func (n *Node) Touch() *Node { return n.changed() }

// SetStyle replaces the node's style with a copy of s.
func (n *Node) SetStyle(s Style) *Node {
	n.style = s.Clone()
	n.changed()
	return n
}

// SetMeasure installs m as the node's intrinsic-size provider. A nil m
// restores NoMeasure.
func (n *Node) SetMeasure(m Measurer) *Node {
	if m == nil {
		m = NoMeasure{}
	}
	n.measure = m
	n.changed()
	return n
}

// MarkDirty flags the node's computed rectangle as stale, and that of every
// descendant when deep is set.
func (n *Node) MarkDirty(deep bool) *Node {
	n.changed()
	if deep {
		for _, c := range n.children {
			c.MarkDirty(true)
		}
	}
	return n
}

// IsDirty reports whether the computed rectangle needs recomputation.
func (n *Node) IsDirty() bool { return n.dirty }

func (n *Node) Width(v Scalar) *Node     { n.style.SetWidth(v); return n.changed() }
func (n *Node) Height(v Scalar) *Node    { n.style.SetHeight(v); return n.changed() }
func (n *Node) MinWidth(v Scalar) *Node  { n.style.SetMinWidth(v); return n.changed() }
func (n *Node) MaxWidth(v Scalar) *Node  { n.style.SetMaxWidth(v); return n.changed() }
func (n *Node) MinHeight(v Scalar) *Node { n.style.SetMinHeight(v); return n.changed() }
func (n *Node) MaxHeight(v Scalar) *Node { n.style.SetMaxHeight(v); return n.changed() }

func (n *Node) Padding(v FixedScalar) *Node { n.style.SetPadding(v); return n.changed() }
func (n *Node) Gap(v FixedScalar) *Node     { n.style.SetGap(v); return n.changed() }

func (n *Node) Align(a Align) *Node  { n.style.SetAlign(a); return n.changed() }
func (n *Node) Anchor(a Align) *Node { n.style.SetAnchor(a); return n.changed() }

func (n *Node) Direction(d Direction) *Node { n.style.SetDirection(d); return n.changed() }

// changed records a mutation: the rectangle is dirty and a cached minimum
// size is stale, as are those of the ancestors.
func (n *Node) changed() *Node {
	n.dirty = true
	if n.state == stateComputed {
		n.state = stateStale
	}
	n.subtreeChanged = true
	n.parent.propagate()
	return n
}

// propagate flags n and its ancestors, stopping at the first ancestor that
// is already flagged.
func (n *Node) propagate() {
	for p := n; p != nil && !p.subtreeChanged; p = p.parent {
		p.subtreeChanged = true
	}
}

// =============================================================================
// Sizing
// =============================================================================

// ComputeSize returns the smallest box n can occupy under ctx and caches it.
//
// Children are sized first (post-order) and folded along n's direction.
// Padding is added on both axes and gaps on the stacking axis. Explicit
// constraints are then applied width first, then height, each in the order
// size, max, min; min therefore wins over a conflicting max.
func (n *Node) ComputeSize(ctx Context) Size {
	if size, ok := n.measure.Measure(ctx); ok {
		n.store(size, ctx, true)
		return size
	}

	childCtx := ctx.ChildContext(n)
	dir := n.style.Direction

	var size Size
	for _, c := range n.children {
		size = size.Add(c.MinimumSize(childCtx), dir)
	}

	pad := n.style.padding() * 2
	size.Width += pad
	size.Height += pad

	gaps := n.style.gap() * FixedScalar(max(len(n.children)-1, 0))
	switch dir {
	case X:
		size.Width += gaps
	case Y:
		size.Height += gaps
	}

	size = n.fill(size, ctx.Desired())
	size = n.constrain(size, ctx)

	n.store(size, ctx, false)
	return size
}

// MinimumSize returns the cached minimum size of n, recomputing it against
// the minimum variant of ctx when the cache is missing, was computed against
// another context, or when n or a descendant changed since.
func (n *Node) MinimumSize(ctx Context) Size {
	ctx = ctx.AsMinimum()
	if n.minCtx == ctx && n.fresh() {
		return n.minSize
	}
	return n.ComputeSize(ctx)
}

// CachedSize returns the last computed minimum size and whether it is
// still valid.
func (n *Node) CachedSize() (Size, bool) {
	return n.minSize, n.fresh()
}

// Measured reports whether the last computation took its size from the
// node's measurer rather than from its children.
func (n *Node) Measured() bool {
	return n.state != stateUncomputed && n.measured
}

// fill grows an extent the node does not size explicitly up to the desired
// extent on its stacking axis. A minimum context desires nothing.
func (n *Node) fill(size, desired Size) Size {
	dir := n.style.Direction
	if dir != Y && n.style.Width == nil && desired.Width > 0 {
		size.Width = max(size.Width, desired.Width)
	}
	if dir != X && n.style.Height == nil && desired.Height > 0 {
		size.Height = max(size.Height, desired.Height)
	}
	return size
}

func (n *Node) constrain(size Size, ctx Context) Size {
	s := &n.style

	if s.Width != nil {
		size.Width = ctx.PixelizeWidth(*s.Width)
	}
	if s.MaxWidth != nil {
		size.Width = min(size.Width, ctx.PixelizeWidth(*s.MaxWidth))
	}
	if s.MinWidth != nil {
		size.Width = max(size.Width, ctx.PixelizeWidth(*s.MinWidth))
	}

	if s.Height != nil {
		size.Height = ctx.PixelizeHeight(*s.Height)
	}
	if s.MaxHeight != nil {
		size.Height = min(size.Height, ctx.PixelizeHeight(*s.MaxHeight))
	}
	if s.MinHeight != nil {
		size.Height = max(size.Height, ctx.PixelizeHeight(*s.MinHeight))
	}

	return size
}

func (n *Node) store(size Size, ctx Context, measured bool) {
	n.minSize = size
	n.minCtx = ctx
	n.state = stateComputed
	n.measured = measured
	n.subtreeChanged = false
	n.parent.propagate()
}

// fresh reports whether the cached size still describes the subtree: n is
// unchanged since it was computed and, unless it was measured, nothing below
// it changed or was recomputed since. The check is O(1); mutations pay for
// it by flagging their ancestors.
func (n *Node) fresh() bool {
	if n.state != stateComputed {
		return false
	}
	return n.measured || !n.subtreeChanged
}

// =============================================================================
// Placement
// =============================================================================

// ComputeLayout recomputes the rectangle of every dirty node in the subtree
// and clears their dirty flags.
//
// Placement is not implemented yet; every rectangle is the zero rectangle.
func (n *Node) ComputeLayout(ctx Context) {
	if n.dirty {
		n.computed = n.computeSelf(ctx)
		n.dirty = false
	}
	childCtx := ctx.ChildContext(n)
	for _, c := range n.children {
		c.ComputeLayout(childCtx)
	}
}

// Computed returns the rectangle produced by the last ComputeLayout.
func (n *Node) Computed() Rect { return n.computed }

func (n *Node) computeSelf(Context) Rect {
	return Rect{}
}
