package layout

import "testing"

var minimum1000 = NewContext(1000, 1000).AsMinimum()

func TestComputeSizeAxisCombination(t *testing.T) {
	tests := []struct {
		name string
		dir  Direction
		want Size
	}{
		{name: "x", dir: X, want: NewSize(70, 40)},
		{name: "y", dir: Y, want: NewSize(40, 70)},
		{name: "z", dir: Z, want: NewSize(40, 40)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := New().Direction(tt.dir).AddChild(leaf(30, 40), leaf(40, 30))
			if got := n.ComputeSize(minimum1000); got != tt.want {
				t.Errorf("ComputeSize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeSizeGapOnAxisOnly(t *testing.T) {
	tests := []struct {
		name     string
		dir      Direction
		children int
		want     Size
	}{
		{name: "y adds to height", dir: Y, children: 3, want: NewSize(10, 50)},
		{name: "x adds to width", dir: X, children: 3, want: NewSize(50, 10)},
		{name: "z adds nothing", dir: Z, children: 3, want: NewSize(10, 10)},
		{name: "single child has no gap", dir: Y, children: 1, want: NewSize(10, 10)},
		{name: "no children has no gap", dir: Y, children: 0, want: NewSize(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := New().Direction(tt.dir).Gap(10)
			for i := 0; i < tt.children; i++ {
				n.AddChild(leaf(10, 10))
			}
			if got := n.ComputeSize(minimum1000); got != tt.want {
				t.Errorf("ComputeSize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeSizePaddingBothAxes(t *testing.T) {
	for _, d := range []Direction{X, Y, Z} {
		t.Run(d.String(), func(t *testing.T) {
			n := New().Direction(d).Padding(5).AddChild(leaf(20, 20))
			want := NewSize(30, 30)
			if got := n.ComputeSize(minimum1000); got != want {
				t.Errorf("ComputeSize() = %v, want %v", got, want)
			}
		})
	}
}

func TestComputeSizeConstraints(t *testing.T) {
	content := func() *Node { return New().AddChild(leaf(80, 60)) }

	tests := []struct {
		name string
		node *Node
		want Size
	}{
		{
			name: "explicit width replaces content",
			node: content().Width(Px(100)),
			want: NewSize(100, 60),
		},
		{
			name: "explicit width can shrink content",
			node: content().Width(Px(10)),
			want: NewSize(10, 60),
		},
		{
			name: "max clamps down",
			node: content().MaxWidth(Px(50)).MaxHeight(Px(40)),
			want: NewSize(50, 40),
		},
		{
			name: "min clamps up",
			node: content().MinWidth(Px(90)).MinHeight(Px(70)),
			want: NewSize(90, 70),
		},
		{
			name: "min dominates max",
			node: content().MinWidth(Px(150)).MaxWidth(Px(100)),
			want: NewSize(150, 60),
		},
		{
			name: "max applies after explicit size",
			node: content().Height(Px(300)).MaxHeight(Px(120)),
			want: NewSize(80, 120),
		},
		{
			name: "percent constraints use ancestor",
			node: content().MaxWidth(Percent(5)),
			want: NewSize(50, 60),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.ComputeSize(minimum1000); got != tt.want {
				t.Errorf("ComputeSize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPercentResolvesAgainstNearestSizedAncestor(t *testing.T) {
	descendant := New().Width(Percent(50))
	root := New().AddChild(
		New().Width(Px(200)).AddChild(
			New().AddChild(descendant),
		),
	)

	root.ComputeSize(minimum1000)

	got, ok := descendant.CachedSize()
	if !ok {
		t.Fatal("descendant has no cached size after sizing the root")
	}
	if got.Width != 100 {
		t.Errorf("descendant width = %d, want 100 (not 500)", got.Width)
	}
}

func TestViewportUnitsIgnoreAncestors(t *testing.T) {
	leaf := New().Height(Vw(10))
	root := New().Height(Px(300)).AddChild(New().Height(Px(40)).AddChild(leaf))

	root.ComputeSize(minimum1000)

	got, _ := leaf.CachedSize()
	if got.Height != 100 {
		t.Errorf("leaf height = %d, want 100", got.Height)
	}
}

func TestFixtures(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		ctx  Context
		want Size
	}{
		{name: "single node", node: singleNodeFixture(), ctx: minimum1000, want: NewSize(100, 100)},
		{name: "vertical stack", node: verticalStackFixture(), ctx: minimum1000, want: NewSize(200, 350)},
		{name: "horizontal stack", node: horizontalStackFixture(), ctx: minimum1000, want: NewSize(300, 200)},
		{name: "nested minimum", node: nestedLayoutFixture(), ctx: minimum1000, want: NewSize(200, 200)},
		{name: "stretch natural", node: verticalStretchLayoutFixture(), ctx: NewContext(1000, 1000), want: NewSize(200, 1000)},
		{name: "stretch minimum", node: verticalStretchLayoutFixture(), ctx: minimum1000, want: NewSize(200, 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.ComputeSize(tt.ctx); got != tt.want {
				t.Errorf("ComputeSize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNaturalFillFollowsDirection(t *testing.T) {
	ctx := NewContext(1000, 800)

	tests := []struct {
		name string
		node *Node
		want Size
	}{
		{name: "y fills height", node: New().AddChild(leaf(10, 10)), want: NewSize(10, 800)},
		{name: "x fills width", node: New().Direction(X).AddChild(leaf(10, 10)), want: NewSize(1000, 10)},
		{name: "z fills both", node: New().Direction(Z).AddChild(leaf(10, 10)), want: NewSize(1000, 800)},
		{name: "explicit height wins", node: New().Height(Px(20)).AddChild(leaf(10, 10)), want: NewSize(10, 20)},
		{name: "max clamps fill", node: New().MaxHeight(Px(300)), want: NewSize(0, 300)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.ComputeSize(ctx); got != tt.want {
				t.Errorf("ComputeSize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeSizeIdempotent(t *testing.T) {
	root := nestedLayoutFixture()

	first := root.ComputeSize(minimum1000)
	second := root.ComputeSize(minimum1000)
	if first != second {
		t.Errorf("second ComputeSize() = %v, want %v", second, first)
	}

	cached := root.MinimumSize(NewContext(1000, 1000))
	if cached != first {
		t.Errorf("MinimumSize() = %v, want %v", cached, first)
	}
}

func TestMeasurerOverridesChildren(t *testing.T) {
	child := &countingMeasurer{size: NewSize(500, 500)}
	n := New().
		Padding(10).
		SetMeasure(FixedMeasure(NewSize(7, 9))).
		AddChild(New().SetMeasure(child))

	if got := n.ComputeSize(minimum1000); got != NewSize(7, 9) {
		t.Errorf("ComputeSize() = %v, want 7x9", got)
	}
	if child.calls != 0 {
		t.Errorf("child measured %d times, want 0", child.calls)
	}
}

func TestMeasurerReceivesContext(t *testing.T) {
	n := New().SetMeasure(FillMeasure(NewSize(5, 5)))

	if got := n.ComputeSize(NewContext(300, 200)); got != NewSize(300, 200) {
		t.Errorf("natural ComputeSize() = %v, want 300x200", got)
	}
	if got := n.ComputeSize(NewContext(300, 200).AsMinimum()); got != NewSize(5, 5) {
		t.Errorf("minimum ComputeSize() = %v, want 5x5", got)
	}
}

func TestMinimumSizeCachesZero(t *testing.T) {
	m := &countingMeasurer{}
	n := New().SetMeasure(m)

	n.MinimumSize(minimum1000)
	n.MinimumSize(minimum1000)

	if m.calls != 1 {
		t.Errorf("measured %d times, want 1", m.calls)
	}
}

func TestMinimumSizeVisitsEachNodeOnce(t *testing.T) {
	m := &countingMeasurer{size: NewSize(10, 10)}
	shared := New().SetMeasure(m)
	root := New().AddChild(New().AddChild(New().AddChild(shared)))

	root.ComputeSize(minimum1000)
	root.ComputeSize(minimum1000)

	if m.calls != 1 {
		t.Errorf("measured %d times, want 1", m.calls)
	}
}

func TestMinimumSizeInvalidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(root *Node)
		want   Size
	}{
		{
			name: "style change on root",
			mutate: func(root *Node) {
				root.Padding(10)
			},
			want: NewSize(70, 70),
		},
		{
			name: "style change on grandchild",
			mutate: func(root *Node) {
				c, _ := root.Child(0)
				g, _ := c.Child(0)
				g.Width(Px(90))
			},
			want: NewSize(90, 50),
		},
		{
			name: "child added",
			mutate: func(root *Node) {
				c, _ := root.Child(0)
				c.AddChild(leaf(10, 10))
			},
			want: NewSize(50, 60),
		},
		{
			name: "child removed",
			mutate: func(root *Node) {
				c, _ := root.Child(0)
				c.RemoveChild(0)
			},
			want: NewSize(0, 0),
		},
		{
			name: "measurer replaced",
			mutate: func(root *Node) {
				c, _ := root.Child(0)
				g, _ := c.Child(0)
				g.SetMeasure(FixedMeasure(NewSize(1, 2)))
			},
			want: NewSize(1, 2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := New().AddChild(New().AddChild(New().Width(Px(50)).Height(Px(50))))
			if got := root.MinimumSize(minimum1000); got != NewSize(50, 50) {
				t.Fatalf("initial MinimumSize() = %v, want 50x50", got)
			}

			tt.mutate(root)

			if got := root.MinimumSize(minimum1000); got != tt.want {
				t.Errorf("MinimumSize() after mutation = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMinimumSizeSeesDescendantRecomputedElsewhere(t *testing.T) {
	g := leaf(50, 50)
	c := New().AddChild(g)
	root := New().AddChild(c)
	root.MinimumSize(minimum1000)

	g.SetMeasure(FixedMeasure(NewSize(70, 70)))
	c.MinimumSize(minimum1000) // refreshes c, not root

	if got := root.MinimumSize(minimum1000); got != NewSize(70, 70) {
		t.Errorf("MinimumSize() = %v, want 70x70", got)
	}
}

func TestMinimumSizeDeepChain(t *testing.T) {
	const depth = 5000
	leafNode := leaf(10, 10)
	nodes := []*Node{leafNode}
	for range depth {
		nodes = append(nodes, New().AddChild(nodes[len(nodes)-1]))
	}
	root := nodes[len(nodes)-1]
	sibling := leaf(5, 5)
	root.AddChild(sibling)

	if got := root.MinimumSize(minimum1000); got != NewSize(10, 15) {
		t.Fatalf("MinimumSize() = %v, want 10x15", got)
	}

	leafNode.SetMeasure(FixedMeasure(NewSize(20, 20)))
	for i, n := range nodes[1:] {
		if _, ok := n.CachedSize(); ok {
			t.Fatalf("ancestor %d still fresh after leaf change", i+1)
		}
	}
	if _, ok := sibling.CachedSize(); !ok {
		t.Error("sibling should stay fresh")
	}

	if got := root.MinimumSize(minimum1000); got != NewSize(20, 25) {
		t.Errorf("MinimumSize() after leaf change = %v, want 20x25", got)
	}
	for i, n := range nodes {
		if _, ok := n.CachedSize(); !ok {
			t.Fatalf("node %d not fresh after recompute", i)
		}
	}
}

func TestMinimumSizeRecomputesForNewContext(t *testing.T) {
	n := New().Width(Percent(50))

	if got := n.MinimumSize(NewContext(1000, 1000)); got.Width != 500 {
		t.Errorf("width at 1000 = %d, want 500", got.Width)
	}
	if got := n.MinimumSize(NewContext(400, 1000)); got.Width != 200 {
		t.Errorf("width at 400 = %d, want 200", got.Width)
	}
}

func TestTreeOperations(t *testing.T) {
	a, b := New().SetID("a"), New().SetID("b")
	root := New().AddChild(a, b)

	if root.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", root.Len())
	}
	if c, ok := root.Child(1); !ok || c.ID() != "b" {
		t.Errorf("Child(1) = %v, %v; want b", c, ok)
	}
	if _, ok := root.Child(2); ok {
		t.Error("Child(2) ok = true, want false")
	}
	if _, ok := root.Child(-1); ok {
		t.Error("Child(-1) ok = true, want false")
	}
	if root.RemoveChild(5) {
		t.Error("RemoveChild(5) = true, want false")
	}
	if root.Len() != 2 {
		t.Errorf("Len() after out-of-range remove = %d, want 2", root.Len())
	}

	// a already belongs to root.
	other := New().AddChild(a)
	if other.Len() != 0 {
		t.Errorf("AddChild accepted an attached node")
	}

	if !root.RemoveChild(0) {
		t.Fatal("RemoveChild(0) = false, want true")
	}
	other.AddChild(a)
	if other.Len() != 1 {
		t.Errorf("AddChild rejected a detached node")
	}
	if c, _ := root.Child(0); c.ID() != "b" {
		t.Errorf("Child(0) after remove = %q, want b", c.ID())
	}
}

func TestAddChildRejectsCycles(t *testing.T) {
	a, b, c := New().SetID("a"), New().SetID("b"), New().SetID("c")
	a.AddChild(b)
	b.AddChild(c)

	tests := map[string]struct {
		parent, child *Node
	}{
		"self":        {a, a},
		"parent":      {b, a},
		"grandparent": {c, a},
		"direct root": {c, b},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			before := tc.parent.Len()
			tc.parent.AddChild(tc.child)
			if tc.parent.Len() != before {
				t.Fatalf("AddChild linked %s under its descendant %s", tc.child.ID(), tc.parent.ID())
			}
		})
	}

	visits := 0
	a.Walk(func(*Node, int) bool {
		visits++
		return visits < 10
	})
	if visits != 3 {
		t.Errorf("Walk visited %d nodes, want 3", visits)
	}
	if got := a.MinimumSize(minimum1000); got != (Size{}) {
		t.Errorf("MinimumSize() = %v, want zero", got)
	}
}

func TestRemoveChildKeepsEarlierSlices(t *testing.T) {
	x, y := New().SetID("x"), New().SetID("y")
	root := New().AddChild(x, y)

	before := root.Children()
	root.RemoveChild(0)

	if before[0] != x || before[1] != y {
		t.Errorf("earlier Children() = [%s %s], want [x y]", before[0].ID(), before[1].ID())
	}
	if root.Len() != 1 || root.Children()[0] != y {
		t.Errorf("Children() after remove = %v, want [y]", root.Children())
	}
	if New().AddChild(x).Len() != 1 {
		t.Error("removed child should be attachable again")
	}
}

func TestWalk(t *testing.T) {
	root := New().SetID("root").AddChild(
		New().SetID("a").AddChild(New().SetID("a1")),
		New().SetID("b"),
	)

	var ids []string
	var depths []int
	root.Walk(func(n *Node, depth int) bool {
		ids = append(ids, n.ID())
		depths = append(depths, depth)
		return n.ID() != "a"
	})

	want := []string{"root", "a", "b"}
	if len(ids) != len(want) {
		t.Fatalf("visited %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("visit %d = %q, want %q", i, ids[i], want[i])
		}
	}
	if depths[2] != 1 {
		t.Errorf("depth of b = %d, want 1", depths[2])
	}
}

func TestDirtyTracking(t *testing.T) {
	child := New()
	root := New().AddChild(child)

	if !root.IsDirty() || !child.IsDirty() {
		t.Fatal("new nodes should start dirty")
	}

	root.ComputeLayout(NewContext(100, 100))
	if root.IsDirty() || child.IsDirty() {
		t.Fatal("ComputeLayout() should clear dirty flags")
	}
	if root.Computed() != (Rect{}) {
		t.Errorf("Computed() = %v, want zero rect", root.Computed())
	}

	root.MarkDirty(false)
	if !root.IsDirty() || child.IsDirty() {
		t.Error("MarkDirty(false) should only mark the node itself")
	}

	root.ComputeLayout(NewContext(100, 100))
	root.MarkDirty(true)
	if !root.IsDirty() || !child.IsDirty() {
		t.Error("MarkDirty(true) should mark descendants")
	}

	root.ComputeLayout(NewContext(100, 100))
	child.Gap(3)
	if !child.IsDirty() || root.IsDirty() {
		t.Error("style change should mark only the mutated node dirty")
	}
}

func TestStyleIsCopied(t *testing.T) {
	s := NewStyle()
	s.SetWidth(Px(10))
	n := NewWithStyle(s)

	s.SetWidth(Px(99))
	got := n.Style()
	if got.Width == nil || got.Width.Amount != 10 {
		t.Errorf("node width = %v, want 10px", got.Width)
	}
}

func TestStyleEditThenTouch(t *testing.T) {
	root := New()
	child := New().Width(Px(10)).Height(Px(10))
	root.AddChild(child)
	ctx := NewContext(100, 100)

	if got := root.MinimumSize(ctx); got != NewSize(10, 10) {
		t.Fatalf("MinimumSize = %v, want 10x10", got)
	}

	child.Style().SetHeight(Px(30)).SetPadding(2)
	child.Touch()
	if !child.IsDirty() {
		t.Error("Touch should mark the node dirty")
	}
	if got := root.MinimumSize(ctx); got != NewSize(10, 30) {
		t.Errorf("after Touch MinimumSize = %v, want 10x30", got)
	}
}

func TestMeasured(t *testing.T) {
	measured := leaf(1, 1)
	plain := New()

	if measured.Measured() {
		t.Error("Measured() = true before sizing")
	}
	New().AddChild(measured, plain).ComputeSize(minimum1000)

	if !measured.Measured() {
		t.Error("Measured() = false for a measured leaf")
	}
	if plain.Measured() {
		t.Error("Measured() = true for a plain node")
	}
}
