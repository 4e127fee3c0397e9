package layout

func singleNodeFixture() *Node {
	return New().Width(Px(100)).Height(Percent(10))
}

func verticalStackFixture() *Node {
	return New().Width(Px(200)).AddChild(
		New().Height(Px(50)),
		New().Height(Percent(25)),
		New().Height(Vw(5)),
	)
}

func horizontalStackFixture() *Node {
	return New().Height(Px(200)).Direction(X).AddChild(
		New().Width(Percent(10)),
		New().Width(Px(100)),
		New().Width(Vw(10)),
	)
}

// nestedLayoutFixture is a vertical stack of a 150 wide stack (50 + 50 high)
// and a 200 wide block 10vh high.
func nestedLayoutFixture() *Node {
	inner := New().Width(Px(150)).AddChild(
		New().Width(Px(50)).Height(Px(50)),
		New().Width(Percent(20)).Height(Vw(5)),
	)
	outer := New().Width(Px(200)).Height(Vh(10))
	return New().AddChild(inner, outer)
}

// verticalStretchLayoutFixture is nestedLayoutFixture without a height on
// the second block.
func verticalStretchLayoutFixture() *Node {
	inner := New().Width(Px(150)).AddChild(
		New().Width(Px(50)).Height(Px(50)),
		New().Width(Percent(20)).Height(Vw(5)),
	)
	outer := New().Width(Px(200))
	return New().AddChild(inner, outer)
}

// countingMeasurer reports a fixed size and counts invocations.
type countingMeasurer struct {
	size  Size
	calls int
}

func (m *countingMeasurer) Measure(Context) (Size, bool) {
	m.calls++
	return m.size, true
}

func leaf(w, h FixedScalar) *Node {
	return New().SetMeasure(FixedMeasure(NewSize(w, h)))
}
