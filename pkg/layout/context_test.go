package layout

import "testing"

func TestNewContext(t *testing.T) {
	ctx := NewContext(800, 600)

	want := NewSize(800, 600)
	if ctx.Root() != want {
		t.Errorf("Root() = %v, want %v", ctx.Root(), want)
	}
	if ctx.SizedAncestor() != want {
		t.Errorf("SizedAncestor() = %v, want %v", ctx.SizedAncestor(), want)
	}
	if ctx.Desired() != want {
		t.Errorf("Desired() = %v, want %v", ctx.Desired(), want)
	}
	if ctx.IsMinimum() {
		t.Error("IsMinimum() = true for a root context")
	}
}

func TestContextAsMinimum(t *testing.T) {
	ctx := NewContext(800, 600)
	m := ctx.AsMinimum()

	if !m.Desired().IsZero() {
		t.Errorf("Desired() = %v, want 0x0", m.Desired())
	}
	if m.Root() != ctx.Root() || m.SizedAncestor() != ctx.SizedAncestor() {
		t.Errorf("AsMinimum() changed root or ancestor: %v", m)
	}
	if ctx.Desired().IsZero() {
		t.Error("AsMinimum() mutated the receiver")
	}
}

func TestPixelize(t *testing.T) {
	// Root 1000x500 with a sized ancestor of 200x100.
	ctx := NewContext(1000, 500).ChildContext(New().Width(Px(200)).Height(Px(100)))

	tests := []struct {
		name   string
		scalar Scalar
		width  FixedScalar
		height FixedScalar
	}{
		{name: "px passes through", scalar: Px(42), width: 42, height: 42},
		{name: "px truncates", scalar: Px(42.9), width: 42, height: 42},
		{name: "percent uses ancestor axis", scalar: Percent(50), width: 100, height: 50},
		{name: "vw uses root width on both axes", scalar: Vw(10), width: 100, height: 100},
		{name: "vh uses root height on both axes", scalar: Vh(10), width: 50, height: 50},
		{name: "negative percent is not clamped", scalar: Percent(-10), width: -20, height: -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ctx.PixelizeWidth(tt.scalar); got != tt.width {
				t.Errorf("PixelizeWidth(%v) = %d, want %d", tt.scalar, got, tt.width)
			}
			if got := ctx.PixelizeHeight(tt.scalar); got != tt.height {
				t.Errorf("PixelizeHeight(%v) = %d, want %d", tt.scalar, got, tt.height)
			}
		})
	}
}

func TestChildContext(t *testing.T) {
	root := NewContext(1000, 1000)

	tests := map[string]struct {
		node         *Node
		wantAncestor Size
	}{
		"unsized inherits": {
			node:         New(),
			wantAncestor: NewSize(1000, 1000),
		},
		"width only": {
			node:         New().Width(Px(200)),
			wantAncestor: NewSize(200, 1000),
		},
		"height resolved against parent": {
			node:         New().Height(Percent(25)),
			wantAncestor: NewSize(1000, 250),
		},
		"viewport units": {
			node:         New().Width(Vh(10)).Height(Vw(5)),
			wantAncestor: NewSize(100, 50),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			child := root.ChildContext(tt.node)
			if got := child.SizedAncestor(); got != tt.wantAncestor {
				t.Errorf("SizedAncestor() = %v, want %v", got, tt.wantAncestor)
			}
			if child.Root() != root.Root() {
				t.Errorf("Root() = %v, want %v", child.Root(), root.Root())
			}
			if got := child.Desired(); got != tt.node.Computed().Size() {
				t.Errorf("Desired() = %v, want computed %v", got, tt.node.Computed().Size())
			}
		})
	}
}

func TestChildContextSkipsUnsizedAncestors(t *testing.T) {
	sized := New().Width(Px(200))
	unsized := New()

	ctx := NewContext(1000, 1000).ChildContext(sized).ChildContext(unsized)
	if got := ctx.PixelizeWidth(Percent(50)); got != 100 {
		t.Errorf("PixelizeWidth(50%%) = %d, want 100", got)
	}
}
