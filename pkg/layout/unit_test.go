package layout

import "testing"

func TestScalarConstructors(t *testing.T) {
	tests := []struct {
		name   string
		scalar Scalar
		unit   Unit
		amount float64
		str    string
	}{
		{name: "px", scalar: Px(100), unit: UnitPx, amount: 100, str: "100px"},
		{name: "percent", scalar: Percent(50), unit: UnitPercent, amount: 50, str: "50%"},
		{name: "vw", scalar: Vw(10), unit: UnitVw, amount: 10, str: "10vw"},
		{name: "vh", scalar: Vh(12.5), unit: UnitVh, amount: 12.5, str: "12.5vh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.scalar.Unit != tt.unit {
				t.Errorf("Unit = %v, want %v", tt.scalar.Unit, tt.unit)
			}
			if tt.scalar.Amount != tt.amount {
				t.Errorf("Amount = %v, want %v", tt.scalar.Amount, tt.amount)
			}
			if got := tt.scalar.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
		})
	}
}

func TestScalarOfTruncates(t *testing.T) {
	tests := []struct {
		name   string
		scalar Scalar
		base   FixedScalar
		want   FixedScalar
	}{
		{name: "exact", scalar: Percent(50), base: 200, want: 100},
		{name: "fraction truncated", scalar: Percent(33), base: 100, want: 33},
		{name: "rounds toward zero", scalar: Percent(1), base: 150, want: 1},
		{name: "29 percent stays exact", scalar: Percent(29), base: 100, want: 29},
		{name: "negative base", scalar: Percent(50), base: -101, want: -50},
		{name: "zero base", scalar: Percent(80), base: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.scalar.of(tt.base); got != tt.want {
				t.Errorf("of(%d) = %d, want %d", tt.base, got, tt.want)
			}
		})
	}
}
