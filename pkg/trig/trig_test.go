package trig

import (
	"math"
	"testing"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestEval_Untransformed(t *testing.T) {
	tests := []struct {
		kind Kind
		x    float64
		want float64
	}{
		{Sine, 0, 0},
		{Sine, math.Pi / 2, 1},
		{Cosine, 0, 1},
		{Cosine, math.Pi, -1},
		{Tangent, math.Pi / 4, 1},
		{Cotangent, math.Pi / 4, 1},
		{Secant, 0, 1},
		{Cosecant, math.Pi / 2, 1},
	}

	for _, tc := range tests {
		got := New(tc.kind).Eval(tc.x)
		if !almostEqual(got, tc.want, 1e-12) {
			t.Errorf("%v.Eval(%v) = %v, want %v", tc.kind, tc.x, got, tc.want)
		}
	}
}

func TestEval_Transformed(t *testing.T) {
	// y = 2·sin((2π/3)·(x − 1.2)), checked at x = 1.2 (zero crossing) and at
	// the quarter period after it (peak).
	f := New(Sine).Amplify(2).Period(3).PhaseShift(1.2)

	if got := f.Eval(1.2); !almostEqual(got, 0, 1e-12) {
		t.Errorf("Eval(1.2) = %v, want 0", got)
	}
	if got := f.Eval(1.2 + 0.75); !almostEqual(got, 2, 1e-12) {
		t.Errorf("Eval at quarter period = %v, want 2", got)
	}
}

func TestEval_VerticalShift(t *testing.T) {
	f := New(Cosine).VerticalShift(5)
	if got := f.Eval(0); !almostEqual(got, 6, 1e-12) {
		t.Errorf("Eval(0) = %v, want 6", got)
	}
}

func TestEval_NegativeAmplitudeFlips(t *testing.T) {
	f := New(Sine).Amplify(-1)
	if got := f.Eval(math.Pi / 2); !almostEqual(got, -1, 1e-12) {
		t.Errorf("Eval(π/2) = %v, want -1", got)
	}
}

func TestEval_Periodicity(t *testing.T) {
	f := New(Sine).Period(4)
	for _, x := range []float64{0, 0.3, 1.7, 2.9} {
		a, b := f.Eval(x), f.Eval(x+4)
		if !almostEqual(a, b, 1e-12) {
			t.Errorf("Eval(%v) = %v but Eval(%v) = %v; period 4 not honored", x, a, x+4, b)
		}
	}

	// Tangent's natural period is π, so Period(2) means f(x) == f(x+2).
	g := New(Tangent).Period(2)
	if a, b := g.Eval(0.25), g.Eval(2.25); !almostEqual(a, b, 1e-9) {
		t.Errorf("tangent with period 2: Eval(0.25) = %v, Eval(2.25) = %v", a, b)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Sine, "sin"}, {Cosine, "cos"}, {Tangent, "tan"},
		{Cotangent, "cot"}, {Secant, "sec"}, {Cosecant, "csc"},
	}
	for _, tc := range tests {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tc.kind, got, tc.want)
		}
	}
}
