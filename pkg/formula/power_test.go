package formula

import (
	"errors"
	"math"
	"testing"
)

// almostEqual returns true if a and b are within epsilon of each other.
func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestHorsepowerFromTorque(t *testing.T) {
	tests := []struct {
		name   string
		torque float64
		rpm    float64
		want   float64
	}{
		{"crossover point — hp equals torque at 5250", 300, 5250, 300},
		{"typical cruise", 250, 2100, 100},
		{"rpm zero yields zero hp, not an error", 400, 0, 0},
		{"zero torque", 0, 3000, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := HorsepowerFromTorque(tc.torque, tc.rpm)
			if err != nil {
				t.Fatalf("HorsepowerFromTorque(%v, %v) error: %v", tc.torque, tc.rpm, err)
			}
			if !almostEqual(got, tc.want, 1e-9) {
				t.Errorf("HorsepowerFromTorque(%v, %v) = %v, want %v", tc.torque, tc.rpm, got, tc.want)
			}
		})
	}
}

func TestHorsepowerFromTorque_NonFinite(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := HorsepowerFromTorque(bad, 3000); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("HorsepowerFromTorque(%v, 3000) error = %v, want ErrInvalidArgument", bad, err)
		}
		if _, err := HorsepowerFromTorque(300, bad); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("HorsepowerFromTorque(300, %v) error = %v, want ErrInvalidArgument", bad, err)
		}
	}
}

func TestTorqueFromHorsepower(t *testing.T) {
	got, err := TorqueFromHorsepower(100, 2100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got, 250, 1e-9) {
		t.Errorf("TorqueFromHorsepower(100, 2100) = %v, want 250", got)
	}
}

func TestTorqueFromHorsepower_ZeroRPM(t *testing.T) {
	for _, hp := range []float64{0, 1, 450} {
		if _, err := TorqueFromHorsepower(hp, 0); !errors.Is(err, ErrDivisionByZero) {
			t.Errorf("TorqueFromHorsepower(%v, 0) error = %v, want ErrDivisionByZero", hp, err)
		}
	}
}

func TestTorqueHorsepowerRoundTrip(t *testing.T) {
	cases := []struct{ torque, rpm float64 }{
		{300, 5250},
		{412.5, 1800},
		{90, 6500},
		{0.125, 750},
	}
	for _, tc := range cases {
		hp, err := HorsepowerFromTorque(tc.torque, tc.rpm)
		if err != nil {
			t.Fatalf("HorsepowerFromTorque(%v, %v): %v", tc.torque, tc.rpm, err)
		}
		back, err := TorqueFromHorsepower(hp, tc.rpm)
		if err != nil {
			t.Fatalf("TorqueFromHorsepower(%v, %v): %v", hp, tc.rpm, err)
		}
		if !almostEqual(back, tc.torque, 1e-9) {
			t.Errorf("round trip at rpm %v: got %v, want %v", tc.rpm, back, tc.torque)
		}
	}
}

func TestHorsepowerFromKilowatts(t *testing.T) {
	got, err := HorsepowerFromKilowatts(100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got, 134.102, 0.001) {
		t.Errorf("HorsepowerFromKilowatts(100) = %v, want ≈134.102", got)
	}
	// The rounded 1.333 figure from older reference tables would give 133.3;
	// the precise constant deliberately diverges from it by ~0.6%.
	if almostEqual(got, 133.3, 0.01) {
		t.Errorf("HorsepowerFromKilowatts(100) = %v, matches the 1.333 approximation it should not use", got)
	}
}

func TestKilowattsFromHorsepower(t *testing.T) {
	got, err := KilowattsFromHorsepower(100, 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(got, 74.6, 1e-9) {
		t.Errorf("KilowattsFromHorsepower(100, 1.0) = %v, want 74.6", got)
	}

	// Lower efficiency needs proportionally more input power.
	lossy, err := KilowattsFromHorsepower(100, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(lossy, 149.2, 1e-9) {
		t.Errorf("KilowattsFromHorsepower(100, 0.5) = %v, want 149.2", lossy)
	}
}

func TestKilowattsFromHorsepower_BadEfficiency(t *testing.T) {
	for _, eff := range []float64{0, -0.1, -5, math.NaN()} {
		if _, err := KilowattsFromHorsepower(100, eff); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("KilowattsFromHorsepower(100, %v) error = %v, want ErrInvalidArgument", eff, err)
		}
	}
}

func TestKilowattHorsepowerRoundTrip(t *testing.T) {
	// The two directions use different constants (0.746 vs 1/0.7457), so the
	// round trip is approximate by design: the residual is ≈0.04%, well under
	// the ~0.6% error the 1.333 shortcut would introduce.
	for _, hp := range []float64{1, 55, 300, 1000} {
		kw, err := KilowattsFromHorsepower(hp, 1.0)
		if err != nil {
			t.Fatalf("KilowattsFromHorsepower(%v, 1.0): %v", hp, err)
		}
		back, err := HorsepowerFromKilowatts(kw)
		if err != nil {
			t.Fatalf("HorsepowerFromKilowatts(%v): %v", kw, err)
		}
		if !almostEqual(back/hp, 1.0, 0.001) {
			t.Errorf("kW round trip of %v hp came back as %v (ratio %v)", hp, back, back/hp)
		}
	}
}
