package formula

import (
	"errors"
	"testing"
)

func TestSlope(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 float64
		want           float64
	}{
		{"unit slope", 0, 0, 10, 10, 1},
		{"delta y 4 over delta x 2", 1, 2, 3, 6, 2},
		{"negative slope", 0, 10, 5, 0, -2},
		{"horizontal line", -3, 7, 9, 7, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Slope(tc.x1, tc.y1, tc.x2, tc.y2)
			if err != nil {
				t.Fatalf("Slope(%v, %v, %v, %v) error: %v", tc.x1, tc.y1, tc.x2, tc.y2, err)
			}
			if got != tc.want {
				t.Errorf("Slope(%v, %v, %v, %v) = %v, want %v", tc.x1, tc.y1, tc.x2, tc.y2, got, tc.want)
			}
		})
	}
}

func TestSlope_Vertical(t *testing.T) {
	if _, err := Slope(5, 2, 5, 9); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Slope(5, 2, 5, 9) error = %v, want ErrDivisionByZero", err)
	}
}

func TestSegmentDelta(t *testing.T) {
	s := Segment{Start: Point{0, 0}, End: Point{10, 10}}
	d := s.Delta()
	if d.X != 10 || d.Y != 10 {
		t.Errorf("Delta() = %+v, want {10 10}", d)
	}
	if m, err := s.Slope(); err != nil || m != 1 {
		t.Errorf("Slope() = %v, %v, want 1, nil", m, err)
	}
}

func TestSampleInterval(t *testing.T) {
	s := Segment{Start: Point{0, 0}, End: Point{10, 20}}

	points, err := s.SampleInterval(2.5)
	if err != nil {
		t.Fatalf("SampleInterval(2.5) error: %v", err)
	}
	want := []Point{{2.5, 5}, {5, 10}, {7.5, 15}}
	if len(points) != len(want) {
		t.Fatalf("SampleInterval(2.5) returned %d points, want %d: %v", len(points), len(want), points)
	}
	for i, p := range points {
		if !almostEqual(p.X, want[i].X, 1e-9) || !almostEqual(p.Y, want[i].Y, 1e-9) {
			t.Errorf("points[%d] = %+v, want %+v", i, p, want[i])
		}
	}
}

func TestSampleInterval_Descending(t *testing.T) {
	s := Segment{Start: Point{10, 20}, End: Point{0, 0}}
	points, err := s.SampleInterval(4)
	if err != nil {
		t.Fatalf("SampleInterval(4) error: %v", err)
	}
	want := []Point{{6, 12}, {2, 4}}
	if len(points) != len(want) {
		t.Fatalf("got %d points, want %d: %v", len(points), len(want), points)
	}
	for i, p := range points {
		if !almostEqual(p.X, want[i].X, 1e-9) || !almostEqual(p.Y, want[i].Y, 1e-9) {
			t.Errorf("points[%d] = %+v, want %+v", i, p, want[i])
		}
	}
}

func TestSampleInterval_Errors(t *testing.T) {
	s := Segment{Start: Point{0, 0}, End: Point{10, 20}}
	if _, err := s.SampleInterval(0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("interval 0: error = %v, want ErrInvalidArgument", err)
	}
	if _, err := s.SampleInterval(-1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("interval -1: error = %v, want ErrInvalidArgument", err)
	}

	vertical := Segment{Start: Point{5, 0}, End: Point{5, 10}}
	if _, err := vertical.SampleInterval(1); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("vertical segment: error = %v, want ErrDivisionByZero", err)
	}
}

func TestSampleInterval_StepLargerThanSegment(t *testing.T) {
	s := Segment{Start: Point{0, 0}, End: Point{3, 3}}
	points, err := s.SampleInterval(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 0 {
		t.Errorf("expected no interior points, got %v", points)
	}
}
