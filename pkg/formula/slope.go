package formula

import "fmt"

// Point is a point in the plane.
type Point struct {
	X float64
	Y float64
}

// Segment is a directed line segment between two points, used to model a
// piece of a shift or torque curve.
type Segment struct {
	Start Point
	End   Point
}

// Delta returns the componentwise difference End − Start (Δx, Δy).
func (s Segment) Delta() Point {
	return Point{
		X: s.End.X - s.Start.X,
		Y: s.End.Y - s.Start.Y,
	}
}

// Slope returns m = Δy/Δx for the segment.
// Returns ErrDivisionByZero for a vertical segment (Δx == 0).
func (s Segment) Slope() (float64, error) {
	d := s.Delta()
	if !finite(d.X, d.Y) {
		return 0, fmt.Errorf("%w: non-finite segment", ErrInvalidArgument)
	}
	if d.X == 0 {
		return 0, fmt.Errorf("%w: vertical segment (x1 == x2)", ErrDivisionByZero)
	}
	return d.Y / d.X, nil
}

// Slope returns m = (y2−y1)/(x2−x1) for the line through two points.
// Returns ErrDivisionByZero when x1 == x2.
func Slope(x1, y1, x2, y2 float64) (float64, error) {
	return Segment{Start: Point{x1, y1}, End: Point{x2, y2}}.Slope()
}

// SampleInterval returns the points on the segment's line at x steps of
// interval, strictly between Start and End. Endpoints are excluded so
// concatenating sampled segments of a curve does not duplicate knots.
//
// interval must be positive; the segment must not be vertical.
func (s Segment) SampleInterval(interval float64) ([]Point, error) {
	if !finite(interval) || interval <= 0 {
		return nil, fmt.Errorf("%w: interval %v must be positive", ErrInvalidArgument, interval)
	}
	m, err := s.Slope()
	if err != nil {
		return nil, err
	}

	dir := 1.0
	if s.End.X < s.Start.X {
		dir = -1
	}

	var points []Point
	for i := 1; ; i++ {
		x := s.Start.X + dir*float64(i)*interval
		if dir*(x-s.End.X) >= 0 {
			break
		}
		points = append(points, Point{
			X: x,
			Y: s.Start.Y + m*(x-s.Start.X),
		})
	}
	return points, nil
}
