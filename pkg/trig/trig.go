// Package trig evaluates trigonometric functions under the four standard
// graph transformations: amplitude, period, phase shift and vertical shift.
// It is used to shape periodic correction curves, e.g. smoothing a shift
// schedule between two slope segments.
package trig

import "math"

// Kind selects the base trigonometric function.
type Kind int

const (
	Sine Kind = iota
	Cosine
	Tangent
	Cotangent
	Secant
	Cosecant
)

// String returns the conventional short name of the function.
func (k Kind) String() string {
	switch k {
	case Sine:
		return "sin"
	case Cosine:
		return "cos"
	case Tangent:
		return "tan"
	case Cotangent:
		return "cot"
	case Secant:
		return "sec"
	case Cosecant:
		return "csc"
	default:
		return "unknown"
	}
}

// naturalPeriod returns the untransformed period of the function:
// π for tangent and cotangent, 2π for the rest.
func (k Kind) naturalPeriod() float64 {
	if k == Tangent || k == Cotangent {
		return math.Pi
	}
	return 2 * math.Pi
}

// Function is a trig function with an accumulated set of transformations.
// The zero value of each transformation is the identity. Builder methods
// return the receiver so calls chain.
type Function struct {
	kind      Kind
	amplitude float64
	period    float64
	phase     float64
	vshift    float64
}

// New returns the untransformed function of the given kind.
func New(kind Kind) *Function {
	return &Function{
		kind:      kind,
		amplitude: 1,
		period:    kind.naturalPeriod(),
	}
}

// Amplify scales the function's output by a. For sine and cosine this is the
// amplitude; for the others it affects steepness. Negative a flips the graph
// across the x axis.
func (f *Function) Amplify(a float64) *Function {
	f.amplitude = a
	return f
}

// Period sets the length of one cycle to p.
func (f *Function) Period(p float64) *Function {
	f.period = p
	return f
}

// PhaseShift shifts the graph right by ps (left when negative).
func (f *Function) PhaseShift(ps float64) *Function {
	f.phase = ps
	return f
}

// VerticalShift translates the graph up by vs (down when negative).
func (f *Function) VerticalShift(vs float64) *Function {
	f.vshift = vs
	return f
}

// Eval returns A·f(B·(x − C)) + D, where B compresses the natural period to
// the configured one. Evaluation at a pole of tan/cot/sec/csc returns ±Inf
// or a very large value, as the underlying math functions do.
func (f *Function) Eval(x float64) float64 {
	b := f.kind.naturalPeriod() / f.period
	arg := b * (x - f.phase)

	var y float64
	switch f.kind {
	case Sine:
		y = math.Sin(arg)
	case Cosine:
		y = math.Cos(arg)
	case Tangent:
		y = math.Tan(arg)
	case Cotangent:
		y = math.Cos(arg) / math.Sin(arg)
	case Secant:
		y = 1 / math.Cos(arg)
	case Cosecant:
		y = 1 / math.Sin(arg)
	}
	return f.amplitude*y + f.vshift
}
