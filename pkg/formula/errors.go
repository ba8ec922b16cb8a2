package formula

import (
	"errors"
	"math"
)

var (
	// ErrDivisionByZero is returned when a formula's denominator is zero,
	// e.g. TorqueFromHorsepower at rpm 0 or Slope on a vertical segment.
	ErrDivisionByZero = errors.New("formula: division by zero")

	// ErrInvalidArgument is returned for non-finite inputs (NaN, ±Inf) and
	// for values outside a function's documented domain.
	ErrInvalidArgument = errors.New("formula: invalid argument")
)

// finite reports whether every value is a real number.
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
