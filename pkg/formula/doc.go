// Package formula provides pure drivetrain math: power and torque
// conversions, speed and distance unit conversions, output-shaft-speed
// relations, and two-point slope geometry.
//
// All functions are stateless and safe for concurrent use. Inputs that make
// a formula undefined are reported through two sentinel errors:
// ErrDivisionByZero when a denominator is zero, and ErrInvalidArgument for
// non-finite or out-of-range inputs. Callers test with errors.Is.
package formula
