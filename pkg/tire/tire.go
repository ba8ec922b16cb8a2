// Package tire derives tire geometry from metric tire size designations
// such as "275/55R20": section width in millimeters, aspect ratio as a
// percentage of width, and wheel diameter in inches.
package tire

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/driveline/driveline/pkg/formula"
)

// sizeDigits extracts the width / aspect ratio / wheel diameter groups from
// a metric tire size string.
var sizeDigits = regexp.MustCompile(`\d{2,}`)

// feetPerMile × inchesPerFoot converts a circumference in inches to miles.
const inchesPerMile = 5280.0 * 12.0

// Tire holds the derived geometry of one tire.
type Tire struct {
	// Size is the designation the tire was parsed from, e.g. "275/55R20".
	Size string

	// Diameter is the overall diameter in inches: wheel diameter plus twice
	// the sidewall height.
	Diameter float64
}

// Parse builds a Tire from a metric size designation.
//
// The string must contain three numeric groups — section width (mm), aspect
// ratio (%), wheel diameter (in) — in that order. Separators are ignored, so
// "275/55R20", "275/55/20" and "P275 55 R20" all parse.
func Parse(size string) (*Tire, error) {
	groups := sizeDigits.FindAllString(size, -1)
	if len(groups) < 3 {
		return nil, fmt.Errorf("tire: size %q: want width/aspect/wheel, found %d numeric groups", size, len(groups))
	}

	width, err := strconv.ParseFloat(groups[0], 64)
	if err != nil {
		return nil, fmt.Errorf("tire: size %q: width: %w", size, err)
	}
	aspect, err := strconv.ParseFloat(groups[1], 64)
	if err != nil {
		return nil, fmt.Errorf("tire: size %q: aspect ratio: %w", size, err)
	}
	wheel, err := strconv.ParseFloat(groups[2], 64)
	if err != nil {
		return nil, fmt.Errorf("tire: size %q: wheel diameter: %w", size, err)
	}

	// Sidewall height is aspect% of the width; it appears twice in the
	// overall diameter. Width is in mm, so /10 to cm before converting.
	heightMM := width * (aspect / 100) * 2
	diameter := formula.CentimetersToInches(heightMM/10) + wheel

	return &Tire{Size: size, Diameter: diameter}, nil
}

// Circumference returns the rolling circumference in inches.
func (t *Tire) Circumference() float64 {
	return t.Diameter * 3.14
}

// MilesPerRevolution returns the distance in miles covered by one tire
// revolution.
func (t *Tire) MilesPerRevolution() float64 {
	return t.Circumference() / inchesPerMile
}

// RevsPerMile returns the number of tire revolutions per mile, the figure
// used with formula.MPHFromOSS.
func (t *Tire) RevsPerMile() float64 {
	return 1 / t.MilesPerRevolution()
}
