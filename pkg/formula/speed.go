package formula

import "fmt"

// Conversion constants for length and speed.
const (
	CentimetersPerInch = 2.54

	// KPHPerMPH is exact (1609.344 m per mile).
	KPHPerMPH = 1.609344

	// MPHPerKPH is the conventional 4-digit approximation, not 1/1.609344.
	// Round-tripping through both constants drifts by ~0.03%.
	MPHPerKPH = 0.6214
)

// InchesToCentimeters converts inches to centimeters.
func InchesToCentimeters(inches float64) float64 {
	return inches * CentimetersPerInch
}

// CentimetersToInches converts centimeters to inches.
func CentimetersToInches(centimeters float64) float64 {
	return centimeters / CentimetersPerInch
}

// MPHToKPH converts miles per hour to kilometers per hour.
func MPHToKPH(mph float64) float64 {
	return mph * KPHPerMPH
}

// KPHToMPH converts kilometers per hour to miles per hour.
func KPHToMPH(kph float64) float64 {
	return kph * MPHPerKPH
}

// MPHFromOSS calculates road speed from the transmission output shaft speed.
//
// The output shaft turns at tire RPM × axle ratio, so
// mph = oss / axleRatio / tireRevsPerMile × 60.
// Returns ErrDivisionByZero when axleRatio or tireRevsPerMile is 0.
func MPHFromOSS(oss, tireRevsPerMile, axleRatio float64) (float64, error) {
	if !finite(oss, tireRevsPerMile, axleRatio) {
		return 0, fmt.Errorf("%w: non-finite input", ErrInvalidArgument)
	}
	if axleRatio == 0 || tireRevsPerMile == 0 {
		return 0, fmt.Errorf("%w: axle ratio or tire revs/mile is 0", ErrDivisionByZero)
	}
	return oss / axleRatio / tireRevsPerMile * 60, nil
}

// OSSFromMPH calculates the transmission output shaft speed that corresponds
// to a road speed: oss = tireRevsPerMile × mph / 60 × axleRatio.
func OSSFromMPH(mph, tireRevsPerMile, axleRatio float64) (float64, error) {
	if !finite(mph, tireRevsPerMile, axleRatio) {
		return 0, fmt.Errorf("%w: non-finite input", ErrInvalidArgument)
	}
	return tireRevsPerMile * mph / 60 * axleRatio, nil
}

// EngineRPMFromOSS calculates engine speed from the output shaft speed and
// the engaged transmission gear ratio.
func EngineRPMFromOSS(oss, transGearRatio float64) (float64, error) {
	if !finite(oss, transGearRatio) {
		return 0, fmt.Errorf("%w: non-finite input", ErrInvalidArgument)
	}
	return oss * transGearRatio, nil
}

// OSSFromEngineRPM calculates the output shaft speed from engine speed and
// the engaged transmission gear ratio.
// Returns ErrDivisionByZero when transGearRatio is 0.
func OSSFromEngineRPM(rpm, transGearRatio float64) (float64, error) {
	if !finite(rpm, transGearRatio) {
		return 0, fmt.Errorf("%w: non-finite input", ErrInvalidArgument)
	}
	if transGearRatio == 0 {
		return 0, fmt.Errorf("%w: gear ratio is 0", ErrDivisionByZero)
	}
	return rpm / transGearRatio, nil
}
