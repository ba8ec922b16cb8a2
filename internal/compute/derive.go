package compute

import (
	"fmt"
	"math"

	"github.com/driveline/driveline/pkg/formula"
)

// State constants returned by the derivation.
const (
	StateNormal  = "normal"
	StateHigh    = "high"
	StateRedline = "redline"
	StateUnknown = "unknown"
)

// highRPMFraction is the fraction of redline at and above which the engine
// state is "high".
const highRPMFraction = 0.90

// Profile is a vehicle drivetrain resolved to the numbers the formulas need.
type Profile struct {
	ID string

	// TireRevsPerMile comes from the parsed tire size.
	TireRevsPerMile float64

	// AxleRatio is the final drive ratio.
	AxleRatio float64

	// GearRatios lists the transmission ratios, first gear first.
	GearRatios []float64

	// RedlineRPM is the engine speed ceiling.
	RedlineRPM float64
}

// Input holds one telemetry reading fed into Derive.
type Input struct {
	// EngineRPM is the measured engine speed.
	EngineRPM float64

	// OSS is the transmission output shaft speed in RPM.
	OSS float64

	// TorqueFtLbs is the measured engine torque in foot-pounds.
	TorqueFtLbs float64
}

// Output is the result of deriving one reading against a profile.
type Output struct {
	// SpeedMPH and SpeedKPH are the road speed derived from OSS.
	SpeedMPH float64
	SpeedKPH float64

	// Horsepower is derived from torque × engine rpm / 5250.
	Horsepower float64

	// Gear is the estimated engaged gear (1-based); 0 when it cannot be
	// estimated (vehicle stationary).
	Gear int

	// GearRatio is the ratio of the estimated gear, 0 when Gear is 0.
	GearRatio float64

	// SlipPct is the torque converter slip: how far the measured engine rpm
	// exceeds the rpm the output shaft accounts for, as a percentage of the
	// measured rpm. 0 when locked or unestimable.
	SlipPct float64

	// State is one of: "normal", "high", "redline", "unknown".
	State string
}

// Derive computes the road speed, power and converter slip for one reading.
//
// Negative rpm, OSS or torque is rejected. A stationary reading (OSS 0)
// yields zero speed and no gear estimate; rpm 0 yields zero horsepower per
// the power formula.
func Derive(p Profile, in Input) (Output, error) {
	if in.EngineRPM < 0 || in.OSS < 0 || in.TorqueFtLbs < 0 {
		return Output{}, fmt.Errorf("%w: negative reading", formula.ErrInvalidArgument)
	}

	var out Output

	mph, err := formula.MPHFromOSS(in.OSS, p.TireRevsPerMile, p.AxleRatio)
	if err != nil {
		return Output{}, fmt.Errorf("derive %s: speed: %w", p.ID, err)
	}
	out.SpeedMPH = mph
	out.SpeedKPH = formula.MPHToKPH(mph)

	hp, err := formula.HorsepowerFromTorque(in.TorqueFtLbs, in.EngineRPM)
	if err != nil {
		return Output{}, fmt.Errorf("derive %s: power: %w", p.ID, err)
	}
	out.Horsepower = hp

	out.Gear, out.GearRatio = estimateGear(p.GearRatios, in.EngineRPM, in.OSS)

	if out.GearRatio > 0 && in.EngineRPM > 0 {
		expected, err := formula.EngineRPMFromOSS(in.OSS, out.GearRatio)
		if err != nil {
			return Output{}, fmt.Errorf("derive %s: slip: %w", p.ID, err)
		}
		slip := (in.EngineRPM - expected) / in.EngineRPM * 100
		if slip > 0 {
			out.SlipPct = slip
		}
	}

	out.State = stateFromRPM(in.EngineRPM, p.RedlineRPM)
	return out, nil
}

// estimateGear picks the gear whose ratio is closest to rpm/oss.
// Returns (0, 0) when the vehicle is stationary or the engine is off,
// since the ratio is undefined there.
func estimateGear(ratios []float64, rpm, oss float64) (int, float64) {
	if oss <= 0 || rpm <= 0 || len(ratios) == 0 {
		return 0, 0
	}
	observed := rpm / oss

	best, bestDiff := 0, math.MaxFloat64
	for i, r := range ratios {
		if d := math.Abs(observed - r); d < bestDiff {
			best, bestDiff = i, d
		}
	}
	return best + 1, ratios[best]
}

// stateFromRPM classifies the engine state against the redline.
func stateFromRPM(rpm, redline float64) string {
	switch {
	case rpm <= 0:
		return StateUnknown
	case rpm >= redline:
		return StateRedline
	case rpm >= redline*highRPMFraction:
		return StateHigh
	default:
		return StateNormal
	}
}
