package formula

import "fmt"

// Conversion constants for power formulas.
const (
	// HorsepowerRPMConstant relates torque, engine speed and horsepower:
	// HP = torque(ft·lbs) × RPM / 5250.
	HorsepowerRPMConstant = 5250.0

	// KilowattsPerHorsepower is the kW output of one mechanical horsepower.
	KilowattsPerHorsepower = 0.746

	// HorsepowerPerKilowatt is the precise inverse of 0.7457 kW/HP
	// (≈1.34102). Older reference material rounds this to 1.333; that
	// approximation is intentionally not used here.
	HorsepowerPerKilowatt = 1.0 / 0.7457
)

// HorsepowerFromTorque converts torque in foot-pounds at the given engine
// speed to horsepower: HP = torque × rpm / 5250.
//
// An rpm of 0 yields 0 HP — the formula is well-defined there. Non-finite
// inputs return ErrInvalidArgument.
func HorsepowerFromTorque(torqueFtLbs, rpm float64) (float64, error) {
	if !finite(torqueFtLbs, rpm) {
		return 0, fmt.Errorf("%w: non-finite torque or rpm", ErrInvalidArgument)
	}
	return torqueFtLbs * rpm / HorsepowerRPMConstant, nil
}

// TorqueFromHorsepower converts horsepower at the given engine speed back to
// torque in foot-pounds: torque = HP × 5250 / rpm.
//
// Returns ErrDivisionByZero when rpm is 0.
func TorqueFromHorsepower(horsepower, rpm float64) (float64, error) {
	if !finite(horsepower, rpm) {
		return 0, fmt.Errorf("%w: non-finite horsepower or rpm", ErrInvalidArgument)
	}
	if rpm == 0 {
		return 0, fmt.Errorf("%w: rpm is 0", ErrDivisionByZero)
	}
	return horsepower * HorsepowerRPMConstant / rpm, nil
}

// HorsepowerFromKilowatts converts kilowatts to horsepower using the precise
// HorsepowerPerKilowatt constant.
func HorsepowerFromKilowatts(kilowatts float64) (float64, error) {
	if !finite(kilowatts) {
		return 0, fmt.Errorf("%w: non-finite kilowatts", ErrInvalidArgument)
	}
	return kilowatts * HorsepowerPerKilowatt, nil
}

// KilowattsFromHorsepower converts horsepower to the kilowatt input required
// at the given conversion efficiency: kW = HP × 0.746 / efficiency.
//
// efficiency is a ratio in (0, 1]; 1.0 models a lossless conversion.
// Returns ErrInvalidArgument when efficiency <= 0 or any input is non-finite.
func KilowattsFromHorsepower(horsepower, efficiency float64) (float64, error) {
	if !finite(horsepower, efficiency) {
		return 0, fmt.Errorf("%w: non-finite horsepower or efficiency", ErrInvalidArgument)
	}
	if efficiency <= 0 {
		return 0, fmt.Errorf("%w: efficiency %v is not in (0, 1]", ErrInvalidArgument, efficiency)
	}
	return horsepower * KilowattsPerHorsepower / efficiency, nil
}
