package alerts

import (
	"strconv"
	"strings"

	"github.com/driveline/driveline/internal/compute"
)

// evalCondition evaluates a rule condition string against a Snapshot.
//
// Supported expressions (field operator value):
//
//	engine_rpm > 6200
//	speed_mph > 85
//	slip_pct > 30
//	horsepower > 450
//	accel_mph_s < -15
//	gear == 1
//	state == redline
//	state == high
//
// Returns (fires bool, triggering value float64).
// Returns (false, 0) if the expression cannot be parsed or the field is unknown.
func evalCondition(cond string, snap *compute.Snapshot) (bool, float64) {
	parts := strings.Fields(cond)
	if len(parts) != 3 {
		return false, 0
	}
	field, op, rhs := parts[0], parts[1], parts[2]

	if field == "state" {
		if op == "==" {
			return snap.State == rhs, 0
		}
		return false, 0
	}

	v, ok := numericField(field, snap)
	if !ok {
		return false, 0
	}
	threshold, err := strconv.ParseFloat(rhs, 64)
	if err != nil {
		return false, 0
	}
	return compareFloat(v, op, threshold), v
}

// numericField maps a field name to its value in the snapshot.
func numericField(field string, snap *compute.Snapshot) (float64, bool) {
	switch field {
	case "engine_rpm":
		return snap.EngineRPM, true
	case "oss":
		return snap.OSS, true
	case "torque_ft_lbs":
		return snap.TorqueFtLbs, true
	case "speed_mph":
		return snap.SpeedMPH, true
	case "speed_kph":
		return snap.SpeedKPH, true
	case "horsepower":
		return snap.Horsepower, true
	case "gear":
		return float64(snap.Gear), true
	case "slip_pct":
		return snap.SlipPct, true
	case "accel_mph_s":
		return snap.AccelMPHPerSec, true
	default:
		return 0, false
	}
}

// compareFloat applies a comparison operator to two float64 values.
func compareFloat(v float64, op string, threshold float64) bool {
	switch op {
	case ">":
		return v > threshold
	case ">=":
		return v >= threshold
	case "<":
		return v < threshold
	case "<=":
		return v <= threshold
	case "==":
		return v == threshold
	default:
		return false
	}
}
