package ingest

import "time"

// Sample is one raw telemetry reading as it travels over the wire.
// UDP frames carry it msgpack-encoded; the HTTP ingest endpoint accepts the
// same shape as JSON.
type Sample struct {
	// VehicleID matches a configured vehicle profile.
	VehicleID string `msgpack:"vehicle_id" json:"vehicle_id"`

	// EngineRPM is the measured engine speed.
	EngineRPM float64 `msgpack:"engine_rpm" json:"engine_rpm"`

	// OSS is the transmission output shaft speed in RPM.
	OSS float64 `msgpack:"oss" json:"oss"`

	// TorqueFtLbs is the measured engine torque in foot-pounds.
	TorqueFtLbs float64 `msgpack:"torque_ft_lbs" json:"torque_ft_lbs"`

	// UnixMs is the sender's capture timestamp in Unix milliseconds.
	// 0 means unset; the receiver stamps arrival time instead.
	UnixMs int64 `msgpack:"ts_ms,omitempty" json:"ts_ms,omitempty"`
}

// Time returns the capture timestamp, or the zero time when UnixMs is unset.
func (s Sample) Time() time.Time {
	if s.UnixMs == 0 {
		return time.Time{}
	}
	return time.UnixMilli(s.UnixMs)
}
