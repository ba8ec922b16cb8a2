package compute

import (
	"fmt"
	"sync"
	"time"

	"github.com/driveline/driveline/internal/ingest"
	"github.com/driveline/driveline/pkg/formula"
)

// Snapshot is the fully-derived state of one vehicle, ready for the store,
// the history backend and the alert engine.
type Snapshot struct {
	VehicleID string    `json:"vehicle_id"`
	Timestamp time.Time `json:"timestamp"`

	// Raw readings echoed from the sample.
	EngineRPM   float64 `json:"engine_rpm"`
	OSS         float64 `json:"oss"`
	TorqueFtLbs float64 `json:"torque_ft_lbs"`

	// Derived values.
	SpeedMPH   float64 `json:"speed_mph"`
	SpeedKPH   float64 `json:"speed_kph"`
	Horsepower float64 `json:"horsepower"`
	Gear       int     `json:"gear"`
	GearRatio  float64 `json:"gear_ratio"`
	SlipPct    float64 `json:"slip_pct"`

	// AccelMPHPerSec is the slope of road speed between this sample and the
	// previous one. 0 on the first sample for a vehicle.
	AccelMPHPerSec float64 `json:"accel_mph_s"`

	// State is one of: "normal", "high", "redline", "unknown".
	State string `json:"state"`
}

// Engine derives snapshots from raw samples and keeps the per-vehicle state
// needed for rate-of-change values.
//
// All exported methods are safe for concurrent use.
type Engine struct {
	mu       sync.Mutex
	profiles map[string]Profile
	states   map[string]*vehicleState
}

// vehicleState carries the previous reading for acceleration.
type vehicleState struct {
	prevTime time.Time
	prevMPH  float64
	hasPrev  bool
}

// NewEngine returns an Engine for the given profiles.
func NewEngine(profiles []Profile) *Engine {
	e := &Engine{states: make(map[string]*vehicleState)}
	e.SetProfiles(profiles)
	return e
}

// SetProfiles replaces the profile set, e.g. after a config reload.
// Per-vehicle rate state is kept for vehicles that remain configured.
func (e *Engine) SetProfiles(profiles []Profile) {
	m := make(map[string]Profile, len(profiles))
	for _, p := range profiles {
		m[p.ID] = p
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.profiles = m
	for id := range e.states {
		if _, ok := m[id]; !ok {
			delete(e.states, id)
		}
	}
}

// VehicleCount returns the number of configured profiles.
func (e *Engine) VehicleCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.profiles)
}

// Process derives a Snapshot from one sample.
//
// now is passed explicitly so callers (and tests) control the clock without
// sleeping; it is also the snapshot timestamp when the sample carries none.
// Samples for unconfigured vehicles return an error.
func (e *Engine) Process(s ingest.Sample, now time.Time) (*Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.profiles[s.VehicleID]
	if !ok {
		return nil, fmt.Errorf("compute: unknown vehicle %q", s.VehicleID)
	}

	out, err := Derive(p, Input{
		EngineRPM:   s.EngineRPM,
		OSS:         s.OSS,
		TorqueFtLbs: s.TorqueFtLbs,
	})
	if err != nil {
		return nil, err
	}

	ts := s.Time()
	if ts.IsZero() {
		ts = now
	}

	snap := &Snapshot{
		VehicleID:   s.VehicleID,
		Timestamp:   ts,
		EngineRPM:   s.EngineRPM,
		OSS:         s.OSS,
		TorqueFtLbs: s.TorqueFtLbs,
		SpeedMPH:    out.SpeedMPH,
		SpeedKPH:    out.SpeedKPH,
		Horsepower:  out.Horsepower,
		Gear:        out.Gear,
		GearRatio:   out.GearRatio,
		SlipPct:     out.SlipPct,
		State:       out.State,
	}

	st := e.stateFor(s.VehicleID)
	if st.hasPrev {
		elapsed := ts.Sub(st.prevTime).Seconds()
		if elapsed > 0 {
			// Acceleration is the slope of the (time, speed) segment.
			accel, err := formula.Segment{
				Start: formula.Point{X: 0, Y: st.prevMPH},
				End:   formula.Point{X: elapsed, Y: out.SpeedMPH},
			}.Slope()
			if err == nil {
				snap.AccelMPHPerSec = accel
			}
		}
	}
	st.prevTime = ts
	st.prevMPH = out.SpeedMPH
	st.hasPrev = true

	return snap, nil
}

func (e *Engine) stateFor(id string) *vehicleState {
	if st, ok := e.states[id]; ok {
		return st
	}
	st := &vehicleState{}
	e.states[id] = st
	return st
}
