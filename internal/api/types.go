package api

import (
	"time"

	"github.com/driveline/driveline/internal/store"
)

// FleetHealthResponse is the payload for GET /api/v1/health.
type FleetHealthResponse struct {
	VehicleCount int    `json:"vehicle_count"`
	NormalCount  int    `json:"normal_count"`
	HighCount    int    `json:"high_count"`
	RedlineCount int    `json:"redline_count"`
	UnknownCount int    `json:"unknown_count"`
	AlertCount   int    `json:"alert_count"`
	State        string `json:"state"`
}

// VehicleResponse is one vehicle entry in GET /api/v1/vehicles,
// GET /api/v1/vehicles/{id} and the WebSocket fleet broadcast.
type VehicleResponse struct {
	VehicleID      string  `json:"vehicle_id"`
	State          string  `json:"state"`
	EngineRPM      float64 `json:"engine_rpm"`
	OSS            float64 `json:"oss"`
	TorqueFtLbs    float64 `json:"torque_ft_lbs"`
	SpeedMPH       float64 `json:"speed_mph"`
	SpeedKPH       float64 `json:"speed_kph"`
	Horsepower     float64 `json:"horsepower"`
	Gear           int     `json:"gear"`
	GearRatio      float64 `json:"gear_ratio,omitempty"`
	SlipPct        float64 `json:"slip_pct"`
	AccelMPHPerSec float64 `json:"accel_mph_s"`
	LastSeen       string  `json:"last_seen"` // RFC3339
}

// FleetResponse is the payload for GET /api/v1/fleet and each WebSocket
// broadcast tick.
type FleetResponse struct {
	Vehicles    []VehicleResponse `json:"vehicles"`
	GeneratedAt string            `json:"generated_at"` // RFC3339
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}

// BuildFleet assembles the full fleet payload from the live store. The ws
// hub uses it for every broadcast tick.
func BuildFleet(st *store.Store) FleetResponse {
	entries := st.List()
	vehicles := make([]VehicleResponse, 0, len(entries))
	for _, e := range entries {
		vehicles = append(vehicles, ToVehicleResponse(e))
	}
	return FleetResponse{
		Vehicles:    vehicles,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// ToVehicleResponse converts a live store entry to its API shape.
func ToVehicleResponse(e *store.Entry) VehicleResponse {
	s := e.Snapshot
	return VehicleResponse{
		VehicleID:      s.VehicleID,
		State:          s.State,
		EngineRPM:      s.EngineRPM,
		OSS:            s.OSS,
		TorqueFtLbs:    s.TorqueFtLbs,
		SpeedMPH:       s.SpeedMPH,
		SpeedKPH:       s.SpeedKPH,
		Horsepower:     s.Horsepower,
		Gear:           s.Gear,
		GearRatio:      s.GearRatio,
		SlipPct:        s.SlipPct,
		AccelMPHPerSec: s.AccelMPHPerSec,
		LastSeen:       e.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
