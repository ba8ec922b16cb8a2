package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/driveline/driveline/internal/alerts"
	"github.com/driveline/driveline/internal/compute"
	"github.com/driveline/driveline/internal/config"
	"github.com/driveline/driveline/internal/ingest"
	"github.com/driveline/driveline/internal/store"
)

type fixture struct {
	handler  http.Handler
	store    *store.Store
	received []ingest.Sample
}

func newFixture(t *testing.T, ingestKey string) *fixture {
	t.Helper()
	f := &fixture{store: store.New(5 * time.Minute)}
	sink := func(s ingest.Sample) { f.received = append(f.received, s) }
	f.handler = New(f.store, alerts.New(config.AlertsConfig{}), nil, sink, ingestKey)
	return f
}

func (f *fixture) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func putSnap(st *store.Store, id, state string, mph float64) {
	st.Put(&compute.Snapshot{VehicleID: id, State: state, SpeedMPH: mph})
}

func TestHealth_Empty(t *testing.T) {
	f := newFixture(t, "")
	rec := f.get(t, "/api/v1/health")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp FleetHealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.State != compute.StateUnknown || resp.VehicleCount != 0 {
		t.Errorf("empty fleet health = %+v", resp)
	}
}

func TestHealth_WorstStateWins(t *testing.T) {
	f := newFixture(t, "")
	putSnap(f.store, "a", compute.StateNormal, 30)
	putSnap(f.store, "b", compute.StateRedline, 90)
	putSnap(f.store, "c", compute.StateHigh, 70)

	var resp FleetHealthResponse
	if err := json.Unmarshal(f.get(t, "/api/v1/health").Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.State != compute.StateRedline {
		t.Errorf("fleet state = %q, want redline", resp.State)
	}
	if resp.VehicleCount != 3 || resp.NormalCount != 1 || resp.HighCount != 1 || resp.RedlineCount != 1 {
		t.Errorf("counts = %+v", resp)
	}
}

func TestListVehicles(t *testing.T) {
	f := newFixture(t, "")
	putSnap(f.store, "bronco", compute.StateNormal, 31.2)

	var out []VehicleResponse
	if err := json.Unmarshal(f.get(t, "/api/v1/vehicles").Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 1 || out[0].VehicleID != "bronco" || out[0].SpeedMPH != 31.2 {
		t.Errorf("vehicles = %+v", out)
	}
	if out[0].LastSeen == "" {
		t.Error("LastSeen not populated")
	}
}

func TestGetVehicle(t *testing.T) {
	f := newFixture(t, "")
	putSnap(f.store, "bronco", compute.StateNormal, 31.2)

	rec := f.get(t, "/api/v1/vehicles/bronco")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	if rec := f.get(t, "/api/v1/vehicles/ghost"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown vehicle status = %d, want 404", rec.Code)
	}
}

func TestVehicleHistory_NotConfigured(t *testing.T) {
	f := newFixture(t, "")
	if rec := f.get(t, "/api/v1/vehicles/bronco/history"); rec.Code != http.StatusNotImplemented {
		t.Errorf("history without backend status = %d, want 501", rec.Code)
	}
}

func TestFleet(t *testing.T) {
	f := newFixture(t, "")
	putSnap(f.store, "bronco", compute.StateNormal, 31.2)

	var resp FleetResponse
	if err := json.Unmarshal(f.get(t, "/api/v1/fleet").Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Vehicles) != 1 || resp.GeneratedAt == "" {
		t.Errorf("fleet = %+v", resp)
	}
}

func TestAlerts_EmptyIsJSONArray(t *testing.T) {
	f := newFixture(t, "")
	body := strings.TrimSpace(f.get(t, "/api/v1/alerts").Body.String())
	if body != "[]" {
		t.Errorf("empty alerts body = %q, want []", body)
	}
}

func TestIngest(t *testing.T) {
	f := newFixture(t, "")

	body := `{"vehicle_id":"bronco","engine_rpm":2400,"oss":1000,"torque_ft_lbs":250}`
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/ingest", strings.NewReader(body)))

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}
	if len(f.received) != 1 || f.received[0].VehicleID != "bronco" {
		t.Errorf("sink received %+v", f.received)
	}
	if f.received[0].EngineRPM != 2400 {
		t.Errorf("EngineRPM = %v", f.received[0].EngineRPM)
	}
}

func TestIngest_Validation(t *testing.T) {
	f := newFixture(t, "")

	tests := []struct {
		name string
		body string
		want int
	}{
		{"missing vehicle_id", `{"engine_rpm":2400}`, http.StatusBadRequest},
		{"unknown field", `{"vehicle_id":"b","warp_factor":9}`, http.StatusBadRequest},
		{"not json", `engine go brr`, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/ingest", strings.NewReader(tc.body)))
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
	if len(f.received) != 0 {
		t.Errorf("sink received %d samples, want 0", len(f.received))
	}
}

func TestIngest_APIKey(t *testing.T) {
	f := newFixture(t, "sekrit")
	body := `{"vehicle_id":"bronco","engine_rpm":2400}`

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/ingest", strings.NewReader(body)))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no key: status = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ingest", strings.NewReader(body))
	req.Header.Set("X-API-Key", "sekrit")
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusAccepted {
		t.Errorf("with key: status = %d, want 202", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	f := newFixture(t, "")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/vehicles", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics()
	m.SamplesIngested.WithLabelValues("udp").Inc()
	m.VehiclesLive.Set(2)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	if !strings.Contains(body, "driveline_samples_ingested_total") {
		t.Error("metrics output missing samples counter")
	}
	if !strings.Contains(body, "driveline_vehicles_live 2") {
		t.Error("metrics output missing vehicles gauge")
	}
}
