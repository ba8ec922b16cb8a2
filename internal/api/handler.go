package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/driveline/driveline/internal/alerts"
	"github.com/driveline/driveline/internal/compute"
	"github.com/driveline/driveline/internal/history"
	"github.com/driveline/driveline/internal/ingest"
	"github.com/driveline/driveline/internal/store"
)

// defaultHistoryLimit bounds /history responses when no limit is given.
const defaultHistoryLimit = 100

// Handler is the HTTP handler for all /api/v1/* endpoints.
// It reads fleet state from the snapshot store and returns JSON responses.
type Handler struct {
	store     *store.Store
	alerts    *alerts.Engine
	history   *history.History // nil when history is disabled
	sink      ingest.Sink
	ingestKey string
	mux       *http.ServeMux
}

// New creates a Handler and registers all routes. hist may be nil;
// ingestKey empty disables ingest auth.
func New(st *store.Store, ae *alerts.Engine, hist *history.History, sink ingest.Sink, ingestKey string) http.Handler {
	h := &Handler{
		store:     st,
		alerts:    ae,
		history:   hist,
		sink:      sink,
		ingestKey: ingestKey,
		mux:       http.NewServeMux(),
	}

	h.mux.HandleFunc("/api/v1/health", h.health)
	h.mux.HandleFunc("/api/v1/fleet", h.fleet)
	h.mux.HandleFunc("/api/v1/vehicles", h.listVehicles)
	h.mux.HandleFunc("/api/v1/vehicles/", h.vehicleSubtree) // {id} and {id}/history
	h.mux.HandleFunc("/api/v1/alerts", h.listAlerts)
	h.mux.HandleFunc("/api/v1/ingest", h.ingest)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// health returns GET /api/v1/health — per-state vehicle counts and an
// overall fleet state (worst state present wins).
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	entries := h.store.List()
	resp := FleetHealthResponse{
		VehicleCount: len(entries),
		AlertCount:   len(h.alerts.Active()),
	}

	for _, e := range entries {
		switch e.Snapshot.State {
		case compute.StateNormal:
			resp.NormalCount++
		case compute.StateHigh:
			resp.HighCount++
		case compute.StateRedline:
			resp.RedlineCount++
		default:
			resp.UnknownCount++
		}
	}

	switch {
	case len(entries) == 0:
		resp.State = compute.StateUnknown
	case resp.RedlineCount > 0:
		resp.State = compute.StateRedline
	case resp.HighCount > 0:
		resp.State = compute.StateHigh
	default:
		resp.State = compute.StateNormal
	}
	jsonResp(w, http.StatusOK, resp)
}

// fleet returns GET /api/v1/fleet — the full live fleet snapshot, the same
// payload the WebSocket hub broadcasts.
func (h *Handler) fleet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	jsonResp(w, http.StatusOK, BuildFleet(h.store))
}

// listVehicles returns GET /api/v1/vehicles — all live vehicles.
func (h *Handler) listVehicles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	entries := h.store.List()
	out := make([]VehicleResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToVehicleResponse(e))
	}
	jsonResp(w, http.StatusOK, out)
}

// vehicleSubtree routes GET /api/v1/vehicles/{id} and
// GET /api/v1/vehicles/{id}/history.
func (h *Handler) vehicleSubtree(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/vehicles/")
	if rest == "" {
		h.listVehicles(w, r)
		return
	}

	if id, ok := strings.CutSuffix(rest, "/history"); ok {
		h.vehicleHistory(w, r, id)
		return
	}
	h.getVehicle(w, rest)
}

func (h *Handler) getVehicle(w http.ResponseWriter, id string) {
	e, ok := h.store.Get(id)
	if !ok {
		jsonErr(w, http.StatusNotFound, "vehicle not found")
		return
	}
	// Exclude stale entries — treat them as not found.
	if time.Since(e.UpdatedAt) > h.store.TTL() {
		jsonErr(w, http.StatusNotFound, "vehicle not found")
		return
	}
	jsonResp(w, http.StatusOK, ToVehicleResponse(e))
}

func (h *Handler) vehicleHistory(w http.ResponseWriter, r *http.Request, id string) {
	if h.history == nil {
		jsonErr(w, http.StatusNotImplemented, "history is not configured")
		return
	}

	limit := defaultHistoryLimit
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n <= 0 {
			jsonErr(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	snaps, err := h.history.Recent(id, limit)
	if err != nil {
		jsonErr(w, http.StatusInternalServerError, "history query failed")
		return
	}
	jsonResp(w, http.StatusOK, snaps)
}

// listAlerts returns GET /api/v1/alerts — firing plus recently resolved.
func (h *Handler) listAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, h.alerts.Active())
}

// ingest accepts POST /api/v1/ingest — one JSON sample per request, the
// HTTP counterpart of the UDP listener.
func (h *Handler) ingest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.ingestKey != "" && r.Header.Get("X-API-Key") != h.ingestKey {
		jsonErr(w, http.StatusUnauthorized, "missing or invalid API key")
		return
	}

	var s ingest.Sample
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		jsonErr(w, http.StatusBadRequest, "invalid sample: "+err.Error())
		return
	}
	if s.VehicleID == "" {
		jsonErr(w, http.StatusBadRequest, "vehicle_id is required")
		return
	}

	h.sink(s)
	w.WriteHeader(http.StatusAccepted)
}

// --- helpers ----------------------------------------------------------------

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}
