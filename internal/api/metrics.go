package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the daemon's Prometheus instrumentation.
type Metrics struct {
	registry *prometheus.Registry

	// SamplesIngested counts accepted telemetry samples per transport
	// ("udp" | "http").
	SamplesIngested *prometheus.CounterVec

	// SamplesRejected counts samples dropped before derivation
	// (unknown vehicle, invalid reading).
	SamplesRejected prometheus.Counter

	// AlertsFired counts alert fire events.
	AlertsFired prometheus.Counter

	// VehiclesLive tracks the number of vehicles with a live snapshot.
	VehiclesLive prometheus.Gauge
}

// NewMetrics builds the metric set on a private registry so tests can
// create handlers without duplicate-registration panics.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		SamplesIngested: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "driveline_samples_ingested_total",
			Help: "Telemetry samples accepted, by transport.",
		}, []string{"transport"}),
		SamplesRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "driveline_samples_rejected_total",
			Help: "Telemetry samples rejected before derivation.",
		}),
		AlertsFired: factory.NewCounter(prometheus.CounterOpts{
			Name: "driveline_alerts_fired_total",
			Help: "Alert rule fire events.",
		}),
		VehiclesLive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "driveline_vehicles_live",
			Help: "Vehicles with a snapshot inside the liveness TTL.",
		}),
	}
}

// Handler returns the /metrics endpoint for this metric set.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
