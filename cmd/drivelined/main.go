package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/driveline/driveline/internal/alerts"
	"github.com/driveline/driveline/internal/api"
	"github.com/driveline/driveline/internal/compute"
	"github.com/driveline/driveline/internal/config"
	"github.com/driveline/driveline/internal/history"
	"github.com/driveline/driveline/internal/ingest"
	"github.com/driveline/driveline/internal/store"
	"github.com/driveline/driveline/internal/ws"
	"github.com/driveline/driveline/pkg/tire"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	slog.Info("drivelined starting", "config", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	slog.Info("config loaded",
		"http_port", cfg.Server.HTTPPort,
		"udp_port", cfg.Server.UDPPort,
		"vehicles", len(cfg.Vehicles),
		"snapshot_ttl", cfg.Server.SnapshotTTL,
	)

	profiles, err := buildProfiles(cfg.Vehicles)
	if err != nil {
		slog.Error("failed to build vehicle profiles", "err", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Live snapshot store with background TTL eviction.
	st := store.New(cfg.Server.SnapshotTTL)
	go st.Run(ctx)

	// Optional SQLite history with background retention pruning.
	var hist *history.History
	if cfg.History.Path != "" {
		hist, err = history.Open(cfg.History.Path, cfg.History.Retention)
		if err != nil {
			slog.Error("failed to open history database",
				"path", cfg.History.Path, "err", err)
			os.Exit(1)
		}
		defer hist.Close()
		go hist.Run(ctx)
		slog.Info("history enabled",
			"path", cfg.History.Path, "retention", cfg.History.Retention)
	}

	metrics := api.NewMetrics()

	// Alerts engine — evaluates rules on every derived snapshot.
	alertEngine := alerts.New(cfg.Alerts)
	alertEngine.OnFire = func(*alerts.Alert) { metrics.AlertsFired.Inc() }

	// Derivation engine — turns raw samples into per-vehicle snapshots.
	engine := compute.NewEngine(profiles)

	// sink is the single processing path for every sample, whatever the
	// transport. process is shared; the transport label differs.
	process := func(transport string) ingest.Sink {
		return func(s ingest.Sample) {
			snap, err := engine.Process(s, time.Now())
			if err != nil {
				metrics.SamplesRejected.Inc()
				slog.Debug("sample rejected",
					"vehicle", s.VehicleID, "transport", transport, "err", err)
				return
			}
			metrics.SamplesIngested.WithLabelValues(transport).Inc()
			st.Put(snap)
			metrics.VehiclesLive.Set(float64(st.Count()))
			alertEngine.Evaluate(snap)
			if hist != nil {
				if err := hist.Insert(snap); err != nil {
					slog.Error("history insert failed",
						"vehicle", snap.VehicleID, "err", err)
				}
			}
		}
	}

	// UDP msgpack telemetry listener.
	udp, err := ingest.NewUDP(cfg.Server.UDPPort, process("udp"))
	if err != nil {
		slog.Error("failed to bind UDP listener",
			"port", cfg.Server.UDPPort, "err", err)
		os.Exit(1)
	}
	go udp.Run(ctx)

	// WebSocket hub — broadcasts the fleet snapshot to clients on a timer.
	hub := ws.New(st, cfg.Server.BroadcastInterval)
	go hub.Run(ctx)

	// Combined HTTP server: REST API + WebSocket stream + Prometheus metrics.
	httpMux := http.NewServeMux()
	httpMux.Handle("/api/", api.New(st, alertEngine, hist, process("http"), cfg.Server.IngestKey()))
	httpMux.Handle("/ws/stream", hub)
	httpMux.Handle("/metrics", metrics.Handler())

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler: httpMux,
	}
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
		}
	}()

	// Hot-reload vehicle profiles when the config file changes.
	// Listener ports are fixed for the process lifetime.
	go func() {
		err := config.Watch(ctx, *configPath, func(next *config.Config) {
			p, err := buildProfiles(next.Vehicles)
			if err != nil {
				slog.Error("config reload rejected", "err", err)
				return
			}
			engine.SetProfiles(p)
			slog.Info("vehicle profiles reloaded", "vehicles", len(p))
		})
		if err != nil && ctx.Err() == nil {
			slog.Error("config watcher stopped", "err", err)
		}
	}()

	<-ctx.Done()
	slog.Info("drivelined shutting down")
	httpSrv.Shutdown(context.Background()) //nolint:errcheck
}

// buildProfiles resolves each configured vehicle's tire size into the numeric
// drivetrain profile the derivation engine works with.
func buildProfiles(vehicles []config.Vehicle) ([]compute.Profile, error) {
	profiles := make([]compute.Profile, 0, len(vehicles))
	for _, v := range vehicles {
		t, err := tire.Parse(v.Tire)
		if err != nil {
			return nil, fmt.Errorf("vehicle %q: %w", v.ID, err)
		}
		profiles = append(profiles, compute.Profile{
			ID:              v.ID,
			TireRevsPerMile: t.RevsPerMile(),
			AxleRatio:       v.AxleRatio,
			GearRatios:      v.GearRatios,
			RedlineRPM:      v.RedlineRPM,
		})
	}
	return profiles, nil
}
