package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/driveline/driveline/pkg/tire"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultHTTPPort          = 8080
	DefaultUDPPort           = 9601
	DefaultSnapshotTTL       = 2 * time.Minute
	DefaultBroadcastInterval = 5 * time.Second
	DefaultHistoryRetention  = 24 * time.Hour
)

// Config is the top-level daemon configuration.
// Fields map 1:1 to config.example.yaml.
type Config struct {
	Server   ServerConfig  `yaml:"server"`
	Vehicles []Vehicle     `yaml:"vehicles"`
	Alerts   AlertsConfig  `yaml:"alerts"`
	History  HistoryConfig `yaml:"history"`
}

// ServerConfig holds the listener settings.
type ServerConfig struct {
	// HTTPPort is the port the JSON API, WebSocket stream and /metrics
	// endpoint listen on.
	HTTPPort int `yaml:"http_port"`

	// UDPPort is the port the msgpack telemetry listener binds.
	UDPPort int `yaml:"udp_port"`

	// SnapshotTTL is how long a vehicle's derived snapshot stays live
	// without fresh samples before it is evicted.
	SnapshotTTL time.Duration `yaml:"snapshot_ttl"`

	// BroadcastInterval is how often the WebSocket hub pushes the fleet
	// snapshot to connected clients.
	BroadcastInterval time.Duration `yaml:"broadcast_interval"`

	// IngestKeyEnv names the environment variable holding the API key
	// required on POST /api/v1/ingest. Empty disables ingest auth.
	IngestKeyEnv string `yaml:"ingest_key_env"`
}

// IngestKey returns the ingest API key resolved from the environment.
func (s ServerConfig) IngestKey() string {
	if s.IngestKeyEnv == "" {
		return ""
	}
	return os.Getenv(s.IngestKeyEnv)
}

// Vehicle describes one telemetry source and its drivetrain.
type Vehicle struct {
	// ID is a unique, human-readable identifier, matched against the
	// vehicle_id field of incoming samples.
	ID string `yaml:"id"`

	// Tire is the metric tire size, e.g. "275/55R20".
	Tire string `yaml:"tire"`

	// AxleRatio is the final drive ratio.
	AxleRatio float64 `yaml:"axle_ratio"`

	// GearRatios lists the transmission ratios, first gear first.
	GearRatios []float64 `yaml:"gear_ratios"`

	// RedlineRPM is the engine speed ceiling used for state classification.
	RedlineRPM float64 `yaml:"redline_rpm"`
}

// AlertsConfig holds all alerting rules and webhook targets.
type AlertsConfig struct {
	Rules    []AlertRule     `yaml:"rules"`
	Webhooks []WebhookConfig `yaml:"webhooks"`
}

// AlertRule defines a threshold-based alert condition.
type AlertRule struct {
	// Name is the human-readable alert identifier.
	Name string `yaml:"name"`

	// Condition is an expression like "engine_rpm > 6200" or
	// "state == redline".
	Condition string `yaml:"condition"`

	// Severity is one of: critical | warning | info.
	Severity string `yaml:"severity"`

	// Cooldown suppresses re-fires for this duration after an alert fires.
	Cooldown time.Duration `yaml:"cooldown"`
}

// WebhookConfig defines one webhook delivery target.
type WebhookConfig struct {
	// Type is one of: slack | http.
	Type string `yaml:"type"`

	// URLEnv is the name of the environment variable holding the webhook URL.
	URLEnv string `yaml:"url_env"`
}

// URL returns the webhook URL resolved from the environment.
func (w WebhookConfig) URL() string {
	if w.URLEnv == "" {
		return ""
	}
	return os.Getenv(w.URLEnv)
}

// HistoryConfig configures snapshot persistence.
type HistoryConfig struct {
	// Path is the filesystem path for the SQLite database file.
	// Empty disables history.
	Path string `yaml:"path"`

	// Retention is how long historical snapshots are kept before deletion.
	Retention time.Duration `yaml:"retention"`
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with sensible defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:          DefaultHTTPPort,
			UDPPort:           DefaultUDPPort,
			SnapshotTTL:       DefaultSnapshotTTL,
			BroadcastInterval: DefaultBroadcastInterval,
		},
		History: HistoryConfig{
			Retention: DefaultHistoryRetention,
		},
	}
}

// validate checks required fields and structural constraints.
func validate(cfg *Config) error {
	if cfg.Server.SnapshotTTL <= 0 {
		return fmt.Errorf("server.snapshot_ttl must be positive")
	}
	if cfg.Server.BroadcastInterval <= 0 {
		return fmt.Errorf("server.broadcast_interval must be positive")
	}
	if len(cfg.Vehicles) == 0 {
		return fmt.Errorf("at least one vehicle is required")
	}

	seen := make(map[string]bool, len(cfg.Vehicles))
	for i, v := range cfg.Vehicles {
		if v.ID == "" {
			return fmt.Errorf("vehicles[%d]: id is required", i)
		}
		if seen[v.ID] {
			return fmt.Errorf("vehicles[%d]: duplicate id %q", i, v.ID)
		}
		seen[v.ID] = true

		if _, err := tire.Parse(v.Tire); err != nil {
			return fmt.Errorf("vehicles[%d] %q: %w", i, v.ID, err)
		}
		if v.AxleRatio <= 0 {
			return fmt.Errorf("vehicles[%d] %q: axle_ratio must be positive", i, v.ID)
		}
		if len(v.GearRatios) == 0 {
			return fmt.Errorf("vehicles[%d] %q: gear_ratios is required", i, v.ID)
		}
		for g, r := range v.GearRatios {
			if r <= 0 {
				return fmt.Errorf("vehicles[%d] %q: gear_ratios[%d] must be positive", i, v.ID, g)
			}
		}
		if v.RedlineRPM <= 0 {
			return fmt.Errorf("vehicles[%d] %q: redline_rpm must be positive", i, v.ID)
		}
	}

	for i, rule := range cfg.Alerts.Rules {
		if rule.Name == "" {
			return fmt.Errorf("alerts.rules[%d]: name is required", i)
		}
		if rule.Condition == "" {
			return fmt.Errorf("alerts.rules[%d] %q: condition is required", i, rule.Name)
		}
	}
	for i, wh := range cfg.Alerts.Webhooks {
		switch wh.Type {
		case "slack", "http":
		default:
			return fmt.Errorf("alerts.webhooks[%d]: unknown type %q", i, wh.Type)
		}
	}

	if cfg.History.Path != "" && cfg.History.Retention <= 0 {
		return fmt.Errorf("history.retention must be positive")
	}

	return nil
}
