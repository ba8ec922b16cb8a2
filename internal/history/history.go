package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/driveline/driveline/internal/compute"
)

// pruneInterval controls how often the retention loop runs.
const pruneInterval = time.Hour

// tsLayout is the stored timestamp format. Unlike RFC3339Nano it keeps
// trailing zeros, so the TEXT column stays fixed-width and lexicographic
// ordering matches chronological ordering.
const tsLayout = "2006-01-02T15:04:05.000000000Z07:00"

// History persists derived snapshots to SQLite and prunes rows past the
// retention window. Safe for concurrent use; database/sql serializes access.
type History struct {
	db        *sql.DB
	retention time.Duration
}

// Open opens (creating if necessary) the database at path and ensures the
// schema exists. Use ":memory:" for an ephemeral database in tests.
func Open(path string, retention time.Duration) (*History, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}

	h := &History{db: db, retention: retention}
	if err := h.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return h, nil
}

// Close closes the underlying database.
func (h *History) Close() error {
	return h.db.Close()
}

func (h *History) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id TEXT PRIMARY KEY,
			vehicle_id TEXT NOT NULL,
			ts TEXT NOT NULL,
			engine_rpm REAL,
			oss REAL,
			torque_ft_lbs REAL,
			speed_mph REAL,
			horsepower REAL,
			gear INTEGER,
			slip_pct REAL,
			accel_mph_s REAL,
			state TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_vehicle_ts
			ON snapshots (vehicle_id, ts);`,
	}
	for _, q := range queries {
		if _, err := h.db.Exec(q); err != nil {
			return fmt.Errorf("history: init schema: %w", err)
		}
	}
	return nil
}

// Insert persists one snapshot under a fresh row ID.
func (h *History) Insert(snap *compute.Snapshot) error {
	_, err := h.db.Exec(
		`INSERT INTO snapshots
			(id, vehicle_id, ts, engine_rpm, oss, torque_ft_lbs,
			 speed_mph, horsepower, gear, slip_pct, accel_mph_s, state)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		snap.VehicleID,
		snap.Timestamp.UTC().Format(tsLayout),
		snap.EngineRPM,
		snap.OSS,
		snap.TorqueFtLbs,
		snap.SpeedMPH,
		snap.Horsepower,
		snap.Gear,
		snap.SlipPct,
		snap.AccelMPHPerSec,
		snap.State,
	)
	if err != nil {
		return fmt.Errorf("history: insert %s: %w", snap.VehicleID, err)
	}
	return nil
}

// Recent returns up to limit snapshots for the vehicle, newest first.
func (h *History) Recent(vehicleID string, limit int) ([]compute.Snapshot, error) {
	rows, err := h.db.Query(
		`SELECT vehicle_id, ts, engine_rpm, oss, torque_ft_lbs,
		        speed_mph, horsepower, gear, slip_pct, accel_mph_s, state
		 FROM snapshots
		 WHERE vehicle_id = ?
		 ORDER BY ts DESC
		 LIMIT ?`,
		vehicleID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("history: query %s: %w", vehicleID, err)
	}
	defer rows.Close()

	var out []compute.Snapshot
	for rows.Next() {
		var (
			snap compute.Snapshot
			ts   string
		)
		if err := rows.Scan(
			&snap.VehicleID, &ts, &snap.EngineRPM, &snap.OSS, &snap.TorqueFtLbs,
			&snap.SpeedMPH, &snap.Horsepower, &snap.Gear, &snap.SlipPct,
			&snap.AccelMPHPerSec, &snap.State,
		); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		if snap.Timestamp, err = time.Parse(tsLayout, ts); err != nil {
			return nil, fmt.Errorf("history: bad timestamp %q: %w", ts, err)
		}
		// SpeedKPH is derivable; it is not stored.
		out = append(out, snap)
	}
	return out, rows.Err()
}

// Prune deletes rows older than now minus the retention window and returns
// the number of rows removed.
func (h *History) Prune(now time.Time) (int64, error) {
	cutoff := now.Add(-h.retention).UTC().Format(tsLayout)
	res, err := h.db.Exec(`DELETE FROM snapshots WHERE ts < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("history: prune: %w", err)
	}
	return res.RowsAffected()
}

// Run starts the retention prune loop. Blocks until ctx is cancelled.
func (h *History) Run(ctx context.Context) {
	t := time.NewTicker(pruneInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := h.Prune(now)
			if err != nil {
				slog.Error("history: prune failed", "err", err)
				continue
			}
			if n > 0 {
				slog.Debug("history: pruned old snapshots", "rows", n)
			}
		}
	}
}
