// v1
// internal/coordsim/history.go
package coordsim

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"smartenv/nodes/internal/wire"
)

// History persists pushed sensor readings to Postgres so dashboards can
// query past environment state. Like the journal it is best-effort and
// disabled when no DSN is configured.
type History struct {
	db *sql.DB
	lg *slog.Logger
}

// OpenHistory connects and ensures the schema. Returns nil when dsn is
// empty; a connect or schema failure is returned so the operator notices a
// misconfigured DSN at boot.
func OpenHistory(dsn string, lg *slog.Logger) (*History, error) {
	if dsn == "" {
		return nil, nil
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	h := &History{db: db, lg: lg}
	if err := h.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	lg.Info("history enabled")
	return h, nil
}

func (h *History) ensureSchema() error {
	_, err := h.db.Exec(`CREATE TABLE IF NOT EXISTS sensor_history (
		id SERIAL PRIMARY KEY,
		device TEXT NOT NULL,
		temperature DOUBLE PRECISION NOT NULL,
		humidity DOUBLE PRECISION NOT NULL,
		light INTEGER NOT NULL,
		touch BOOLEAN,
		recorded_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	if err != nil {
		return fmt.Errorf("ensure sensor_history schema: %w", err)
	}
	return nil
}

// Insert appends one reading. Safe on nil; failures are logged and dropped.
func (h *History) Insert(t wire.Telemetry) {
	if h == nil {
		return
	}
	_, err := h.db.Exec(
		`INSERT INTO sensor_history (device, temperature, humidity, light, touch) VALUES ($1, $2, $3, $4, $5)`,
		t.Device, t.Temperature, t.Humidity, t.Light, t.Touch)
	if err != nil {
		h.lg.Warn("history insert failed", "error", err)
	}
}

// Latest returns the most recent stored reading.
func (h *History) Latest() (wire.Telemetry, error) {
	if h == nil {
		return wire.Telemetry{}, sql.ErrNoRows
	}
	row := h.db.QueryRow(
		`SELECT device, temperature, humidity, light, touch FROM sensor_history ORDER BY id DESC LIMIT 1`)
	var t wire.Telemetry
	if err := row.Scan(&t.Device, &t.Temperature, &t.Humidity, &t.Light, &t.Touch); err != nil {
		return wire.Telemetry{}, err
	}
	return t, nil
}

// Close releases the connection pool. Safe on nil.
func (h *History) Close() {
	if h == nil {
		return
	}
	if err := h.db.Close(); err != nil {
		h.lg.Warn("history close failed", "error", err)
	}
}
