package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/hazardwatch/alert-engine/internal/domain"
)

// SQLiteStore implements AlertStore on a local SQLite database. SQLite
// serializes writes per connection, which satisfies the concurrent-create
// requirement without in-process locking; there are no cross-record
// multi-writer updates.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and runs
// the schema migration. Use ":memory:" for tests.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single connection avoids SQLITE_BUSY under concurrent processor
	// writes; the driver queues callers instead.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS alerts (
			id TEXT PRIMARY KEY,
			alert_type TEXT NOT NULL,
			severity TEXT NOT NULL,
			kp_value REAL,
			earthquake_id TEXT,
			magnitude REAL,
			depth_km REAL,
			location TEXT,
			region TEXT,
			tsunami_risk_score INTEGER,
			station_id TEXT,
			station_name TEXT,
			water_level_feet REAL,
			flood_stage_feet REAL,
			cme_speed REAL,
			cme_type TEXT,
			latitude REAL,
			longitude REAL,
			description TEXT NOT NULL,
			timestamp DATETIME NOT NULL,
			raw_data BLOB,
			created_at DATETIME NOT NULL,
			acknowledged INTEGER NOT NULL DEFAULT 0,
			acknowledged_at DATETIME
		);

		CREATE INDEX IF NOT EXISTS idx_alerts_timestamp ON alerts(timestamp);
		CREATE INDEX IF NOT EXISTS idx_alerts_severity ON alerts(severity);
		CREATE INDEX IF NOT EXISTS idx_alerts_type ON alerts(alert_type);
		CREATE INDEX IF NOT EXISTS idx_alerts_earthquake_id ON alerts(earthquake_id);
		CREATE INDEX IF NOT EXISTS idx_alerts_station_id ON alerts(station_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const alertColumns = `id, alert_type, severity, kp_value, earthquake_id, magnitude,
	depth_km, location, region, tsunami_risk_score, station_id, station_name,
	water_level_feet, flood_stage_feet, cme_speed, cme_type, latitude, longitude,
	description, timestamp, raw_data, created_at, acknowledged, acknowledged_at`

func (s *SQLiteStore) Create(ctx context.Context, alert *domain.Alert) (*domain.Alert, error) {
	created := *alert
	created.ID = uuid.NewString()
	created.CreatedAt = domain.Now().UTC()
	created.Acknowledged = false
	created.AcknowledgedAt = nil

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO alerts (`+alertColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		created.ID, created.AlertType, created.Severity, created.KpValue,
		created.EarthquakeID, created.Magnitude, created.DepthKm, created.Location,
		created.Region, created.TsunamiRiskScore, created.StationID, created.StationName,
		created.WaterLevelFeet, created.FloodStageFeet, created.CmeSpeed, created.CmeType,
		created.Latitude, created.Longitude, created.Description, created.Timestamp,
		created.RawData, created.CreatedAt, created.Acknowledged, created.AcknowledgedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: insert alert: %v", ErrUnavailable, err)
	}
	return &created, nil
}

func (s *SQLiteStore) GetByID(ctx context.Context, id string) (*domain.Alert, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+alertColumns+` FROM alerts WHERE id = ?`, id)
	return scanAlert(row)
}

func (s *SQLiteStore) Acknowledge(ctx context.Context, id string) (*domain.Alert, error) {
	// The acknowledged=0 guard makes the flip monotonic and keeps
	// acknowledged_at from being overwritten on repeat calls.
	_, err := s.db.ExecContext(ctx, `
		UPDATE alerts SET acknowledged = 1, acknowledged_at = ?
		WHERE id = ? AND acknowledged = 0`,
		domain.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("acknowledge alert: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *SQLiteStore) ListSince(ctx context.Context, cutoff time.Time) ([]domain.Alert, error) {
	return s.queryAlerts(ctx,
		`SELECT `+alertColumns+` FROM alerts WHERE timestamp >= ? ORDER BY timestamp DESC`,
		cutoff)
}

func (s *SQLiteStore) ListBySeverity(ctx context.Context, severity domain.Severity) ([]domain.Alert, error) {
	return s.queryAlerts(ctx,
		`SELECT `+alertColumns+` FROM alerts WHERE severity = ? ORDER BY timestamp DESC`,
		severity)
}

func (s *SQLiteStore) ListByType(ctx context.Context, alertType domain.AlertType) ([]domain.Alert, error) {
	return s.queryAlerts(ctx,
		`SELECT `+alertColumns+` FROM alerts WHERE alert_type = ? ORDER BY timestamp DESC`,
		alertType)
}

func (s *SQLiteStore) ListCriticalUnacknowledged(ctx context.Context) ([]domain.Alert, error) {
	return s.queryAlerts(ctx,
		`SELECT `+alertColumns+` FROM alerts
		 WHERE severity IN (?, ?) AND acknowledged = 0 ORDER BY timestamp DESC`,
		domain.SeveritySevere, domain.SeverityExtreme)
}

func (s *SQLiteStore) ListEarthquakes(ctx context.Context, minMagnitude float64) ([]domain.Alert, error) {
	if minMagnitude > 0 {
		return s.queryAlerts(ctx,
			`SELECT `+alertColumns+` FROM alerts
			 WHERE alert_type = ? AND magnitude >= ? ORDER BY timestamp DESC`,
			domain.AlertTypeEarthquake, minMagnitude)
	}
	return s.ListByType(ctx, domain.AlertTypeEarthquake)
}

func (s *SQLiteStore) ListEarthquakesByRegion(ctx context.Context, region string) ([]domain.Alert, error) {
	return s.queryAlerts(ctx,
		`SELECT `+alertColumns+` FROM alerts
		 WHERE alert_type = ? AND region = ? ORDER BY timestamp DESC`,
		domain.AlertTypeEarthquake, region)
}

func (s *SQLiteStore) GetByEarthquakeID(ctx context.Context, earthquakeID string) (*domain.Alert, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+alertColumns+` FROM alerts
		 WHERE alert_type = ? AND earthquake_id = ? ORDER BY timestamp DESC LIMIT 1`,
		domain.AlertTypeEarthquake, earthquakeID)
	return scanAlert(row)
}

func (s *SQLiteStore) ListTsunamis(ctx context.Context, minRiskScore int) ([]domain.Alert, error) {
	if minRiskScore > 0 {
		return s.queryAlerts(ctx,
			`SELECT `+alertColumns+` FROM alerts
			 WHERE alert_type = ? AND tsunami_risk_score >= ? ORDER BY timestamp DESC`,
			domain.AlertTypeTsunami, minRiskScore)
	}
	return s.ListByType(ctx, domain.AlertTypeTsunami)
}

func (s *SQLiteStore) ListFloods(ctx context.Context, stationID string) ([]domain.Alert, error) {
	if stationID != "" {
		return s.queryAlerts(ctx,
			`SELECT `+alertColumns+` FROM alerts
			 WHERE alert_type = ? AND station_id = ? ORDER BY timestamp DESC`,
			domain.AlertTypeFlood, stationID)
	}
	return s.ListByType(ctx, domain.AlertTypeFlood)
}

func (s *SQLiteStore) ListCME(ctx context.Context, minSpeed float64) ([]domain.Alert, error) {
	if minSpeed > 0 {
		return s.queryAlerts(ctx,
			`SELECT `+alertColumns+` FROM alerts
			 WHERE alert_type = ? AND cme_speed >= ? ORDER BY timestamp DESC`,
			domain.AlertTypeCME, minSpeed)
	}
	return s.ListByType(ctx, domain.AlertTypeCME)
}

func (s *SQLiteStore) ListByBoundingBox(ctx context.Context, minLat, maxLat, minLon, maxLon float64) ([]domain.Alert, error) {
	return s.queryAlerts(ctx,
		`SELECT `+alertColumns+` FROM alerts
		 WHERE latitude BETWEEN ? AND ? AND longitude BETWEEN ? AND ?
		 ORDER BY timestamp DESC`,
		minLat, maxLat, minLon, maxLon)
}

func (s *SQLiteStore) queryAlerts(ctx context.Context, query string, args ...any) ([]domain.Alert, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query alerts: %w", err)
	}
	defer rows.Close()

	alerts := []domain.Alert{}
	for rows.Next() {
		var a domain.Alert
		if err := scanAlertRow(rows.Scan, &a); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alerts: %w", err)
	}
	return alerts, nil
}

func scanAlert(row *sql.Row) (*domain.Alert, error) {
	var a domain.Alert
	err := scanAlertRow(row.Scan, &a)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan alert: %w", err)
	}
	return &a, nil
}

func scanAlertRow(scan func(dest ...any) error, a *domain.Alert) error {
	return scan(
		&a.ID, &a.AlertType, &a.Severity, &a.KpValue, &a.EarthquakeID, &a.Magnitude,
		&a.DepthKm, &a.Location, &a.Region, &a.TsunamiRiskScore, &a.StationID,
		&a.StationName, &a.WaterLevelFeet, &a.FloodStageFeet, &a.CmeSpeed, &a.CmeType,
		&a.Latitude, &a.Longitude, &a.Description, &a.Timestamp, &a.RawData,
		&a.CreatedAt, &a.Acknowledged, &a.AcknowledgedAt,
	)
}
