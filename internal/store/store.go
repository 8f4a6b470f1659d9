// Package store persists alerts and serves the operator query surface.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/hazardwatch/alert-engine/internal/domain"
)

var (
	// ErrNotFound is returned by single-item lookups for unknown ids.
	ErrNotFound = errors.New("alert not found")

	// ErrUnavailable is returned when the backing medium rejects a write.
	// Callers do not retry; redelivery is the bus's responsibility.
	ErrUnavailable = errors.New("alert store unavailable")
)

// AlertStore is the durable, queryable collection of alerts. The store
// owns identity assignment and creation timestamps. List queries return
// alerts ordered by event timestamp descending and yield an empty slice,
// never an error, when nothing matches.
type AlertStore interface {
	// Create persists a new alert, assigning its id and createdAt. The
	// caller's id and createdAt fields are ignored.
	Create(ctx context.Context, alert *domain.Alert) (*domain.Alert, error)

	GetByID(ctx context.Context, id string) (*domain.Alert, error)

	// Acknowledge flips the acknowledged flag. Idempotent: acknowledging
	// an already-acknowledged alert returns it unchanged without touching
	// acknowledgedAt.
	Acknowledge(ctx context.Context, id string) (*domain.Alert, error)

	// ListSince returns alerts with timestamp >= cutoff.
	ListSince(ctx context.Context, cutoff time.Time) ([]domain.Alert, error)

	ListBySeverity(ctx context.Context, severity domain.Severity) ([]domain.Alert, error)

	ListByType(ctx context.Context, alertType domain.AlertType) ([]domain.Alert, error)

	// ListCriticalUnacknowledged returns unacknowledged alerts whose
	// severity is SEVERE or EXTREME.
	ListCriticalUnacknowledged(ctx context.Context) ([]domain.Alert, error)

	// ListEarthquakes filters earthquake alerts by minimum magnitude when
	// minMagnitude > 0.
	ListEarthquakes(ctx context.Context, minMagnitude float64) ([]domain.Alert, error)

	ListEarthquakesByRegion(ctx context.Context, region string) ([]domain.Alert, error)

	// GetByEarthquakeID returns the earthquake alert with the given
	// upstream id, or ErrNotFound.
	GetByEarthquakeID(ctx context.Context, earthquakeID string) (*domain.Alert, error)

	// ListTsunamis filters by minimum risk score when minRiskScore > 0.
	ListTsunamis(ctx context.Context, minRiskScore int) ([]domain.Alert, error)

	// ListFloods filters by station when stationID is non-empty.
	ListFloods(ctx context.Context, stationID string) ([]domain.Alert, error)

	// ListCME filters by minimum speed when minSpeed > 0.
	ListCME(ctx context.Context, minSpeed float64) ([]domain.Alert, error)

	// ListByBoundingBox returns alerts whose coordinates fall inside the
	// inclusive latitude/longitude box.
	ListByBoundingBox(ctx context.Context, minLat, maxLat, minLon, maxLon float64) ([]domain.Alert, error)
}
