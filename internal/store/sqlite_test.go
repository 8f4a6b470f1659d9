package store

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazardwatch/alert-engine/internal/domain"
)

func f64(v float64) *float64 { return &v }
func i(v int) *int           { return &v }
func str(v string) *string   { return &v }

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func quakeAlert(id string, magnitude float64, ts time.Time) *domain.Alert {
	return &domain.Alert{
		AlertType:    domain.AlertTypeEarthquake,
		Severity:     domain.SeverityCritical,
		EarthquakeID: str(id),
		Magnitude:    f64(magnitude),
		Region:       str("Alaska"),
		Latitude:     f64(61.2),
		Longitude:    f64(-149.9),
		Description:  "Magnitude earthquake detected",
		Timestamp:    ts,
	}
}

func TestCreate_AssignsIdentityAndCreatedAt(t *testing.T) {
	s := setupStore(t)

	frozen := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(frozen))
	t.Cleanup(func() { domain.SetClock(nil) })

	in := quakeAlert("us7000aaaa", 7.1, time.Now().UTC())
	in.ID = "caller-supplied" // must be ignored
	in.Acknowledged = true    // must be reset

	created, err := s.Create(context.Background(), in)
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.NotEqual(t, "caller-supplied", created.ID)
	assert.Equal(t, frozen, created.CreatedAt)
	assert.False(t, created.Acknowledged)
	assert.Nil(t, created.AcknowledgedAt)

	got, err := s.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AlertTypeEarthquake, got.AlertType)
	assert.Equal(t, domain.SeverityCritical, got.Severity)
	require.NotNil(t, got.Magnitude)
	assert.Equal(t, 7.1, *got.Magnitude)
	assert.Nil(t, got.KpValue, "hazard fields of other types stay null")
	assert.Nil(t, got.StationID)
}

func TestCreate_DistinctIDs(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	a, err := s.Create(ctx, quakeAlert("us7000bbbb", 6.2, time.Now().UTC()))
	require.NoError(t, err)
	b, err := s.Create(ctx, quakeAlert("us7000bbbb", 6.2, time.Now().UTC()))
	require.NoError(t, err)

	// Redelivered events create duplicate alerts with fresh identities.
	assert.NotEqual(t, a.ID, b.ID)
}

func TestGetByID_NotFound(t *testing.T) {
	s := setupStore(t)
	_, err := s.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAcknowledge_Idempotent(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	fake := clockwork.NewFakeClockAt(time.Date(2026, 6, 2, 12, 0, 0, 0, time.UTC))
	domain.SetClock(fake)
	t.Cleanup(func() { domain.SetClock(nil) })

	created, err := s.Create(ctx, quakeAlert("us7000cccc", 8.2, time.Now().UTC()))
	require.NoError(t, err)

	first, err := s.Acknowledge(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, first.Acknowledged)
	require.NotNil(t, first.AcknowledgedAt)

	fake.Advance(time.Hour)

	second, err := s.Acknowledge(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, second.Acknowledged)
	require.NotNil(t, second.AcknowledgedAt)
	assert.True(t, first.AcknowledgedAt.Equal(*second.AcknowledgedAt),
		"repeat acknowledge must not overwrite acknowledgedAt")
}

func TestAcknowledge_NotFound(t *testing.T) {
	s := setupStore(t)
	_, err := s.Acknowledge(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListSince_OrderedDescending(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	for _, offset := range []time.Duration{1 * time.Hour, 3 * time.Hour, 2 * time.Hour} {
		_, err := s.Create(ctx, quakeAlert("eq", 6.0, base.Add(offset)))
		require.NoError(t, err)
	}

	alerts, err := s.ListSince(ctx, base.Add(90*time.Minute))
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.True(t, alerts[0].Timestamp.Equal(base.Add(3*time.Hour)), "got %v", alerts[0].Timestamp)
	assert.True(t, alerts[1].Timestamp.Equal(base.Add(2*time.Hour)), "got %v", alerts[1].Timestamp)
}

func TestListSince_Empty(t *testing.T) {
	s := setupStore(t)
	alerts, err := s.ListSince(context.Background(), time.Now().UTC())
	require.NoError(t, err)
	assert.Empty(t, alerts)
	assert.NotNil(t, alerts, "empty result is a slice, not nil")
}

func TestListBySeverityAndType(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := s.Create(ctx, quakeAlert("eq1", 7.0, now))
	require.NoError(t, err)
	_, err = s.Create(ctx, &domain.Alert{
		AlertType:   domain.AlertTypeGeomagneticStorm,
		Severity:    domain.SeveritySevere,
		KpValue:     f64(6.7),
		Description: "storm",
		Timestamp:   now,
	})
	require.NoError(t, err)

	bySev, err := s.ListBySeverity(ctx, domain.SeveritySevere)
	require.NoError(t, err)
	require.Len(t, bySev, 1)
	assert.Equal(t, domain.AlertTypeGeomagneticStorm, bySev[0].AlertType)

	byType, err := s.ListByType(ctx, domain.AlertTypeEarthquake)
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, domain.SeverityCritical, byType[0].Severity)
}

func TestListCriticalUnacknowledged(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	severe, err := s.Create(ctx, &domain.Alert{
		AlertType: domain.AlertTypeGeomagneticStorm, Severity: domain.SeveritySevere,
		Description: "severe storm", Timestamp: now,
	})
	require.NoError(t, err)
	extreme, err := s.Create(ctx, &domain.Alert{
		AlertType: domain.AlertTypeGeomagneticStorm, Severity: domain.SeverityExtreme,
		Description: "extreme storm", Timestamp: now,
	})
	require.NoError(t, err)
	// CRITICAL is deliberately outside the operator's critical view.
	_, err = s.Create(ctx, quakeAlert("eq-critical", 7.5, now))
	require.NoError(t, err)

	alerts, err := s.ListCriticalUnacknowledged(ctx)
	require.NoError(t, err)
	assert.Len(t, alerts, 2)

	_, err = s.Acknowledge(ctx, severe.ID)
	require.NoError(t, err)
	_, err = s.Acknowledge(ctx, extreme.ID)
	require.NoError(t, err)

	alerts, err = s.ListCriticalUnacknowledged(ctx)
	require.NoError(t, err)
	assert.Empty(t, alerts, "acknowledging everything empties the critical view")
}

func TestEarthquakeQueries(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := s.Create(ctx, quakeAlert("us7000dddd", 6.1, now))
	require.NoError(t, err)
	small := quakeAlert("us7000eeee", 5.2, now)
	small.Region = str("Chile")
	_, err = s.Create(ctx, small)
	require.NoError(t, err)

	all, err := s.ListEarthquakes(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	big, err := s.ListEarthquakes(ctx, 6.0)
	require.NoError(t, err)
	require.Len(t, big, 1)
	assert.Equal(t, "us7000dddd", *big[0].EarthquakeID)

	byRegion, err := s.ListEarthquakesByRegion(ctx, "Chile")
	require.NoError(t, err)
	require.Len(t, byRegion, 1)
	assert.Equal(t, "us7000eeee", *byRegion[0].EarthquakeID)

	byID, err := s.GetByEarthquakeID(ctx, "us7000dddd")
	require.NoError(t, err)
	assert.Equal(t, domain.AlertTypeEarthquake, byID.AlertType)

	_, err = s.GetByEarthquakeID(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTsunamiFloodCmeQueries(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := s.Create(ctx, &domain.Alert{
		AlertType: domain.AlertTypeTsunami, Severity: domain.SeverityExtreme,
		TsunamiRiskScore: i(82), Description: "tsunami", Timestamp: now,
	})
	require.NoError(t, err)
	_, err = s.Create(ctx, &domain.Alert{
		AlertType: domain.AlertTypeTsunami, Severity: domain.SeverityMajor,
		TsunamiRiskScore: i(35), Description: "tsunami", Timestamp: now,
	})
	require.NoError(t, err)
	_, err = s.Create(ctx, &domain.Alert{
		AlertType: domain.AlertTypeFlood, Severity: domain.SeverityCritical,
		StationID: str("07374000"), Description: "flood", Timestamp: now,
	})
	require.NoError(t, err)
	_, err = s.Create(ctx, &domain.Alert{
		AlertType: domain.AlertTypeCME, Severity: domain.SeverityExtreme,
		CmeSpeed: f64(2200), Description: "cme", Timestamp: now,
	})
	require.NoError(t, err)

	tsunamis, err := s.ListTsunamis(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, tsunamis, 2)

	risky, err := s.ListTsunamis(ctx, 50)
	require.NoError(t, err)
	require.Len(t, risky, 1)
	assert.Equal(t, 82, *risky[0].TsunamiRiskScore)

	floods, err := s.ListFloods(ctx, "07374000")
	require.NoError(t, err)
	assert.Len(t, floods, 1)

	none, err := s.ListFloods(ctx, "other-station")
	require.NoError(t, err)
	assert.Empty(t, none)

	fast, err := s.ListCME(ctx, 2000)
	require.NoError(t, err)
	require.Len(t, fast, 1)
	assert.Equal(t, 2200.0, *fast[0].CmeSpeed)
}

func TestListByBoundingBox(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	inside := quakeAlert("inside", 6.0, now)
	inside.Latitude = f64(34.0)
	inside.Longitude = f64(-118.0)
	_, err := s.Create(ctx, inside)
	require.NoError(t, err)

	edge := quakeAlert("edge", 6.0, now)
	edge.Latitude = f64(29.0)
	edge.Longitude = f64(-123.0)
	_, err = s.Create(ctx, edge)
	require.NoError(t, err)

	outside := quakeAlert("outside", 6.0, now)
	outside.Latitude = f64(40.0)
	outside.Longitude = f64(-118.0)
	_, err = s.Create(ctx, outside)
	require.NoError(t, err)

	// lat 34.0 +/- 5, lon -118.0 +/- 5: bounds are inclusive.
	alerts, err := s.ListByBoundingBox(ctx, 29.0, 39.0, -123.0, -113.0)
	require.NoError(t, err)
	assert.Len(t, alerts, 2)
}
