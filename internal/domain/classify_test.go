package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }
func i(v int) *int           { return &v }

func testClassifier() *Classifier {
	return NewClassifier(DefaultThresholds())
}

func TestClassifier_Kp_Tiers(t *testing.T) {
	tests := []struct {
		kp       float64
		severity Severity
		worthy   bool
	}{
		{3.5, SeverityMinor, false},
		{4.0, SeverityMinor, true},
		{4.9, SeverityMinor, true},
		{5.0, SeverityModerate, true},
		{6.0, SeveritySevere, true},
		{7.9, SeveritySevere, true},
		{8.0, SeverityExtreme, true},
		{9.0, SeverityExtreme, true},
	}

	c := testClassifier()
	for _, tt := range tests {
		cls, err := c.Kp(KpIndexEvent{KpIndex: f64(tt.kp), Timestamp: time.Now()})
		require.NoError(t, err)
		assert.Equal(t, tt.severity, cls.Severity, "kp=%v", tt.kp)
		assert.Equal(t, tt.worthy, cls.Worthy, "kp=%v", tt.kp)
	}
}

func TestClassifier_Kp_MissingValue(t *testing.T) {
	_, err := testClassifier().Kp(KpIndexEvent{})
	require.ErrorIs(t, err, ErrMalformedEvent)
}

func TestClassifier_Kp_Description(t *testing.T) {
	cls, err := testClassifier().Kp(KpIndexEvent{KpIndex: f64(8.33)})
	require.NoError(t, err)
	assert.Contains(t, cls.Description, "EXTREME geomagnetic storm detected (Kp=8.33)")
	assert.Contains(t, cls.Description, "transformer damage possible")
}

func TestClassifier_Earthquake_Tiers(t *testing.T) {
	tests := []struct {
		magnitude float64
		severity  Severity
		worthy    bool
	}{
		{4.9, SeverityMinor, false},
		{5.0, SeverityModerate, true},
		{5.9, SeverityModerate, true},
		{6.0, SeverityMajor, true},
		{7.0, SeverityCritical, true},
		{8.0, SeverityExtreme, true},
		{9.5, SeverityExtreme, true},
	}

	c := testClassifier()
	for _, tt := range tests {
		cls, err := c.Earthquake(EarthquakeEvent{Magnitude: f64(tt.magnitude)})
		require.NoError(t, err)
		assert.Equal(t, tt.severity, cls.Severity, "magnitude=%v", tt.magnitude)
		assert.Equal(t, tt.worthy, cls.Worthy, "magnitude=%v", tt.magnitude)
	}
}

// Severity is monotonic non-decreasing in magnitude.
func TestClassifier_Earthquake_Monotonic(t *testing.T) {
	c := testClassifier()
	prev := 0
	for m := 0.0; m <= 10.0; m += 0.1 {
		cls, err := c.Earthquake(EarthquakeEvent{Magnitude: f64(m)})
		require.NoError(t, err)
		rank := cls.Severity.Rank()
		assert.GreaterOrEqual(t, rank, prev, "magnitude=%v", m)
		prev = rank
	}
}

func TestClassifier_Earthquake_MissingMagnitude(t *testing.T) {
	_, err := testClassifier().Earthquake(EarthquakeEvent{EarthquakeID: "us7000abcd"})
	require.ErrorIs(t, err, ErrMalformedEvent)
}

func TestClassifier_Earthquake_Description(t *testing.T) {
	cls, err := testClassifier().Earthquake(EarthquakeEvent{
		Magnitude:      f64(7.2),
		DepthKm:        f64(12.5),
		Location:       "42 km SW of Anchorage, Alaska",
		Dangerous:      true,
		Catastrophic:   true,
		TsunamiWarning: true,
	})
	require.NoError(t, err)
	assert.Contains(t, cls.Description, "Magnitude 7.2 earthquake detected at 42 km SW of Anchorage, Alaska")
	assert.Contains(t, cls.Description, "depth: 12.5 km")
	assert.Contains(t, cls.Description, "dangerous earthquake")
	assert.Contains(t, cls.Description, "CATASTROPHIC EVENT")
	assert.Contains(t, cls.Description, "TSUNAMI WARNING ISSUED")
}

func TestClassifier_Tsunami_Tiers(t *testing.T) {
	tests := []struct {
		score    *int
		severity Severity
	}{
		{nil, SeverityCritical},
		{i(0), SeverityModerate},
		{i(29), SeverityModerate},
		{i(30), SeverityMajor},
		{i(50), SeverityCritical},
		{i(69), SeverityCritical},
		{i(70), SeverityExtreme},
		{i(100), SeverityExtreme},
	}

	c := testClassifier()
	for _, tt := range tests {
		cls, err := c.Tsunami(EarthquakeEvent{Magnitude: f64(7.5), TsunamiRiskScore: tt.score})
		require.NoError(t, err)
		assert.Equal(t, tt.severity, cls.Severity, "score=%v", tt.score)
		assert.True(t, cls.Worthy, "tsunami warnings are always alert-worthy")
	}
}

func TestClassifier_Tsunami_EvacuationLanguage(t *testing.T) {
	c := testClassifier()

	cls, err := c.Tsunami(EarthquakeEvent{Magnitude: f64(8.1), Location: "off the coast of Honshu", TsunamiRiskScore: i(85)})
	require.NoError(t, err)
	assert.Contains(t, cls.Description, "IMMEDIATE EVACUATION RECOMMENDED")

	cls, err = c.Tsunami(EarthquakeEvent{Magnitude: f64(6.2), TsunamiRiskScore: i(40)})
	require.NoError(t, err)
	assert.NotContains(t, cls.Description, "IMMEDIATE EVACUATION")
	assert.Contains(t, cls.Description, "Coastal areas should prepare")
}

func TestClassifier_Flood_LabelMapping(t *testing.T) {
	tests := []struct {
		label    string
		severity Severity
	}{
		{"MAJOR", SeverityCritical},
		{"major", SeverityCritical},
		{"MODERATE", SeverityMajor},
		{"MINOR", SeverityModerate},
		{"ACTION", SeverityMinor},
		{"bogus", SeverityMinor},
		{"", SeverityMinor},
	}

	c := testClassifier()
	for _, tt := range tests {
		cls, err := c.Flood(FloodEvent{StationID: "07374000", FloodSeverity: tt.label})
		require.NoError(t, err)
		assert.Equal(t, tt.severity, cls.Severity, "label=%q", tt.label)
		assert.True(t, cls.Worthy, "flood readings are always alert-worthy")
	}
}

func TestClassifier_Flood_Description(t *testing.T) {
	cls, err := testClassifier().Flood(FloodEvent{
		StationID:      "07374000",
		StationName:    "Mississippi River at Baton Rouge",
		WaterLevelFeet: f64(38.75),
		FloodStageFeet: f64(35.0),
		FloodSeverity:  "MAJOR",
	})
	require.NoError(t, err)
	assert.Contains(t, cls.Description, "Flood alert at Mississippi River at Baton Rouge (07374000)")
	assert.Contains(t, cls.Description, "Water level at 38.75 ft")
	assert.Contains(t, cls.Description, "3.75 ft above flood stage (35.00 ft)")
	assert.Contains(t, cls.Description, "MAJOR FLOODING")
}

func TestClassifier_CME_Tiers(t *testing.T) {
	tests := []struct {
		speed    float64
		severity Severity
		worthy   bool
	}{
		{350, SeverityMinor, false},
		{500, SeverityModerate, true},
		{999, SeverityModerate, true},
		{1000, SeverityMajor, true},
		{1500, SeverityCritical, true},
		{2000, SeverityExtreme, true},
		{3200, SeverityExtreme, true},
	}

	c := testClassifier()
	for _, tt := range tests {
		cls, err := c.CME(CmeEvent{Speed: f64(tt.speed)})
		require.NoError(t, err)
		assert.Equal(t, tt.severity, cls.Severity, "speed=%v", tt.speed)
		assert.Equal(t, tt.worthy, cls.Worthy, "speed=%v", tt.speed)
	}
}

func TestClassifier_CME_PrefersMostAccurateSpeed(t *testing.T) {
	cls, err := testClassifier().CME(CmeEvent{
		Speed:             f64(800),
		MostAccurateSpeed: f64(2100),
	})
	require.NoError(t, err)
	assert.Equal(t, SeverityExtreme, cls.Severity)
	assert.Contains(t, cls.Description, "speed of 2100 km/s")
}

func TestClassifier_CME_NoSpeedDiscarded(t *testing.T) {
	cls, err := testClassifier().CME(CmeEvent{ActivityID: "2026-08-01T12:00:00-CME-001"})
	require.NoError(t, err)
	assert.False(t, cls.Worthy)
}

func TestClassifier_CME_Description(t *testing.T) {
	cls, err := testClassifier().CME(CmeEvent{
		Type:           "S",
		SourceLocation: "N12W34",
		Note:           "Partial halo event.",
		Speed:          f64(1650),
	})
	require.NoError(t, err)
	assert.Contains(t, cls.Description, "speed of 1650 km/s")
	assert.Contains(t, cls.Description, "(Type: S)")
	assert.Contains(t, cls.Description, "Source: N12W34")
	assert.Contains(t, cls.Description, "CRITICAL - Strong geomagnetic storm possible")
	assert.Contains(t, cls.Description, "Note: Partial halo event.")
}

func TestParseCoordinate(t *testing.T) {
	require.Nil(t, ParseCoordinate(""))
	require.Nil(t, ParseCoordinate("N12"))
	v := ParseCoordinate("-14.5")
	require.NotNil(t, v)
	assert.Equal(t, -14.5, *v)
}
