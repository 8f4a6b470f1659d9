package domain

import "time"

// AlertType identifies the hazard category an alert was derived from.
type AlertType string

const (
	AlertTypeGeomagneticStorm AlertType = "GEOMAGNETIC_STORM"
	AlertTypeEarthquake       AlertType = "EARTHQUAKE"
	AlertTypeTsunami          AlertType = "TSUNAMI"
	AlertTypeFlood            AlertType = "FLOOD"
	AlertTypeCME              AlertType = "CME"
)

// AlertTypes lists every hazard category, in the order exposed by the API.
func AlertTypes() []AlertType {
	return []AlertType{
		AlertTypeGeomagneticStorm,
		AlertTypeEarthquake,
		AlertTypeTsunami,
		AlertTypeFlood,
		AlertTypeCME,
	}
}

// Severity is the classified urgency tier of an alert. The label set is
// hazard-dependent; use Rank for ordering, never string comparison.
type Severity string

const (
	SeverityMinor    Severity = "MINOR"
	SeverityModerate Severity = "MODERATE"
	SeverityMajor    Severity = "MAJOR"
	SeveritySevere   Severity = "SEVERE"
	SeverityCritical Severity = "CRITICAL"
	SeverityExtreme  Severity = "EXTREME"
)

var severityRank = map[Severity]int{
	SeverityMinor:    1,
	SeverityModerate: 2,
	SeverityMajor:    3,
	SeveritySevere:   4,
	SeverityCritical: 5,
	SeverityExtreme:  6,
}

// Rank returns the ordinal position of the severity, 0 for unknown labels.
func (s Severity) Rank() int {
	return severityRank[s]
}

// Valid reports whether s is one of the known severity labels.
func (s Severity) Valid() bool {
	return severityRank[s] != 0
}

// CriticalSeverities is the set treated as critical by the
// critical-unacknowledged query. Note CRITICAL itself is not in the set:
// the operator surface inherited the geomagnetic {SEVERE, EXTREME}
// convention for its "needs attention now" view.
func CriticalSeverities() []Severity {
	return []Severity{SeveritySevere, SeverityExtreme}
}

// Alert is the canonical persisted record produced when a hazard event
// crosses its alert-worthiness gate. ID and CreatedAt are assigned by the
// store on creation and are immutable, as are AlertType, Severity,
// Description, Timestamp, and every hazard-specific field. Only the
// acknowledgement pair may change, exactly once, false→true.
type Alert struct {
	ID        string    `json:"id"`
	AlertType AlertType `json:"alertType"`
	Severity  Severity  `json:"severity"`

	// Geomagnetic storm fields.
	KpValue *float64 `json:"kpValue,omitempty"`

	// Earthquake fields (Location/Region/coordinates are shared with
	// tsunami alerts, which copy them from the source earthquake).
	EarthquakeID *string  `json:"earthquakeId,omitempty"`
	Magnitude    *float64 `json:"magnitude,omitempty"`
	DepthKm      *float64 `json:"depthKm,omitempty"`
	Location     *string  `json:"location,omitempty"`
	Region       *string  `json:"region,omitempty"`

	// Tsunami fields.
	TsunamiRiskScore *int `json:"tsunamiRiskScore,omitempty"`

	// Flood fields.
	StationID      *string  `json:"stationId,omitempty"`
	StationName    *string  `json:"stationName,omitempty"`
	WaterLevelFeet *float64 `json:"waterLevelFeet,omitempty"`
	FloodStageFeet *float64 `json:"floodStageFeet,omitempty"`

	// CME fields.
	CmeSpeed *float64 `json:"cmeSpeed,omitempty"`
	CmeType  *string  `json:"cmeType,omitempty"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`

	// RawData is an audit snapshot of the originating event. Stored, never
	// served or published.
	RawData []byte `json:"-"`

	CreatedAt      time.Time  `json:"createdAt"`
	Acknowledged   bool       `json:"acknowledged"`
	AcknowledgedAt *time.Time `json:"acknowledgedAt,omitempty"`
}

// Channel names a downstream publication target.
type Channel string

const (
	// ChannelNone means the alert is persisted but not published.
	ChannelNone     Channel = ""
	ChannelCritical Channel = "critical"
	ChannelWarning  Channel = "warning"
)

// PartitionKey is the Kafka message key for a published alert, chosen so
// alerts of the same type and tier land on the same partition.
func (a *Alert) PartitionKey() string {
	return string(a.AlertType) + "-" + string(a.Severity)
}
