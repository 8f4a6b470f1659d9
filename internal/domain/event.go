package domain

import (
	"context"
	"time"
)

// RawEvent is an unprocessed message from a source topic. Commit, when
// set, acknowledges the message offset back to the bus.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// KpIndexEvent is a planetary Kp-index reading from the space weather
// collector. KpIndex is a pointer because collectors occasionally emit
// readings with no value; those are malformed for classification.
type KpIndexEvent struct {
	KpIndex   *float64  `json:"kpIndex"`
	Timestamp time.Time `json:"timestamp"`
}

// EarthquakeEvent is an earthquake detection from the collector. The same
// shape arrives on the tsunami warning topic, where TsunamiRiskScore
// drives classification instead of Magnitude.
type EarthquakeEvent struct {
	EarthquakeID     string    `json:"earthquakeId"`
	Magnitude        *float64  `json:"magnitude"`
	DepthKm          *float64  `json:"depthKm"`
	Latitude         *float64  `json:"latitude"`
	Longitude        *float64  `json:"longitude"`
	EventTime        time.Time `json:"eventTime"`
	Location         string    `json:"location"`
	Region           string    `json:"region"`
	TsunamiRiskScore *int      `json:"tsunamiRiskScore"`
	Dangerous        bool      `json:"dangerous"`
	Catastrophic     bool      `json:"catastrophic"`
	TsunamiWarning   bool      `json:"tsunamiWarning"`
}

// FloodEvent is a river gauge reading with an NWS-style flood severity
// label ("ACTION", "MINOR", "MODERATE", "MAJOR").
type FloodEvent struct {
	StationID      string    `json:"stationId"`
	StationName    string    `json:"stationName"`
	Latitude       *float64  `json:"latitude"`
	Longitude      *float64  `json:"longitude"`
	Timestamp      time.Time `json:"timestamp"`
	WaterLevelFeet *float64  `json:"waterLevelFeet"`
	FloodStageFeet *float64  `json:"floodStageFeet"`
	FloodSeverity  string    `json:"floodSeverity"`
}

// CmeEvent is a coronal mass ejection analysis from the space weather
// collector. MostAccurateSpeed, when present, supersedes the nominal
// Speed. Coordinates arrive as strings (heliographic degrees) and are
// parsed leniently.
type CmeEvent struct {
	ActivityID        string    `json:"activityId"`
	StartTime         time.Time `json:"startTime"`
	SourceLocation    string    `json:"sourceLocation"`
	Note              string    `json:"note"`
	Type              string    `json:"type"`
	Speed             *float64  `json:"speed"`
	MostAccurateSpeed *float64  `json:"mostAccurateSpeed"`
	Latitude          string    `json:"latitude"`
	Longitude         string    `json:"longitude"`
}

// EffectiveSpeed returns the most accurate speed when the analysis
// provides one, otherwise the nominal speed. Nil means no usable speed.
func (e CmeEvent) EffectiveSpeed() *float64 {
	if e.MostAccurateSpeed != nil {
		return e.MostAccurateSpeed
	}
	return e.Speed
}
