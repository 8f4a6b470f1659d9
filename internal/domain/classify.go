package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedEvent marks an inbound event missing a field required for
// classification. Processors log and drop these without persisting.
var ErrMalformedEvent = errors.New("malformed event")

// Thresholds enumerates every per-hazard tier cut-off. All bounds are
// inclusive. The struct is passed by value into NewClassifier and never
// mutated afterward; there is no ambient threshold lookup.
type Thresholds struct {
	// Kp-index tiers for geomagnetic storms. KpMinor doubles as the
	// alert-worthiness gate: readings below it are discarded.
	KpMinor    float64
	KpModerate float64
	KpSevere   float64
	KpExtreme  float64

	// Earthquake magnitude tiers. QuakeModerate doubles as the gate.
	QuakeModerate float64
	QuakeMajor    float64
	QuakeCritical float64
	QuakeExtreme  float64

	// CME speed tiers in km/s. CmeModerate doubles as the gate.
	CmeModerate float64
	CmeMajor    float64
	CmeCritical float64
	CmeExtreme  float64

	// Tsunami risk score tiers (0-100).
	TsunamiMajor    int
	TsunamiCritical int
	TsunamiExtreme  int
}

// DefaultThresholds returns the operational tier cut-offs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		KpMinor:    4,
		KpModerate: 5,
		KpSevere:   6,
		KpExtreme:  8,

		QuakeModerate: 5.0,
		QuakeMajor:    6.0,
		QuakeCritical: 7.0,
		QuakeExtreme:  8.0,

		CmeModerate: 500,
		CmeMajor:    1000,
		CmeCritical: 1500,
		CmeExtreme:  2000,

		TsunamiMajor:    30,
		TsunamiCritical: 50,
		TsunamiExtreme:  70,
	}
}

// Classification is the outcome of running one inbound event through its
// hazard's severity rules. Worthy=false means the event is discarded
// without persisting; Severity and Description are still populated for
// logging.
type Classification struct {
	Severity    Severity
	Worthy      bool
	Description string
}

// Classifier maps raw hazard metrics to severity tiers. Every method is
// deterministic and side-effect free: the same event always yields the
// same classification and description.
type Classifier struct {
	t Thresholds
}

// NewClassifier binds an immutable threshold set.
func NewClassifier(t Thresholds) *Classifier {
	return &Classifier{t: t}
}

// Kp classifies a geomagnetic Kp-index reading. Readings below the minor
// threshold are not alert-worthy. A missing Kp value is malformed.
func (c *Classifier) Kp(e KpIndexEvent) (Classification, error) {
	if e.KpIndex == nil {
		return Classification{}, fmt.Errorf("%w: kpIndex is required", ErrMalformedEvent)
	}
	kp := *e.KpIndex

	var severity Severity
	switch {
	case kp >= c.t.KpExtreme:
		severity = SeverityExtreme
	case kp >= c.t.KpSevere:
		severity = SeveritySevere
	case kp >= c.t.KpModerate:
		severity = SeverityModerate
	default:
		severity = SeverityMinor
	}

	return Classification{
		Severity:    severity,
		Worthy:      kp >= c.t.KpMinor,
		Description: describeGeomagnetic(severity, kp),
	}, nil
}

// Earthquake classifies an earthquake detection by magnitude. Events
// below magnitude 5.0 (the moderate threshold) are not alert-worthy.
func (c *Classifier) Earthquake(e EarthquakeEvent) (Classification, error) {
	if e.Magnitude == nil {
		return Classification{}, fmt.Errorf("%w: magnitude is required", ErrMalformedEvent)
	}
	m := *e.Magnitude

	var severity Severity
	switch {
	case m >= c.t.QuakeExtreme:
		severity = SeverityExtreme
	case m >= c.t.QuakeCritical:
		severity = SeverityCritical
	case m >= c.t.QuakeMajor:
		severity = SeverityMajor
	case m >= c.t.QuakeModerate:
		severity = SeverityModerate
	default:
		severity = SeverityMinor
	}

	return Classification{
		Severity:    severity,
		Worthy:      m >= c.t.QuakeModerate,
		Description: describeEarthquake(e),
	}, nil
}

// Tsunami classifies a tsunami warning by risk score. Always alert-worthy.
// A missing score is treated as CRITICAL: an assessment the collector
// could not quantify is assumed dangerous, not ignorable.
func (c *Classifier) Tsunami(e EarthquakeEvent) (Classification, error) {
	severity := SeverityCritical
	if e.TsunamiRiskScore != nil {
		score := *e.TsunamiRiskScore
		switch {
		case score >= c.t.TsunamiExtreme:
			severity = SeverityExtreme
		case score >= c.t.TsunamiCritical:
			severity = SeverityCritical
		case score >= c.t.TsunamiMajor:
			severity = SeverityMajor
		default:
			severity = SeverityModerate
		}
	}

	return Classification{
		Severity:    severity,
		Worthy:      true,
		Description: describeTsunami(e, c.t.TsunamiExtreme),
	}, nil
}

// Flood classifies a gauge reading from the externally supplied NWS flood
// severity label. Always alert-worthy; unknown or absent labels map to
// MINOR.
func (c *Classifier) Flood(e FloodEvent) (Classification, error) {
	var severity Severity
	switch strings.ToUpper(e.FloodSeverity) {
	case "MAJOR":
		severity = SeverityCritical
	case "MODERATE":
		severity = SeverityMajor
	case "MINOR":
		severity = SeverityModerate
	default: // "ACTION", unknown, or absent
		severity = SeverityMinor
	}

	return Classification{
		Severity:    severity,
		Worthy:      true,
		Description: describeFlood(e),
	}, nil
}

// CME classifies a coronal mass ejection by its effective speed,
// preferring the most accurate analysis speed over the nominal one. An
// analysis with no speed at all is discarded, not treated as malformed:
// DONKI routinely publishes early analyses before a speed fit exists.
func (c *Classifier) CME(e CmeEvent) (Classification, error) {
	speed := e.EffectiveSpeed()
	if speed == nil {
		return Classification{Severity: SeverityMinor, Worthy: false}, nil
	}
	s := *speed

	var severity Severity
	switch {
	case s >= c.t.CmeExtreme:
		severity = SeverityExtreme
	case s >= c.t.CmeCritical:
		severity = SeverityCritical
	case s >= c.t.CmeMajor:
		severity = SeverityMajor
	case s >= c.t.CmeModerate:
		severity = SeverityModerate
	default:
		severity = SeverityMinor
	}

	return Classification{
		Severity:    severity,
		Worthy:      s >= c.t.CmeModerate,
		Description: describeCME(e, s, c.t),
	}, nil
}

// ParseCoordinate converts a string coordinate (as emitted by the CME
// collector) to a float pointer. Empty or unparseable values yield nil.
func ParseCoordinate(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
