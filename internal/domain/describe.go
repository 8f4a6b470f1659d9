package domain

import (
	"fmt"
	"strings"
)

// Description templates follow NOAA/NWS advisory phrasing. They are fixed
// per severity tier and interpolate only values carried by the event, so
// the same event always produces the same text.

func describeGeomagnetic(severity Severity, kp float64) string {
	switch severity {
	case SeverityExtreme:
		return fmt.Sprintf("EXTREME geomagnetic storm detected (Kp=%.2f). "+
			"Widespread power system problems, transformer damage possible. "+
			"Satellite navigation severely degraded. HF radio propagation impossible.", kp)
	case SeveritySevere:
		return fmt.Sprintf("SEVERE geomagnetic storm detected (Kp=%.2f). "+
			"Widespread voltage control problems. Protective systems may trip out key assets. "+
			"Satellite surface charging, navigation degraded for hours.", kp)
	case SeverityModerate:
		return fmt.Sprintf("MODERATE geomagnetic storm detected (Kp=%.2f). "+
			"High-latitude power systems affected. Satellite drag increased. "+
			"HF radio propagation fades at higher latitudes.", kp)
	default:
		return fmt.Sprintf("MINOR geomagnetic storm detected (Kp=%.2f). "+
			"Weak power grid fluctuations. Minor impact on satellite operations.", kp)
	}
}

func describeEarthquake(e EarthquakeEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Magnitude %.1f earthquake detected at %s", deref(e.Magnitude), e.Location)

	if e.DepthKm != nil {
		fmt.Fprintf(&b, ", depth: %.1f km", *e.DepthKm)
	}
	if e.Dangerous {
		b.WriteString(". WARNING: This is classified as a dangerous earthquake.")
	}
	if e.Catastrophic {
		b.WriteString(" CATASTROPHIC EVENT - Expect severe damage.")
	}
	if e.TsunamiWarning {
		b.WriteString(" TSUNAMI WARNING ISSUED.")
	}
	return b.String()
}

func describeTsunami(e EarthquakeEvent, evacuationScore int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "TSUNAMI WARNING: Magnitude %.1f earthquake at %s", deref(e.Magnitude), e.Location)

	if e.TsunamiRiskScore != nil {
		fmt.Fprintf(&b, " with tsunami risk score of %d", *e.TsunamiRiskScore)
	}
	b.WriteString(". Coastal areas should prepare for potential tsunami waves.")

	if e.TsunamiRiskScore != nil && *e.TsunamiRiskScore >= evacuationScore {
		b.WriteString(" IMMEDIATE EVACUATION RECOMMENDED for coastal communities.")
	}
	return b.String()
}

func describeFlood(e FloodEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Flood alert at %s (%s)", e.StationName, e.StationID)

	if e.WaterLevelFeet != nil {
		fmt.Fprintf(&b, ": Water level at %.2f ft", *e.WaterLevelFeet)
	}
	if e.WaterLevelFeet != nil && e.FloodStageFeet != nil {
		fmt.Fprintf(&b, ", %.2f ft above flood stage (%.2f ft)",
			*e.WaterLevelFeet-*e.FloodStageFeet, *e.FloodStageFeet)
	}
	if e.FloodSeverity != "" {
		fmt.Fprintf(&b, ". Flood severity: %s", e.FloodSeverity)
	}

	switch strings.ToUpper(e.FloodSeverity) {
	case "MAJOR":
		b.WriteString(". MAJOR FLOODING - Extensive property damage likely. Evacuate if instructed.")
	case "MODERATE":
		b.WriteString(". Moderate flooding - Some property damage possible.")
	}
	return b.String()
}

func describeCME(e CmeEvent, speed float64, t Thresholds) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Coronal Mass Ejection detected with speed of %.0f km/s", speed)

	if e.Type != "" {
		fmt.Fprintf(&b, " (Type: %s)", e.Type)
	}
	if e.SourceLocation != "" {
		fmt.Fprintf(&b, ". Source: %s", e.SourceLocation)
	}

	switch {
	case speed >= t.CmeExtreme:
		b.WriteString(". EXTREME SPEED - High probability of severe geomagnetic storm. " +
			"Satellite operations and power grids may be significantly affected.")
	case speed >= t.CmeCritical:
		b.WriteString(". CRITICAL - Strong geomagnetic storm possible. " +
			"Monitor for potential impacts to satellites and communications.")
	case speed >= t.CmeMajor:
		b.WriteString(". Moderate geomagnetic storm possible. Minor impacts may occur.")
	}

	if e.Note != "" {
		fmt.Fprintf(&b, " Note: %s", e.Note)
	}
	return b.String()
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
