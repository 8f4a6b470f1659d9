// Package domain models natural-hazard telemetry and the alerts derived
// from it.
//
// # Data Sources
//
// Five upstream collector services publish raw telemetry to Kafka, one
// logical stream per hazard:
//
//	raw.spaceweather.kp   planetary Kp-index readings (NOAA SWPC)
//	raw.earthquake.data   earthquake detections (USGS), plus
//	raw.earthquake.alert  curated significant-event notices
//	raw.tsunami.warning   tsunami risk assessments keyed to earthquakes
//	raw.flood.alert       river gauge readings with NWS flood severity
//	raw.spaceweather.cme  coronal mass ejection analyses (NASA DONKI)
//
// Each stream is consumed independently; there is no cross-hazard
// ordering guarantee and delivery is at-least-once.
//
// # Severity Scales
//
// The severity vocabulary is hazard-dependent. Geomagnetic storms use the
// NOAA G-scale mapping {MINOR, MODERATE, SEVERE, EXTREME}; the remaining
// hazards use {MINOR, MODERATE, MAJOR, CRITICAL, EXTREME}. Labels are
// stored as-is and never compared across hazards except through the
// ordered rank in [Severity.Rank]. Classification thresholds are
// inclusive lower bounds evaluated from the highest tier down; see
// [Classifier].
//
// # Routing
//
// A persisted alert is published to at most one of two downstream topics,
// critical or warning, decided by a static (hazard, severity) table
// resolved at package load. Tsunami alerts always route to critical. See
// [RouteAlert].
package domain
