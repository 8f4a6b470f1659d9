package domain

// routingTable maps (hazard, severity) to a publication channel. Resolved
// once at package load; no per-event dispatch logic beyond the lookup.
//
// Tsunami alerts route to critical regardless of tier. Earthquake EXTREME
// routes to critical alongside CRITICAL and MAJOR; earlier revisions of
// the threshold tables left EXTREME unrouted, which meant the worst
// earthquakes were persisted but never fanned out.
var routingTable = map[AlertType]map[Severity]Channel{
	AlertTypeGeomagneticStorm: {
		SeverityExtreme:  ChannelCritical,
		SeveritySevere:   ChannelCritical,
		SeverityModerate: ChannelWarning,
		SeverityMinor:    ChannelWarning,
	},
	AlertTypeEarthquake: {
		SeverityExtreme:  ChannelCritical,
		SeverityCritical: ChannelCritical,
		SeverityMajor:    ChannelCritical,
		SeverityModerate: ChannelWarning,
	},
	AlertTypeTsunami: {
		SeverityExtreme:  ChannelCritical,
		SeverityCritical: ChannelCritical,
		SeverityMajor:    ChannelCritical,
		SeverityModerate: ChannelCritical,
		SeverityMinor:    ChannelCritical,
	},
	AlertTypeFlood: {
		SeverityCritical: ChannelCritical,
		SeverityMajor:    ChannelCritical,
		SeverityModerate: ChannelWarning,
	},
	AlertTypeCME: {
		SeverityExtreme:  ChannelCritical,
		SeverityCritical: ChannelCritical,
		SeverityMajor:    ChannelWarning,
		SeverityModerate: ChannelWarning,
	},
}

// RouteAlert decides which downstream channel a persisted alert is
// published to. ChannelNone means persist-only.
func RouteAlert(t AlertType, s Severity) Channel {
	return routingTable[t][s]
}
