package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hazardwatch/alert-engine/internal/domain"
	"github.com/hazardwatch/alert-engine/internal/observability"
	"github.com/hazardwatch/alert-engine/internal/store"
)

const hazardFlood = "flood"

// Flood ingests river gauge readings. The collector has already judged
// flood severity, so every reading becomes an alert; the label only maps
// to a tier.
type Flood struct {
	core
}

func NewFlood(classifier *domain.Classifier, st store.AlertStore, pub Publisher, logger *slog.Logger, metrics *observability.Metrics) *Flood {
	return &Flood{core: newCore(classifier, st, pub, logger, metrics)}
}

func (p *Flood) Handle(ctx context.Context, raw domain.RawEvent) {
	defer p.observe(hazardFlood, time.Now())

	var event domain.FloodEvent
	if err := json.Unmarshal(raw.Value, &event); err != nil {
		p.dropMalformed(hazardFlood, err, raw)
		return
	}
	if event.Timestamp.IsZero() {
		p.dropMalformed(hazardFlood, fmt.Errorf("%w: timestamp is required", domain.ErrMalformedEvent), raw)
		return
	}

	cls, err := p.classifier.Flood(event)
	if err != nil {
		p.dropMalformed(hazardFlood, err, raw)
		return
	}

	p.logger.Info("flood reading received",
		"station_id", event.StationID,
		"station_name", event.StationName,
		"flood_severity", event.FloodSeverity,
		"severity", cls.Severity,
	)

	p.persistAndPublish(ctx, hazardFlood, &domain.Alert{
		AlertType:      domain.AlertTypeFlood,
		Severity:       cls.Severity,
		StationID:      optString(event.StationID),
		StationName:    optString(event.StationName),
		WaterLevelFeet: event.WaterLevelFeet,
		FloodStageFeet: event.FloodStageFeet,
		Latitude:       event.Latitude,
		Longitude:      event.Longitude,
		Description:    cls.Description,
		Timestamp:      event.Timestamp,
		RawData:        raw.Value,
	})
}
