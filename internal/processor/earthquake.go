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

const hazardEarthquake = "earthquake"

// Earthquake ingests earthquake detections and raises alerts for
// magnitude 5.0 and above.
type Earthquake struct {
	core
}

func NewEarthquake(classifier *domain.Classifier, st store.AlertStore, pub Publisher, logger *slog.Logger, metrics *observability.Metrics) *Earthquake {
	return &Earthquake{core: newCore(classifier, st, pub, logger, metrics)}
}

func (p *Earthquake) Handle(ctx context.Context, raw domain.RawEvent) {
	defer p.observe(hazardEarthquake, time.Now())

	var event domain.EarthquakeEvent
	if err := json.Unmarshal(raw.Value, &event); err != nil {
		p.dropMalformed(hazardEarthquake, err, raw)
		return
	}
	if event.EventTime.IsZero() {
		p.dropMalformed(hazardEarthquake, fmt.Errorf("%w: eventTime is required", domain.ErrMalformedEvent), raw)
		return
	}

	cls, err := p.classifier.Earthquake(event)
	if err != nil {
		p.dropMalformed(hazardEarthquake, err, raw)
		return
	}
	if !cls.Worthy {
		p.dropBelowGate(hazardEarthquake, raw)
		return
	}

	p.logger.Info("significant earthquake detected",
		"earthquake_id", event.EarthquakeID,
		"magnitude", *event.Magnitude,
		"location", event.Location,
		"severity", cls.Severity,
	)

	p.persistAndPublish(ctx, hazardEarthquake, &domain.Alert{
		AlertType:    domain.AlertTypeEarthquake,
		Severity:     cls.Severity,
		EarthquakeID: optString(event.EarthquakeID),
		Magnitude:    event.Magnitude,
		DepthKm:      event.DepthKm,
		Location:     optString(event.Location),
		Region:       optString(event.Region),
		Latitude:     event.Latitude,
		Longitude:    event.Longitude,
		Description:  cls.Description,
		Timestamp:    event.EventTime,
		RawData:      raw.Value,
	})
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
