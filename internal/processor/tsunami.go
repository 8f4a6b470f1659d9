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

const hazardTsunami = "tsunami"

// Tsunami ingests tsunami warnings, which share the earthquake event
// shape. Every warning becomes an alert; the risk score only picks the
// tier.
type Tsunami struct {
	core
}

func NewTsunami(classifier *domain.Classifier, st store.AlertStore, pub Publisher, logger *slog.Logger, metrics *observability.Metrics) *Tsunami {
	return &Tsunami{core: newCore(classifier, st, pub, logger, metrics)}
}

func (p *Tsunami) Handle(ctx context.Context, raw domain.RawEvent) {
	defer p.observe(hazardTsunami, time.Now())

	var event domain.EarthquakeEvent
	if err := json.Unmarshal(raw.Value, &event); err != nil {
		p.dropMalformed(hazardTsunami, err, raw)
		return
	}
	if event.EventTime.IsZero() {
		p.dropMalformed(hazardTsunami, fmt.Errorf("%w: eventTime is required", domain.ErrMalformedEvent), raw)
		return
	}

	cls, err := p.classifier.Tsunami(event)
	if err != nil {
		p.dropMalformed(hazardTsunami, err, raw)
		return
	}

	p.logger.Warn("tsunami warning received",
		"earthquake_id", event.EarthquakeID,
		"risk_score", event.TsunamiRiskScore,
		"location", event.Location,
		"severity", cls.Severity,
	)

	p.persistAndPublish(ctx, hazardTsunami, &domain.Alert{
		AlertType:        domain.AlertTypeTsunami,
		Severity:         cls.Severity,
		EarthquakeID:     optString(event.EarthquakeID),
		Magnitude:        event.Magnitude,
		TsunamiRiskScore: event.TsunamiRiskScore,
		Location:         optString(event.Location),
		Region:           optString(event.Region),
		Latitude:         event.Latitude,
		Longitude:        event.Longitude,
		Description:      cls.Description,
		Timestamp:        event.EventTime,
		RawData:          raw.Value,
	})
}
