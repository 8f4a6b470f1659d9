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

const hazardGeomagnetic = "geomagnetic"

// Geomagnetic ingests Kp-index readings and raises geomagnetic storm
// alerts.
type Geomagnetic struct {
	core
}

func NewGeomagnetic(classifier *domain.Classifier, st store.AlertStore, pub Publisher, logger *slog.Logger, metrics *observability.Metrics) *Geomagnetic {
	return &Geomagnetic{core: newCore(classifier, st, pub, logger, metrics)}
}

func (p *Geomagnetic) Handle(ctx context.Context, raw domain.RawEvent) {
	defer p.observe(hazardGeomagnetic, time.Now())

	var event domain.KpIndexEvent
	if err := json.Unmarshal(raw.Value, &event); err != nil {
		p.dropMalformed(hazardGeomagnetic, err, raw)
		return
	}
	if event.Timestamp.IsZero() {
		p.dropMalformed(hazardGeomagnetic, fmt.Errorf("%w: timestamp is required", domain.ErrMalformedEvent), raw)
		return
	}

	cls, err := p.classifier.Kp(event)
	if err != nil {
		p.dropMalformed(hazardGeomagnetic, err, raw)
		return
	}
	if !cls.Worthy {
		p.dropBelowGate(hazardGeomagnetic, raw)
		return
	}

	p.logger.Info("geomagnetic storm detected", "kp", *event.KpIndex, "severity", cls.Severity)

	p.persistAndPublish(ctx, hazardGeomagnetic, &domain.Alert{
		AlertType:   domain.AlertTypeGeomagneticStorm,
		Severity:    cls.Severity,
		KpValue:     event.KpIndex,
		Description: cls.Description,
		Timestamp:   event.Timestamp,
		RawData:     raw.Value,
	})
}
