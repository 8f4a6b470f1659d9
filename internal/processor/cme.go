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

const hazardCME = "cme"

// CME ingests coronal mass ejection analyses and raises alerts for
// ejections at or above the moderate speed threshold.
type CME struct {
	core
}

func NewCME(classifier *domain.Classifier, st store.AlertStore, pub Publisher, logger *slog.Logger, metrics *observability.Metrics) *CME {
	return &CME{core: newCore(classifier, st, pub, logger, metrics)}
}

func (p *CME) Handle(ctx context.Context, raw domain.RawEvent) {
	defer p.observe(hazardCME, time.Now())

	var event domain.CmeEvent
	if err := json.Unmarshal(raw.Value, &event); err != nil {
		p.dropMalformed(hazardCME, err, raw)
		return
	}
	if event.StartTime.IsZero() {
		p.dropMalformed(hazardCME, fmt.Errorf("%w: startTime is required", domain.ErrMalformedEvent), raw)
		return
	}

	cls, err := p.classifier.CME(event)
	if err != nil {
		p.dropMalformed(hazardCME, err, raw)
		return
	}
	if !cls.Worthy {
		p.dropBelowGate(hazardCME, raw)
		return
	}

	lat := domain.ParseCoordinate(event.Latitude)
	lon := domain.ParseCoordinate(event.Longitude)
	if (event.Latitude != "" && lat == nil) || (event.Longitude != "" && lon == nil) {
		p.logger.Warn("unparseable CME coordinates",
			"activity_id", event.ActivityID,
			"latitude", event.Latitude,
			"longitude", event.Longitude,
		)
	}

	speed := event.EffectiveSpeed()
	p.logger.Info("significant CME detected",
		"activity_id", event.ActivityID,
		"speed", *speed,
		"type", event.Type,
		"severity", cls.Severity,
	)

	p.persistAndPublish(ctx, hazardCME, &domain.Alert{
		AlertType:   domain.AlertTypeCME,
		Severity:    cls.Severity,
		CmeSpeed:    speed,
		CmeType:     optString(event.Type),
		Latitude:    lat,
		Longitude:   lon,
		Description: cls.Description,
		Timestamp:   event.StartTime,
		RawData:     raw.Value,
	})
}
