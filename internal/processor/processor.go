// Package processor composes classification, persistence, and channel
// publication into per-hazard ingestion handlers.
//
// Each processor handles one inbound event at a time: classify, apply the
// worthiness gate, persist, then publish to the routed channel. Failures
// never escape Handle; a bad event is logged and dropped so the stream
// keeps flowing. Persist and publish are two independent steps: a publish
// failure (or a crash between the two) leaves a durable alert that was
// never fanned out. That gap is accepted. There is no compensation or
// internal retry, redelivery is the bus's job.
package processor

import (
	"context"
	"log/slog"
	"time"

	"github.com/hazardwatch/alert-engine/internal/domain"
	"github.com/hazardwatch/alert-engine/internal/observability"
	"github.com/hazardwatch/alert-engine/internal/store"
)

// Publisher delivers a persisted alert to a downstream channel.
type Publisher interface {
	Publish(ctx context.Context, channel domain.Channel, alert *domain.Alert) error
}

// core carries the collaborators shared by every hazard processor.
type core struct {
	classifier *domain.Classifier
	store      store.AlertStore
	publisher  Publisher
	logger     *slog.Logger
	metrics    *observability.Metrics
}

func newCore(classifier *domain.Classifier, st store.AlertStore, pub Publisher, logger *slog.Logger, metrics *observability.Metrics) core {
	return core{
		classifier: classifier,
		store:      st,
		publisher:  pub,
		logger:     logger,
		metrics:    metrics,
	}
}

// observe records consumption and timing for one handled event.
func (c *core) observe(hazard string, start time.Time) {
	c.metrics.EventsConsumed.WithLabelValues(hazard).Inc()
	c.metrics.HandleDuration.WithLabelValues(hazard).Observe(time.Since(start).Seconds())
}

func (c *core) dropMalformed(hazard string, err error, raw domain.RawEvent) {
	c.metrics.MalformedEvents.WithLabelValues(hazard).Inc()
	c.logger.Warn("dropping malformed event",
		"hazard", hazard,
		"error", err,
		"topic", raw.Topic,
		"partition", raw.Partition,
		"offset", raw.Offset,
	)
}

func (c *core) dropBelowGate(hazard string, raw domain.RawEvent) {
	c.metrics.EventsDiscarded.WithLabelValues(hazard).Inc()
	c.logger.Debug("event below alert threshold",
		"hazard", hazard,
		"topic", raw.Topic,
		"offset", raw.Offset,
	)
}

// persistAndPublish runs the two sequential steps of alert creation.
// The store write is authoritative; publication is best-effort.
func (c *core) persistAndPublish(ctx context.Context, hazard string, alert *domain.Alert) {
	created, err := c.store.Create(ctx, alert)
	if err != nil {
		c.metrics.StoreErrors.Inc()
		c.logger.Error("alert store rejected write",
			"hazard", hazard,
			"severity", alert.Severity,
			"error", err,
		)
		return
	}

	c.metrics.AlertsCreated.WithLabelValues(hazard, string(created.Severity)).Inc()
	c.logger.Info("alert created",
		"hazard", hazard,
		"alert_id", created.ID,
		"severity", created.Severity,
	)

	channel := domain.RouteAlert(created.AlertType, created.Severity)
	if channel == domain.ChannelNone {
		return
	}

	if err := c.publisher.Publish(ctx, channel, created); err != nil {
		c.metrics.PublishFailures.WithLabelValues(string(channel)).Inc()
		c.logger.Error("alert publish failed",
			"hazard", hazard,
			"alert_id", created.ID,
			"channel", channel,
			"error", err,
		)
		return
	}
	c.metrics.AlertsPublished.WithLabelValues(string(channel)).Inc()
}
