package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/hazardwatch/alert-engine/internal/config"
	"github.com/hazardwatch/alert-engine/internal/domain"
)

// Publisher produces routed alerts to the critical and warning topics.
// It implements processor.Publisher.
type Publisher struct {
	writers map[domain.Channel]*kafkago.Writer
	logger  *slog.Logger
}

// NewPublisher creates producers for both alert channels.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	newWriter := func(topic string) *kafkago.Writer {
		return &kafkago.Writer{
			Addr:         kafkago.TCP(cfg.KafkaBrokers...),
			Topic:        topic,
			Balancer:     &kafkago.Hash{},
			RequiredAcks: kafkago.RequireAll,
		}
	}
	return &Publisher{
		writers: map[domain.Channel]*kafkago.Writer{
			domain.ChannelCritical: newWriter(cfg.TopicAlertsCritical),
			domain.ChannelWarning:  newWriter(cfg.TopicAlertsWarning),
		},
		logger: logger,
	}
}

// Publish serializes the alert and writes it to the channel's topic.
func (p *Publisher) Publish(ctx context.Context, channel domain.Channel, alert *domain.Alert) error {
	w, ok := p.writers[channel]
	if !ok {
		return fmt.Errorf("unknown alert channel %q", channel)
	}
	msg, err := serializeAlert(alert)
	if err != nil {
		return err
	}
	return w.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	var firstErr error
	for _, w := range p.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// serializeAlert marshals an alert into a Kafka message. The key groups
// messages by alert type and severity so a channel consumer sees each
// class of alert in order.
func serializeAlert(alert *domain.Alert) (kafkago.Message, error) {
	data, err := json.Marshal(alert)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize alert: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(alert.PartitionKey()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "alert_type", Value: []byte(alert.AlertType)},
			{Key: "severity", Value: []byte(alert.Severity)},
		},
	}, nil
}
