// Package pipeline runs the per-hazard consume loops that feed raw
// events into the processors.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hazardwatch/alert-engine/internal/domain"
	"github.com/hazardwatch/alert-engine/internal/observability"
)

// Extractor reads the next raw event from a source stream, blocking
// until one arrives or the context is cancelled.
type Extractor interface {
	Extract(ctx context.Context) (domain.RawEvent, error)
}

// Handler processes one raw event. Handlers absorb their own failures;
// a bad event must never stall the stream.
type Handler interface {
	Handle(ctx context.Context, raw domain.RawEvent)
}

// Consumer drives one hazard stream: extract, handle, commit.
type Consumer struct {
	hazard    string
	extractor Extractor
	handler   Handler
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// NewConsumer creates a consumer for a single hazard stream.
func NewConsumer(hazard string, e Extractor, h Handler, logger *slog.Logger, metrics *observability.Metrics) *Consumer {
	return &Consumer{
		hazard:    hazard,
		extractor: e,
		handler:   h,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once the consumer has handled at least one
// event, or an error describing why it is not yet ready.
func (c *Consumer) CheckReadiness(_ context.Context) error {
	if !c.ready.Load() {
		return fmt.Errorf("%s consumer has not processed any events yet", c.hazard)
	}
	return nil
}

// Run executes the consume loop until the context is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("consumer started", "hazard", c.hazard)
	c.metrics.ConsumersRunning.Inc()
	defer c.metrics.ConsumersRunning.Dec()

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	// Keeps retry storms short while avoiding tight loops during broker outages.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("consumer stopping", "hazard", c.hazard, "reason", ctx.Err())
			return nil
		default:
		}

		if !c.consumeOne(ctx, &backoff, maxBackoff) {
			return nil
		}
	}
}

// consumeOne runs one extract-handle-commit cycle. Returns false if the
// consumer should stop.
func (c *Consumer) consumeOne(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	raw, err := c.extractor.Extract(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		c.logger.Error("extract failed", "hazard", c.hazard, "error", err)
		return c.backoffOrStop(ctx, backoff, maxBackoff)
	}
	*backoff = 200 * time.Millisecond

	// Handle absorbs malformed events and downstream failures, so the
	// offset is committed either way. Redelivery only covers events the
	// process never got to finish.
	c.handler.Handle(ctx, raw)
	c.commitOffset(ctx, raw)
	c.ready.Store(true)
	return true
}

// backoffOrStop checks for context cancellation, sleeps with the current
// backoff, and advances the backoff. Returns false if the consumer should stop.
func (c *Consumer) backoffOrStop(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !sleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = nextBackoff(*backoff, maxBackoff)
	return true
}

// commitOffset commits the event offset if a commit function is available.
func (c *Consumer) commitOffset(ctx context.Context, raw domain.RawEvent) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		c.logger.Warn("commit offset failed", "hazard", c.hazard, "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// Fleet runs a set of hazard consumers as one unit.
type Fleet struct {
	consumers []*Consumer
	logger    *slog.Logger
}

// NewFleet groups consumers for joint startup and readiness checks.
func NewFleet(logger *slog.Logger, consumers ...*Consumer) *Fleet {
	return &Fleet{consumers: consumers, logger: logger}
}

// Run starts every consumer and blocks until all loops have returned.
func (f *Fleet) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	for _, c := range f.consumers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.Run(ctx); err != nil {
				f.logger.Error("consumer exited with error", "hazard", c.hazard, "error", err)
			}
		}()
	}
	wg.Wait()
	f.logger.Info("all consumers stopped")
	return nil
}

// CheckReadiness reports ready only when every consumer has handled at
// least one event.
func (f *Fleet) CheckReadiness(ctx context.Context) error {
	var errs []error
	for _, c := range f.consumers {
		if err := c.CheckReadiness(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
