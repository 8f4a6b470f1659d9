package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	httpadapter "github.com/hazardwatch/alert-engine/internal/adapter/http"
	kafkaadapter "github.com/hazardwatch/alert-engine/internal/adapter/kafka"
	"github.com/hazardwatch/alert-engine/internal/config"
	"github.com/hazardwatch/alert-engine/internal/domain"
	"github.com/hazardwatch/alert-engine/internal/observability"
	"github.com/hazardwatch/alert-engine/internal/pipeline"
	"github.com/hazardwatch/alert-engine/internal/processor"
	"github.com/hazardwatch/alert-engine/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	alertStore, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open alert store", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}

	publisher := kafkaadapter.NewPublisher(cfg, logger)
	classifier := domain.NewClassifier(cfg.Thresholds)

	// One reader and consumer loop per hazard stream. Earthquake
	// detections arrive on two topics that share a consumer.
	type stream struct {
		hazard  string
		topics  []string
		handler pipeline.Handler
	}
	streams := []stream{
		{"geomagnetic", []string{cfg.TopicKpIndex},
			processor.NewGeomagnetic(classifier, alertStore, publisher, logger, metrics)},
		{"earthquake", []string{cfg.TopicEarthquakeData, cfg.TopicEarthquakeAlert},
			processor.NewEarthquake(classifier, alertStore, publisher, logger, metrics)},
		{"tsunami", []string{cfg.TopicTsunami},
			processor.NewTsunami(classifier, alertStore, publisher, logger, metrics)},
		{"flood", []string{cfg.TopicFlood},
			processor.NewFlood(classifier, alertStore, publisher, logger, metrics)},
		{"cme", []string{cfg.TopicCME},
			processor.NewCME(classifier, alertStore, publisher, logger, metrics)},
	}

	readers := make([]*kafkaadapter.Reader, 0, len(streams))
	consumers := make([]*pipeline.Consumer, 0, len(streams))
	for _, st := range streams {
		reader := kafkaadapter.NewReader(cfg.KafkaBrokers, cfg.KafkaGroupID, st.topics, logger)
		readers = append(readers, reader)
		consumers = append(consumers, pipeline.NewConsumer(st.hazard, reader, st.handler, logger, metrics))
	}
	fleet := pipeline.NewFleet(logger, consumers...)

	srv := httpadapter.NewServer(cfg.HTTPAddr, alertStore, fleet, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start hazard consumers.
	go func() {
		if err := fleet.Run(ctx); err != nil {
			logger.Error("consumer fleet error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	for _, r := range readers {
		if err := r.Close(); err != nil {
			logger.Error("kafka reader close error", "error", err)
		}
	}
	if err := publisher.Close(); err != nil {
		logger.Error("kafka publisher close error", "error", err)
	}
	if err := alertStore.Close(); err != nil {
		logger.Error("alert store close error", "error", err)
	}

	logger.Info("shutdown complete")
}
