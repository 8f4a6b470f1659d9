package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hazardwatch/alert-engine/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers []string
	KafkaGroupID string

	// Source topics, one consumer loop each. Earthquake detections arrive
	// on two topics that share a payload shape.
	TopicKpIndex         string
	TopicEarthquakeData  string
	TopicEarthquakeAlert string
	TopicTsunami         string
	TopicFlood           string
	TopicCME             string

	// Sink topics for routed alerts.
	TopicAlertsCritical string
	TopicAlertsWarning  string

	DBPath          string
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	Thresholds domain.Thresholds
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	thresholds, err := loadThresholds()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers: parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaGroupID: envOrDefault("KAFKA_GROUP_ID", "alert-engine"),

		TopicKpIndex:         envOrDefault("KAFKA_TOPIC_KP", "raw.spaceweather.kp"),
		TopicEarthquakeData:  envOrDefault("KAFKA_TOPIC_EARTHQUAKE_DATA", "raw.earthquake.data"),
		TopicEarthquakeAlert: envOrDefault("KAFKA_TOPIC_EARTHQUAKE_ALERT", "raw.earthquake.alert"),
		TopicTsunami:         envOrDefault("KAFKA_TOPIC_TSUNAMI", "raw.tsunami.warning"),
		TopicFlood:           envOrDefault("KAFKA_TOPIC_FLOOD", "raw.flood.alert"),
		TopicCME:             envOrDefault("KAFKA_TOPIC_CME", "raw.spaceweather.cme"),

		TopicAlertsCritical: envOrDefault("KAFKA_TOPIC_ALERTS_CRITICAL", "alerts.critical"),
		TopicAlertsWarning:  envOrDefault("KAFKA_TOPIC_ALERTS_WARNING", "alerts.warning"),

		DBPath:          envOrDefault("DB_PATH", "alerts.db"),
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		Thresholds: thresholds,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.DBPath == "" {
		return nil, errors.New("DB_PATH is required")
	}
	for _, topic := range []struct{ name, value string }{
		{"KAFKA_TOPIC_KP", cfg.TopicKpIndex},
		{"KAFKA_TOPIC_EARTHQUAKE_DATA", cfg.TopicEarthquakeData},
		{"KAFKA_TOPIC_EARTHQUAKE_ALERT", cfg.TopicEarthquakeAlert},
		{"KAFKA_TOPIC_TSUNAMI", cfg.TopicTsunami},
		{"KAFKA_TOPIC_FLOOD", cfg.TopicFlood},
		{"KAFKA_TOPIC_CME", cfg.TopicCME},
		{"KAFKA_TOPIC_ALERTS_CRITICAL", cfg.TopicAlertsCritical},
		{"KAFKA_TOPIC_ALERTS_WARNING", cfg.TopicAlertsWarning},
	} {
		if topic.value == "" {
			return nil, fmt.Errorf("%s is required", topic.name)
		}
	}

	return cfg, nil
}

// loadThresholds starts from the operational defaults and applies any
// per-tier environment overrides.
func loadThresholds() (domain.Thresholds, error) {
	t := domain.DefaultThresholds()

	floats := []struct {
		name string
		dst  *float64
	}{
		{"THRESHOLD_KP_MINOR", &t.KpMinor},
		{"THRESHOLD_KP_MODERATE", &t.KpModerate},
		{"THRESHOLD_KP_SEVERE", &t.KpSevere},
		{"THRESHOLD_KP_EXTREME", &t.KpExtreme},
		{"THRESHOLD_QUAKE_MODERATE", &t.QuakeModerate},
		{"THRESHOLD_QUAKE_MAJOR", &t.QuakeMajor},
		{"THRESHOLD_QUAKE_CRITICAL", &t.QuakeCritical},
		{"THRESHOLD_QUAKE_EXTREME", &t.QuakeExtreme},
		{"THRESHOLD_CME_MODERATE", &t.CmeModerate},
		{"THRESHOLD_CME_MAJOR", &t.CmeMajor},
		{"THRESHOLD_CME_CRITICAL", &t.CmeCritical},
		{"THRESHOLD_CME_EXTREME", &t.CmeExtreme},
	}
	for _, f := range floats {
		if s := os.Getenv(f.name); s != "" {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return t, fmt.Errorf("invalid %s: %q", f.name, s)
			}
			*f.dst = v
		}
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"THRESHOLD_TSUNAMI_MAJOR", &t.TsunamiMajor},
		{"THRESHOLD_TSUNAMI_CRITICAL", &t.TsunamiCritical},
		{"THRESHOLD_TSUNAMI_EXTREME", &t.TsunamiExtreme},
	}
	for _, f := range ints {
		if s := os.Getenv(f.name); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil {
				return t, fmt.Errorf("invalid %s: %q", f.name, s)
			}
			*f.dst = v
		}
	}

	return t, nil
}

func envOrDefault(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func parseBrokers(s string) []string {
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

func parseDuration(name string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(name)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, s)
	}
	return d, nil
}
