package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort           = "3000"
	defaultAdapterURL     = "http://localhost:3040"
	defaultAdapterTimeout = 10 * time.Second
	defaultImageBaseURL   = "https://image.tmdb.org/t/p/original"
	defaultKafkaGroupID   = "tv-guide-bff"
)

type Config struct {
	Server   ServerConfig
	Adapter  AdapterConfig
	Schedule ScheduleConfig
	Metadata MetadataConfig
	Logging  LoggingConfig
	Kafka    KafkaConfig
	Metrics  MetricsConfig
}

type ServerConfig struct {
	Port string
}

// AdapterConfig points at the data service that owns persistence and third-party credentials.
type AdapterConfig struct {
	BaseURL string
	Timeout time.Duration
}

type ScheduleConfig struct {
	Location *time.Location
}

type MetadataConfig struct {
	ImageBaseURL string
}

type LoggingConfig struct {
	Level     string
	Format    string
	Directory string
}

// KafkaConfig is optional; an empty broker list disables both publishing and consuming.
type KafkaConfig struct {
	Brokers            []string
	GroupID            string
	EventsTopic        string
	NotificationTopics []string
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type MetricsConfig struct {
	Enabled bool
}

// Load reads the process environment. Values that are present but invalid are reported as errors.
func Load() (*Config, error) {
	timeout, err := durationEnv("ADAPTER_TIMEOUT", defaultAdapterTimeout)
	if err != nil {
		return nil, err
	}

	location := time.Local
	if zone := strings.TrimSpace(os.Getenv("SCHEDULE_TIMEZONE")); zone != "" {
		location, err = time.LoadLocation(zone)
		if err != nil {
			return nil, fmt.Errorf("SCHEDULE_TIMEZONE: %w", err)
		}
	}

	metricsEnabled, err := boolEnv("METRICS_ENABLED", true)
	if err != nil {
		return nil, err
	}

	brokers := splitList(os.Getenv("KAFKA_BROKERS"))
	if len(brokers) == 0 {
		brokers = splitList(os.Getenv("KAFKA_BROKER"))
	}

	return &Config{
		Server: ServerConfig{Port: getEnv("PORT", defaultPort)},
		Adapter: AdapterConfig{
			BaseURL: firstEnv(defaultAdapterURL, "ADAPTER_SERVICE_URL", "DATA_SERVICE_URL"),
			Timeout: timeout,
		},
		Schedule: ScheduleConfig{Location: location},
		Metadata: MetadataConfig{ImageBaseURL: getEnv("TMDB_IMAGE_BASE_URL", defaultImageBaseURL)},
		Logging: LoggingConfig{
			Level:     getEnv("LOG_LEVEL", "info"),
			Format:    getEnv("LOG_FORMAT", "text"),
			Directory: getEnv("LOG_DIRECTORY", "./logs"),
		},
		Kafka: KafkaConfig{
			Brokers:            brokers,
			GroupID:            getEnv("KAFKA_GROUP_ID", defaultKafkaGroupID),
			EventsTopic:        strings.TrimSpace(os.Getenv("KAFKA_EVENTS_TOPIC")),
			NotificationTopics: splitList(os.Getenv("KAFKA_NOTIFICATION_TOPICS")),
		},
		Metrics: MetricsConfig{Enabled: metricsEnabled},
	}, nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func firstEnv(fallback string, keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	if ms, err := strconv.Atoi(raw); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return parsed, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	if len(values) == 0 {
		return nil
	}
	return values
}
