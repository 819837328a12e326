package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"venuenouveau"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	// PostgresDSN selects persistence; when empty the in-memory adapters are used.
	PostgresDSN string `env:"POSTGRES_DSN"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"false"`

	MediaRoot      string `env:"MEDIA_ROOT" envDefault:"./media"`
	MediaURL       string `env:"MEDIA_URL" envDefault:"/media/"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"26214400"`

	// NATSURL enables the NATS publisher; the in-process bus is used otherwise.
	NATSURL            string        `env:"NATS_URL"`
	EventSubjectPrefix string        `env:"EVENT_SUBJECT_PREFIX" envDefault:"cms."`
	OutboxPollInterval time.Duration `env:"OUTBOX_POLL_INTERVAL" envDefault:"2s"`
	OutboxBatchSize    int           `env:"OUTBOX_BATCH_SIZE" envDefault:"100"`
	// WorkerMetricsPort is where the worker exposes /metrics.
	WorkerMetricsPort  string        `env:"WORKER_METRICS_PORT" envDefault:"9091"`

	OTELEndpoint string `env:"OTEL_ENDPOINT"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"LOG_FORMAT" envDefault:"json"`
}

func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg.normalize()
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Addr is the listen address derived from HTTPPort.
func (c Config) Addr() string {
	if strings.HasPrefix(c.HTTPPort, ":") {
		return c.HTTPPort
	}
	return ":" + c.HTTPPort
}

func (c Config) normalize() (Config, error) {
	c.ServiceName = strings.TrimSpace(c.ServiceName)
	if c.ServiceName == "" {
		c.ServiceName = "venuenouveau"
	}
	c.HTTPPort = strings.TrimSpace(c.HTTPPort)
	if c.HTTPPort == "" {
		c.HTTPPort = "8080"
	}
	c.MediaURL = "/" + strings.Trim(strings.TrimSpace(c.MediaURL), "/") + "/"
	if c.MediaURL == "//" {
		return Config{}, errors.New("MEDIA_URL must not be the site root")
	}
	if c.MaxUploadBytes <= 0 {
		return Config{}, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	if c.OutboxPollInterval <= 0 {
		return Config{}, fmt.Errorf("OUTBOX_POLL_INTERVAL must be positive, got %s", c.OutboxPollInterval)
	}
	if c.OutboxBatchSize <= 0 {
		c.OutboxBatchSize = 100
	}
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return Config{}, fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	return c, nil
}
