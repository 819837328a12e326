package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("NATS_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "venuenouveau", cfg.ServiceName)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "/media/", cfg.MediaURL)
	assert.Equal(t, int64(25<<20), cfg.MaxUploadBytes)
	assert.Equal(t, "cms.", cfg.EventSubjectPrefix)
	assert.Equal(t, 2*time.Second, cfg.OutboxPollInterval)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.AutoMigrate)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", ":9090")
	t.Setenv("MEDIA_URL", "uploads")
	t.Setenv("AUTO_MIGRATE", "true")
	t.Setenv("OUTBOX_POLL_INTERVAL", "500ms")
	t.Setenv("LOG_FORMAT", "TEXT")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "/uploads/", cfg.MediaURL)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, 500*time.Millisecond, cfg.OutboxPollInterval)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("OUTBOX_POLL_INTERVAL", "soon")
		_, err := Load()
		require.ErrorContains(t, err, "parse env")
	})
	t.Run("upload limit", func(t *testing.T) {
		t.Setenv("MAX_UPLOAD_BYTES", "0")
		_, err := Load()
		require.ErrorContains(t, err, "MAX_UPLOAD_BYTES")
	})
	t.Run("log format", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "xml")
		_, err := Load()
		require.ErrorContains(t, err, "LOG_FORMAT")
	})
}
