package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "ARCHIVE_DIR", "PRINT_CLEANUP_TIMEOUT", "FRAME_INTERVAL", "DEFAULT_LANGUAGE", "DISABLE_BROWSER"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "static/prints", cfg.ArchiveDir)
	assert.Equal(t, 5*time.Second, cfg.PrintCleanupTimeout)
	assert.Equal(t, 16*time.Millisecond, cfg.FrameInterval)
	assert.Equal(t, "ru", cfg.DefaultLanguage)
	assert.False(t, cfg.DisableBrowser)
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"unset", "", time.Second},
		{"valid", "250ms", 250 * time.Millisecond},
		{"invalid", "soon", time.Second},
		{"negative", "-5s", time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			assert.Equal(t, tt.want, getEnvDuration("TEST_DURATION", time.Second))
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "yes")
	assert.True(t, getEnvBool("TEST_BOOL", false))
	t.Setenv("TEST_BOOL", "off")
	assert.False(t, getEnvBool("TEST_BOOL", true))
	t.Setenv("TEST_BOOL", "maybe")
	assert.True(t, getEnvBool("TEST_BOOL", true))
}
