package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	_, err := Load()
	require.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token-123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "token-123", cfg.Discord.Token)
	assert.Equal(t, 24*time.Hour, cfg.Lifecycle.Retention)
	assert.Equal(t, 5*time.Minute, cfg.Lifecycle.SelectTimeout)
	assert.Equal(t, 30*time.Minute, cfg.Activity.IdleThreshold)
	assert.Equal(t, 0.15, cfg.Activity.ReplyChance)
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token-123")
	t.Setenv("TICKET_RETENTION", "1h")
	t.Setenv("ACTIVITY_IDLE_THRESHOLD", "10m")
	t.Setenv("ACTIVITY_REPLY_CHANCE", "0.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.Lifecycle.Retention)
	assert.Equal(t, 10*time.Minute, cfg.Activity.IdleThreshold)
	assert.Equal(t, 0.5, cfg.Activity.ReplyChance)
}

func TestAppAddr(t *testing.T) {
	app := AppConfig{Host: "0.0.0.0", Port: "8080"}
	assert.Equal(t, "0.0.0.0:8080", app.Addr())
}
