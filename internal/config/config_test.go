package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[content]
server_url = "http://display.example.com"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8787, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "./data/marquee.db", cfg.Database.Path)
	assert.Equal(t, 5*time.Second, cfg.Playback.RetryInterval.Duration)
	assert.Equal(t, 3, cfg.Playback.MaxRetries)
	assert.Equal(t, time.Second, cfg.Playback.SkipDelay.Duration)
	assert.Equal(t, 2, cfg.Playback.PrefetchCount)
	assert.Equal(t, 3, cfg.Preload.MaxConcurrent)
	assert.Equal(t, 30*time.Second, cfg.Preload.LoadTimeout.Duration)
	assert.Equal(t, []string{"image", "video"}, cfg.Preload.Types)
	assert.Equal(t, 5*time.Second, cfg.Orchestrator.OnlineRetry.Duration)
	assert.Equal(t, 15*time.Second, cfg.Orchestrator.OfflineRetry.Duration)
	assert.Equal(t, 5, cfg.Orchestrator.PrefetchCount)
	assert.Equal(t, 30*24*time.Hour, cfg.Cache.TTL.Duration)
	assert.Equal(t, int64(100<<20), cfg.Cache.MaxAssetSize)
	assert.Equal(t, time.Hour, cfg.Cache.SweepInterval.Duration)
}

func TestLoadParsesFullConfig(t *testing.T) {
	path := writeConfig(t, `
[server]
host = "127.0.0.1"
port = 9000
log_level = "debug"

[database]
path = "/var/lib/marquee/marquee.db"

[content]
server_url = "https://signage.example.com"
device_id = "lobby-1"

[playback]
retry_interval = "2s"
max_retries = 5
skip_delay = "500ms"
transition_buffer = "250ms"
prefetch_count = 4
manual_advance = true

[preload]
max_concurrent = 2
load_timeout = "10s"
types = ["image"]

[orchestrator]
online_retry = "3s"
offline_retry = "45s"
prefetch_count = 8

[cache]
ttl = "168h"
max_asset_size = 1048576
sweep_interval = "30m"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "lobby-1", cfg.Content.DeviceID)
	assert.Equal(t, 2*time.Second, cfg.Playback.RetryInterval.Duration)
	assert.Equal(t, 500*time.Millisecond, cfg.Playback.SkipDelay.Duration)
	assert.Equal(t, 250*time.Millisecond, cfg.Playback.TransitionBuffer.Duration)
	assert.True(t, cfg.Playback.ManualAdvance)
	assert.Equal(t, 2, cfg.Preload.MaxConcurrent)
	assert.Equal(t, 10*time.Second, cfg.Preload.LoadTimeout.Duration)
	assert.Equal(t, []string{"image"}, cfg.Preload.Types)
	assert.Equal(t, 45*time.Second, cfg.Orchestrator.OfflineRetry.Duration)
	assert.Equal(t, 7*24*time.Hour, cfg.Cache.TTL.Duration)
	assert.Equal(t, int64(1<<20), cfg.Cache.MaxAssetSize)
	assert.Equal(t, 30*time.Minute, cfg.Cache.SweepInterval.Duration)
}

func TestLoadSubstitutesEnvVars(t *testing.T) {
	t.Setenv("MARQUEE_TEST_URL", "https://env.example.com")
	t.Setenv("MARQUEE_TEST_DEVICE", "env-device")

	path := writeConfig(t, `
[content]
server_url = "${MARQUEE_TEST_URL}"
device_id = "${MARQUEE_TEST_DEVICE}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.Content.ServerURL)
	assert.Equal(t, "env-device", cfg.Content.DeviceID)
}

func TestLoadLeavesUnknownEnvVars(t *testing.T) {
	path := writeConfig(t, `
[content]
server_url = "http://ok.example.com"
device_id = "${MARQUEE_DEFINITELY_UNSET_VAR}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "${MARQUEE_DEFINITELY_UNSET_VAR}", cfg.Content.DeviceID)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadInvalidTOML(t *testing.T) {
	path := writeConfig(t, `[server`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadInvalidDuration(t *testing.T) {
	path := writeConfig(t, `
[content]
server_url = "http://ok.example.com"

[playback]
retry_interval = "not-a-duration"
`)
	_, err := Load(path)
	assert.Error(t, err)
}
