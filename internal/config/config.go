// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Content      ContentConfig      `toml:"content"`
	Playback     PlaybackConfig     `toml:"playback"`
	Preload      PreloadConfig      `toml:"preload"`
	Orchestrator OrchestratorConfig `toml:"orchestrator"`
	Cache        CacheConfig        `toml:"cache"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type ContentConfig struct {
	ServerURL string `toml:"server_url"`
	DeviceID  string `toml:"device_id"`
}

type PlaybackConfig struct {
	RetryInterval    Duration `toml:"retry_interval"`
	MaxRetries       int      `toml:"max_retries"`
	SkipDelay        Duration `toml:"skip_delay"`
	TransitionBuffer Duration `toml:"transition_buffer"`
	PrefetchCount    int      `toml:"prefetch_count"`
	ManualAdvance    bool     `toml:"manual_advance"`
}

type PreloadConfig struct {
	MaxConcurrent int      `toml:"max_concurrent"`
	LoadTimeout   Duration `toml:"load_timeout"`
	Types         []string `toml:"types"`
}

type OrchestratorConfig struct {
	OnlineRetry   Duration `toml:"online_retry"`
	OfflineRetry  Duration `toml:"offline_retry"`
	PrefetchCount int      `toml:"prefetch_count"`
}

type CacheConfig struct {
	TTL           Duration `toml:"ttl"`
	MaxAssetSize  int64    `toml:"max_asset_size"`
	SweepInterval Duration `toml:"sweep_interval"`
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8787
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./data/marquee.db"
	}
	if c.Playback.RetryInterval.Duration == 0 {
		c.Playback.RetryInterval.Duration = 5 * time.Second
	}
	if c.Playback.MaxRetries == 0 {
		c.Playback.MaxRetries = 3
	}
	if c.Playback.SkipDelay.Duration == 0 {
		c.Playback.SkipDelay.Duration = time.Second
	}
	if c.Playback.PrefetchCount == 0 {
		c.Playback.PrefetchCount = 2
	}
	if c.Preload.MaxConcurrent == 0 {
		c.Preload.MaxConcurrent = 3
	}
	if c.Preload.LoadTimeout.Duration == 0 {
		c.Preload.LoadTimeout.Duration = 30 * time.Second
	}
	if len(c.Preload.Types) == 0 {
		c.Preload.Types = []string{"image", "video"}
	}
	if c.Orchestrator.OnlineRetry.Duration == 0 {
		c.Orchestrator.OnlineRetry.Duration = 5 * time.Second
	}
	if c.Orchestrator.OfflineRetry.Duration == 0 {
		c.Orchestrator.OfflineRetry.Duration = 15 * time.Second
	}
	if c.Orchestrator.PrefetchCount == 0 {
		c.Orchestrator.PrefetchCount = 5
	}
	if c.Cache.TTL.Duration == 0 {
		c.Cache.TTL.Duration = 30 * 24 * time.Hour
	}
	if c.Cache.MaxAssetSize == 0 {
		c.Cache.MaxAssetSize = 100 << 20
	}
	if c.Cache.SweepInterval.Duration == 0 {
		c.Cache.SweepInterval.Duration = time.Hour
	}
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1] // Strip ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match // Leave unchanged if not found
	})
}
