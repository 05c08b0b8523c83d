package config

import (
	"fmt"
	"net/url"

	"github.com/marqueeplayer/marquee/internal/content"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	if c.Content.ServerURL == "" {
		errs = append(errs, "content.server_url: required")
	} else if u, err := url.Parse(c.Content.ServerURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("content.server_url: must be an absolute URL, got %q", c.Content.ServerURL))
	}

	if c.Playback.RetryInterval.Duration < 0 {
		errs = append(errs, "playback.retry_interval: must not be negative")
	}
	if c.Playback.MaxRetries < 0 {
		errs = append(errs, "playback.max_retries: must not be negative")
	}
	if c.Playback.TransitionBuffer.Duration < 0 {
		errs = append(errs, "playback.transition_buffer: must not be negative")
	}

	if c.Preload.MaxConcurrent < 0 {
		errs = append(errs, "preload.max_concurrent: must not be negative")
	}
	if c.Preload.LoadTimeout.Duration < 0 {
		errs = append(errs, "preload.load_timeout: must not be negative")
	}
	for _, typ := range c.Preload.Types {
		switch content.Type(typ) {
		case content.TypeImage, content.TypeVideo:
		default:
			errs = append(errs, fmt.Sprintf("preload.types: %q is not preloadable", typ))
		}
	}

	if c.Cache.MaxAssetSize < 0 {
		errs = append(errs, "cache.max_asset_size: must not be negative")
	}
	if c.Cache.SweepInterval.Duration < 0 {
		errs = append(errs, "cache.sweep_interval: must not be negative")
	}

	return errs
}
