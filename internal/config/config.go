// Package config loads application configuration from the environment, with
// an optional YAML file for map zoom-tier overrides.
package config

import (
	"fmt"
	"time"

	pkgcfg "newsbridge/pkg/config"
)

// Server holds the web server configuration.
type Server struct {
	// Addr is the listen address.
	Addr string

	// ReadHeaderTimeout guards against slowloris-style clients.
	ReadHeaderTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// Version is reported on the health endpoint.
	Version string
}

// Upstream holds the backend API client configuration.
type Upstream struct {
	// BaseURL is the backend API base URL. Required.
	BaseURL string

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// RateLimit caps outbound requests per second.
	RateLimit float64

	// RateBurst is the outbound limiter burst size.
	RateBurst int
}

// Config is the full application configuration.
type Config struct {
	Server   Server
	Upstream Upstream

	// TiersFile optionally points to a YAML file overriding the map
	// zoom-tier fetch limits.
	TiersFile string
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Server: Server{
			Addr:              pkgcfg.GetEnvString("LISTEN_ADDR", ":3000"),
			ReadHeaderTimeout: pkgcfg.GetEnvDuration("READ_HEADER_TIMEOUT", 10*time.Second),
			ShutdownTimeout:   pkgcfg.GetEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
			Version:           pkgcfg.GetEnvString("VERSION", "dev"),
		},
		Upstream: Upstream{
			BaseURL:   pkgcfg.GetEnvString("NEWSBRIDGE_API_URL", ""),
			Timeout:   pkgcfg.GetEnvDuration("UPSTREAM_TIMEOUT", 15*time.Second),
			RateLimit: float64(pkgcfg.GetEnvInt("UPSTREAM_RATE_LIMIT", 50)),
			RateBurst: pkgcfg.GetEnvInt("UPSTREAM_RATE_BURST", 100),
		},
		TiersFile: pkgcfg.GetEnvString("MAP_TIERS_FILE", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for fatal misconfiguration.
func (c *Config) Validate() error {
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("NEWSBRIDGE_API_URL must be set")
	}
	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("upstream timeout must be positive, got %v", c.Upstream.Timeout)
	}
	if c.Upstream.RateLimit <= 0 {
		return fmt.Errorf("upstream rate limit must be positive, got %v", c.Upstream.RateLimit)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %v", c.Server.ShutdownTimeout)
	}
	return nil
}
