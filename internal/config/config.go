package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the law exploration service.
// Environment variables are automatically parsed from the HOUREI_ prefix.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Upstream law API
	UpstreamBaseURL string `envconfig:"UPSTREAM_BASE_URL" default:"https://laws.e-gov.go.jp/api/2/"`
	UseProxy        bool   `envconfig:"USE_PROXY" default:"false"`
	ProxyBaseURL    string `envconfig:"PROXY_BASE_URL" default:"/api/proxy"`

	// Comma-separated hosts the relay may forward to.
	AllowedProxyHosts string `envconfig:"ALLOWED_PROXY_HOSTS" default:"laws.e-gov.go.jp"`

	// Retry policy
	MaxRetries     int           `envconfig:"MAX_RETRIES" default:"3"`
	RetryBaseDelay time.Duration `envconfig:"RETRY_BASE_DELAY" default:"300ms"`

	// Cache
	SearchCacheTTL time.Duration `envconfig:"SEARCH_CACHE_TTL" default:"5m"`
	DetailCacheTTL time.Duration `envconfig:"DETAIL_CACHE_TTL" default:"15m"`
	// CachePath is the sqlite file backing the durable tier; empty
	// disables durable caching.
	CachePath string `envconfig:"CACHE_PATH" default:""`
}

// ResolveDefaults validates the parsed configuration.
func (c *Config) ResolveDefaults() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP_PORT: %d", c.HTTPPort)
	}
	if !strings.HasPrefix(c.UpstreamBaseURL, "http") {
		return fmt.Errorf("invalid UPSTREAM_BASE_URL: %s", c.UpstreamBaseURL)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("MAX_RETRIES must not be negative: %d", c.MaxRetries)
	}
	if c.RetryBaseDelay <= 0 {
		return fmt.Errorf("RETRY_BASE_DELAY must be positive: %s", c.RetryBaseDelay)
	}
	return nil
}

// AllowedHosts splits the configured host list.
func (c *Config) AllowedHosts() []string {
	var hosts []string
	for _, host := range strings.Split(c.AllowedProxyHosts, ",") {
		if host = strings.TrimSpace(host); host != "" {
			hosts = append(hosts, host)
		}
	}
	return hosts
}

// New creates a new Config by parsing environment variables
// Environment variables should be prefixed with HOUREI_
// Example: HOUREI_HTTP_PORT, HOUREI_UPSTREAM_BASE_URL
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("HOUREI", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Str("upstream_base_url", cfg.UpstreamBaseURL).
		Bool("use_proxy", cfg.UseProxy).
		Int("max_retries", cfg.MaxRetries).
		Dur("retry_base_delay", cfg.RetryBaseDelay).
		Str("cache_path", cfg.CachePath).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing
func NewForTesting() *Config {
	return &Config{
		Environment:       EnvTesting,
		HTTPPort:          8080,
		UpstreamBaseURL:   "https://laws.e-gov.go.jp/api/2/",
		ProxyBaseURL:      "/api/proxy",
		AllowedProxyHosts: "laws.e-gov.go.jp",
		MaxRetries:        1,
		RetryBaseDelay:    time.Millisecond,
		SearchCacheTTL:    time.Minute,
		DetailCacheTTL:    time.Minute,
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
