package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v10"
	"storefront-extractor/internal/types"
)

// Env holds the process configuration read from environment variables
type Env struct {
	Port     int    `env:"API_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Timeout            time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
	MaxRetries         int           `env:"HTTP_MAX_RETRIES" envDefault:"0"`
	RequestDelay       time.Duration `env:"REQUEST_DELAY" envDefault:"0s"`
	UserAgent          string        `env:"USER_AGENT"`
	UseHeadlessBrowser bool          `env:"USE_HEADLESS_BROWSER" envDefault:"false"`

	PlatformAPIURL        string `env:"PLATFORM_API_URL"`
	EnableVariantFallback bool   `env:"ENABLE_VARIANT_FALLBACK" envDefault:"false"`

	BreakerTimeout     time.Duration `env:"BREAKER_TIMEOUT" envDefault:"30s"`
	BreakerMinRequests uint32        `env:"BREAKER_MIN_REQUESTS" envDefault:"5"`
}

// Load parses and validates the environment
func Load() (*Env, error) {
	cfg := &Env{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges
func (c *Env) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid API port: %d", c.Port)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.Timeout)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("HTTP_MAX_RETRIES must not be negative, got %d", c.MaxRetries)
	}
	if c.PlatformAPIURL != "" {
		u, err := url.Parse(c.PlatformAPIURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("PLATFORM_API_URL must be an absolute URL, got %q", c.PlatformAPIURL)
		}
	}
	return nil
}

// ExtractorConfig converts the environment into the extractor configuration
func (c *Env) ExtractorConfig() *types.Config {
	config := types.DefaultConfig()
	config.Timeout = c.Timeout
	config.MaxRetries = c.MaxRetries
	config.RequestDelay = c.RequestDelay
	config.UseHeadlessBrowser = c.UseHeadlessBrowser
	config.PlatformAPIURL = c.PlatformAPIURL
	config.EnableVariantFallback = c.EnableVariantFallback
	config.BreakerTimeout = c.BreakerTimeout
	config.BreakerMinRequests = c.BreakerMinRequests
	if c.UserAgent != "" {
		config.UserAgent = c.UserAgent
	}
	return config
}
