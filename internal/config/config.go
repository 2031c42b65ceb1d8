package config

import (
	"fmt"
	"time"
)

// DefaultBaseURL keeps compatibility with the endpoint the tool was
// originally written against.
const DefaultBaseURL = "https://news.ycombinator.com"

type Config struct {
	BaseURL             string              `yaml:"base_url"`
	HTTP                HttpConfig          `yaml:"http"`
	Backoff             BackoffConfig       `yaml:"backoff"`
	RateLimit           RateLimitConfig     `yaml:"rate_limit"`
	Rod                 RodConfig           `yaml:"rod"`
	Robots              RobotsConfig        `yaml:"robots"`
	Extract             ExtractConfig       `yaml:"extract"`
	Observability       ObservabilityConfig `yaml:"observability"`
}

type HttpConfig struct {
	UserAgent                 string `yaml:"user_agent"`
	ConnectTimeoutMS          int    `yaml:"connect_timeout_ms"`
	TotalTimeoutMS            int    `yaml:"total_timeout_ms"`
	MaxRetries                int    `yaml:"max_retries"`
	MaxIdleConnections        int    `yaml:"max_idle_connections"`
	MaxIdleConnectionsPerHost int    `yaml:"max_idle_connections_per_host"`
	IdleConnectionTimeoutS    int    `yaml:"idle_connection_timeout_s"`
	AcceptLanguage            string `yaml:"accept_language"`
}

type BackoffConfig struct {
	MinMS     int `yaml:"min_ms"`
	MaxMS     int `yaml:"max_ms"`
	JitterPct int `yaml:"jitter_pct"`
}

type RateLimitConfig struct {
	MaxConcurrentPerHost int `yaml:"max_concurrent_per_host"`
	RPM                  int `yaml:"rpm"`
}

// RodConfig controls the optional headless-Chrome page acquisition used for
// JS-rendered pages. Disabled by default; the default target is static HTML.
type RodConfig struct {
	Enabled          bool   `yaml:"enabled"`
	ChromePath       string `yaml:"chrome_path"`
	PageTimeoutS     int    `yaml:"page_timeout_s"`
	WaitLoadTimeoutS int    `yaml:"wait_load_timeout_s"`
}

// RobotsConfig controls the robots.txt check before the page GET. Disabled
// by default: with it off a run's only outbound call is the page fetch
// itself.
type RobotsConfig struct {
	Enabled       bool `yaml:"enabled"`
	CacheTTLHours int  `yaml:"cache_ttl_hours"`
}

type ExtractConfig struct {
	// Lenient switches missing-field handling from abort-the-run to
	// skip-the-record-and-warn.
	Lenient bool `yaml:"lenient"`
}

type ObservabilityConfig struct {
	LogPath  string `yaml:"log_path"`
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a complete runnable configuration. max_retries is 0,
// so a run issues exactly one outbound request unless retries are explicitly
// enabled.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: DefaultBaseURL,
		HTTP: HttpConfig{
			UserAgent:                 "hn-scraper/1.0",
			ConnectTimeoutMS:          5000,
			TotalTimeoutMS:            30000,
			MaxRetries:                0,
			MaxIdleConnections:        100,
			MaxIdleConnectionsPerHost: 10,
			IdleConnectionTimeoutS:    90,
			AcceptLanguage:            "en-US,en;q=0.9",
		},
		Backoff: BackoffConfig{
			MinMS:     250,
			MaxMS:     2000,
			JitterPct: 20,
		},
		RateLimit: RateLimitConfig{
			MaxConcurrentPerHost: 2,
			RPM:                  30,
		},
		Rod: RodConfig{
			Enabled:          false,
			PageTimeoutS:     30,
			WaitLoadTimeoutS: 15,
		},
		Robots: RobotsConfig{
			Enabled:       false,
			CacheTTLHours: 12,
		},
		Extract: ExtractConfig{
			Lenient: false,
		},
		Observability: ObservabilityConfig{
			LogLevel: "info",
		},
	}
}

// Validation
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.HTTP.UserAgent == "" {
		return fmt.Errorf("http.user_agent is required")
	}
	if c.HTTP.ConnectTimeoutMS <= 0 {
		return fmt.Errorf("http.connect_timeout_ms must be > 0")
	}
	if c.HTTP.TotalTimeoutMS <= 0 {
		return fmt.Errorf("http.total_timeout_ms must be > 0")
	}
	if c.HTTP.MaxRetries < 0 {
		return fmt.Errorf("http.max_retries must be >= 0")
	}
	if c.RateLimit.MaxConcurrentPerHost <= 0 {
		return fmt.Errorf("rate_limit.max_concurrent_per_host must be > 0")
	}
	if c.RateLimit.RPM <= 0 {
		return fmt.Errorf("rate_limit.rpm must be > 0")
	}
	if c.Robots.Enabled && c.Robots.CacheTTLHours <= 0 {
		return fmt.Errorf("robots.cache_ttl_hours must be > 0 when robots.enabled is true")
	}
	if c.Backoff.MinMS <= 0 {
		return fmt.Errorf("backoff.min_ms must be > 0")
	}
	if c.Backoff.MaxMS <= 0 {
		return fmt.Errorf("backoff.max_ms must be > 0")
	}
	if c.Backoff.MinMS > c.Backoff.MaxMS {
		return fmt.Errorf("backoff.min_ms must be <= backoff.max_ms")
	}
	if c.Backoff.JitterPct < 0 || c.Backoff.JitterPct > 100 {
		return fmt.Errorf("backoff.jitter_pct must be between 0 and 100")
	}
	if c.Observability.LogLevel == "" {
		return fmt.Errorf("observability.log_level is required")
	}
	if c.Rod.Enabled {
		if c.Rod.PageTimeoutS <= 0 {
			return fmt.Errorf("rod.page_timeout_s must be > 0")
		}
		if c.Rod.WaitLoadTimeoutS <= 0 {
			return fmt.Errorf("rod.wait_load_timeout_s must be > 0")
		}
	}
	return nil
}

// Getters
func (c *Config) GetConnectTimeout() time.Duration {
	return time.Duration(c.HTTP.ConnectTimeoutMS) * time.Millisecond
}

func (c *Config) GetTotalTimeout() time.Duration {
	return time.Duration(c.HTTP.TotalTimeoutMS) * time.Millisecond
}

func (c *Config) GetIdleConnectionTimeout() time.Duration {
	return time.Duration(c.HTTP.IdleConnectionTimeoutS) * time.Second
}

func (c *Config) GetBackoffMin() time.Duration {
	return time.Duration(c.Backoff.MinMS) * time.Millisecond
}

func (c *Config) GetBackoffMax() time.Duration {
	return time.Duration(c.Backoff.MaxMS) * time.Millisecond
}

func (c *Config) GetRobotsCacheTTL() time.Duration {
	return time.Duration(c.Robots.CacheTTLHours) * time.Hour
}

func (c *Config) GetRodPageTimeout() time.Duration {
	return time.Duration(c.Rod.PageTimeoutS) * time.Second
}

func (c *Config) GetRodWaitLoadTimeout() time.Duration {
	return time.Duration(c.Rod.WaitLoadTimeoutS) * time.Second
}
