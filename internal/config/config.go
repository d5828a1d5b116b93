// Package config loads and validates the crawler configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"leadscout/pkg/types"
)

// Config captures the full configuration required to run a crawl batch.
type Config struct {
	Targets     []types.CrawlTarget `yaml:"targets"`
	Directories DirectoriesConfig   `yaml:"directories"`
	Crawl       CrawlConfig         `yaml:"crawl"`
	Fleet       FleetConfig         `yaml:"fleet"`
	Robots      RobotsConfig        `yaml:"robots"`
	Rendering   RenderingConfig     `yaml:"rendering"`
	Report      ReportConfig        `yaml:"report"`
	DB          SQLConfig           `yaml:"db"`
	Logging     LoggingConfig       `yaml:"logging"`
}

// CrawlConfig bounds a single company crawl.
type CrawlConfig struct {
	MaxPages       int             `yaml:"max_pages"`
	LinksPerPage   int             `yaml:"links_per_page"`
	RequestTimeout Duration        `yaml:"request_timeout"`
	DelayMin       Duration        `yaml:"delay_min"`
	DelayMax       Duration        `yaml:"delay_max"`
	UserAgent      string          `yaml:"user_agent"`
	MaxBodyBytes   int64           `yaml:"max_body_bytes"`
	RateLimit      RateLimitConfig `yaml:"rate_limit_per_domain"`
}

// RateLimitConfig applies a token bucket per domain on top of the politeness
// delay.
type RateLimitConfig struct {
	Requests int      `yaml:"requests"`
	Window   Duration `yaml:"window"`
}

// FleetConfig controls how many companies are crawled in parallel. Pages
// within one company are always fetched sequentially.
type FleetConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// RobotsConfig configures robots.txt handling.
type RobotsConfig struct {
	Respect   bool     `yaml:"respect"`
	UserAgent string   `yaml:"user_agent"`
	CacheTTL  Duration `yaml:"cache_ttl"`
}

// RenderingConfig controls optional JavaScript rendering.
type RenderingConfig struct {
	Enabled            bool     `yaml:"enabled"`
	Timeout            Duration `yaml:"timeout"`
	WaitForSelector    string   `yaml:"wait_for_selector"`
	DisableHeadless    bool     `yaml:"disable_headless"`
	ConcurrentSessions int      `yaml:"concurrent_sessions"`
}

// DirectoriesConfig lists business-directory pages scanned for additional
// company seeds.
type DirectoriesConfig struct {
	URLs            []string `yaml:"urls"`
	MaxPerDirectory int      `yaml:"max_per_directory"`
}

// ReportConfig selects output files for the report sink.
type ReportConfig struct {
	Directory string `yaml:"directory"`
	XLSX      bool   `yaml:"xlsx"`
}

// SQLConfig describes an optional relational sink for company records.
type SQLConfig struct {
	Driver          string   `yaml:"driver"`
	DSN             string   `yaml:"dsn"`
	MaxOpenConns    int      `yaml:"max_open_conns"`
	MaxIdleConns    int      `yaml:"max_idle_conns"`
	ConnMaxLifetime Duration `yaml:"conn_max_lifetime"`
	AutoMigrate     bool     `yaml:"auto_migrate"`
}

// LoggingConfig selects log verbosity and format.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Structured bool   `yaml:"structured"`
}

// Default returns a Config populated with sensible defaults.
func Default() Config {
	return Config{
		Crawl: CrawlConfig{
			MaxPages:       5,
			LinksPerPage:   5,
			RequestTimeout: DurationFrom(10 * time.Second),
			DelayMin:       DurationFrom(1 * time.Second),
			DelayMax:       DurationFrom(2 * time.Second),
			MaxBodyBytes:   5 * 1024 * 1024,
		},
		Fleet: FleetConfig{
			Concurrency: 4,
		},
		Robots: RobotsConfig{
			Respect:  false,
			CacheTTL: DurationFrom(30 * time.Minute),
		},
		Rendering: RenderingConfig{
			Timeout:            DurationFrom(60 * time.Second),
			ConcurrentSessions: 1,
		},
		Directories: DirectoriesConfig{
			MaxPerDirectory: 20,
		},
		Report: ReportConfig{
			Directory: ".",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file, applying defaults for anything unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the crawler cannot honour.
func (c *Config) Validate() error {
	if c.Crawl.MaxPages <= 0 {
		return errors.New("crawl.max_pages must be positive")
	}
	if c.Crawl.LinksPerPage <= 0 {
		return errors.New("crawl.links_per_page must be positive")
	}
	if c.Crawl.RequestTimeout.Duration <= 0 {
		return errors.New("crawl.request_timeout must be positive")
	}
	if c.Crawl.DelayMin.Duration < 0 || c.Crawl.DelayMax.Duration < 0 {
		return errors.New("crawl delays must not be negative")
	}
	if c.Crawl.DelayMax.Duration < c.Crawl.DelayMin.Duration {
		return errors.New("crawl.delay_max must not be below crawl.delay_min")
	}
	if c.Fleet.Concurrency <= 0 {
		return errors.New("fleet.concurrency must be positive")
	}
	if c.Crawl.RateLimit.Requests < 0 {
		return errors.New("crawl.rate_limit_per_domain.requests must not be negative")
	}
	for i, target := range c.Targets {
		if target.URL == "" {
			return fmt.Errorf("targets[%d]: missing url", i)
		}
	}
	return nil
}
