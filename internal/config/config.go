// Package config provides configuration management for the crawler.
// It defines the immutable per-run configuration and its defaults.
package config

import "time"

// CrawlConfig holds the configuration for one crawl run. It is built
// once at startup and never mutated afterwards.
type CrawlConfig struct {
	StartURL       string        `mapstructure:"start_url" yaml:"start_url"`             // URL the crawl starts from
	MaxPages       int           `mapstructure:"max_pages" yaml:"max_pages"`             // Page budget for the run
	RequestDelay   float64       `mapstructure:"request_delay" yaml:"request_delay"`     // Delay between request starts, in seconds
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"` // HTTP request timeout
	UserAgent      string        `mapstructure:"user_agent" yaml:"user_agent"`           // HTTP User-Agent header
	UseSitemap     bool          `mapstructure:"use_sitemap" yaml:"use_sitemap"`         // Whether to seed from sitemap.xml
	ContentLimit   int           `mapstructure:"content_limit" yaml:"content_limit"`     // Max extracted content characters (0=unlimited)
	OutputPath     string        `mapstructure:"output_path" yaml:"output_path"`         // Path of the JSON report
	NavThreshold   float64       `mapstructure:"nav_threshold" yaml:"nav_threshold"`     // Fraction of pages for navigation-link detection
	LinkStructure  bool          `mapstructure:"link_structure" yaml:"link_structure"`   // Whether to include the link graph in the report
	DatabasePath   string        `mapstructure:"database_path" yaml:"database_path"`     // SQLite archive path (empty=disabled)
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *CrawlConfig {
	return &CrawlConfig{
		MaxPages:       100,
		RequestDelay:   0.5,
		RequestTimeout: 30 * time.Second,
		UserAgent:      "Seokumo/1.0",
		UseSitemap:     true,
		ContentLimit:   0,
		OutputPath:     "seo_crawler_results.json",
		NavThreshold:   0.8,
		LinkStructure:  true,
	}
}

// Delay returns the inter-request delay as a duration.
func (c *CrawlConfig) Delay() time.Duration {
	return time.Duration(c.RequestDelay * float64(time.Second))
}

// Validate checks if the configuration is valid.
func (c *CrawlConfig) Validate() error {
	if c.StartURL == "" {
		return ErrNoStartURL
	}
	if c.MaxPages < 0 {
		return ErrInvalidMaxPages
	}
	if c.RequestDelay < 0 {
		return ErrInvalidDelay
	}
	if c.RequestTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.ContentLimit < 0 {
		return ErrInvalidContentLimit
	}
	if c.NavThreshold < 0 || c.NavThreshold > 1 {
		return ErrInvalidNavThreshold
	}
	if c.OutputPath == "" {
		return ErrEmptyOutputPath
	}
	return nil
}
