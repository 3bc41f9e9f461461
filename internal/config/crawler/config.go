// Package crawler provides configuration for the fetch-extract-persist pipeline:
// target site, request identity, politeness and worker pool sizing.
package crawler

import (
	"errors"
	"time"
)

// Default configuration values.
const (
	DefaultSite            = "ixbt"
	DefaultWorkers         = 4
	DefaultMaxWorkers      = 32
	DefaultPolitenessDelay = 1 * time.Second
	DefaultRequestTimeout  = 30 * time.Second
	DefaultMaxBodySize     = 10 * 1024 * 1024 // 10MB
	DefaultLookbackDays    = 1

	// DefaultUserAgent is a desktop browser identity; the source site rejects
	// empty and library-default agents.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/102.0.0.0 Safari/537.36"
)

// Config represents the crawler configuration.
type Config struct {
	// Site is the name of the site profile to crawl
	Site string `mapstructure:"site" yaml:"site"`
	// SiteURL overrides the profile's base URL (used for mirrors and tests)
	SiteURL string `mapstructure:"site_url" yaml:"site_url"`
	// SitesFile is an optional YAML file with additional site profiles
	SitesFile string `mapstructure:"sites_file" yaml:"sites_file"`
	// UserAgent is sent with every request
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
	// Headers are extra request headers sent with every request
	Headers map[string]string `mapstructure:"headers" yaml:"headers"`
	// Workers is the number of concurrent article fetchers
	Workers int `mapstructure:"workers" yaml:"workers"`
	// PolitenessDelay is the minimum spacing between article fetches of one worker
	PolitenessDelay time.Duration `mapstructure:"politeness_delay" yaml:"politeness_delay"`
	// RequestTimeout bounds every fetch
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	// MaxBodySize caps response bodies in bytes
	MaxBodySize int64 `mapstructure:"max_body_size" yaml:"max_body_size"`
	// Deduplicate skips articles whose URL is already stored
	Deduplicate bool `mapstructure:"deduplicate" yaml:"deduplicate"`
	// Schedule is a cron spec; when set the crawl command runs periodically
	Schedule string `mapstructure:"schedule" yaml:"schedule"`
	// LookbackDays is the number of past days each scheduled run covers
	LookbackDays int `mapstructure:"lookback_days" yaml:"lookback_days"`
}

// New returns the default crawler configuration.
func New() *Config {
	return &Config{
		Site:            DefaultSite,
		UserAgent:       DefaultUserAgent,
		Headers:         map[string]string{},
		Workers:         DefaultWorkers,
		PolitenessDelay: DefaultPolitenessDelay,
		RequestTimeout:  DefaultRequestTimeout,
		MaxBodySize:     DefaultMaxBodySize,
		LookbackDays:    DefaultLookbackDays,
	}
}

// Validate validates the crawler configuration.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return errors.New("workers must be positive")
	}
	if c.Workers > DefaultMaxWorkers {
		return errors.New("workers must not exceed 32")
	}
	if c.PolitenessDelay < 0 {
		return errors.New("politeness_delay must be non-negative")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request_timeout must be positive")
	}
	if c.MaxBodySize <= 0 {
		return errors.New("max_body_size must be positive")
	}
	if c.UserAgent == "" {
		return errors.New("user_agent must not be empty")
	}
	if c.LookbackDays < 1 {
		return errors.New("lookback_days must be positive")
	}
	return nil
}
