package fetcher

import (
	"time"

	crawlercfg "github.com/jonesrussell/north-cloud/news-crawler/internal/config/crawler"
)

// Config holds fetcher configuration.
type Config struct {
	UserAgent       string
	Headers         map[string]string
	RequestTimeout  time.Duration
	PolitenessDelay time.Duration
	MaxBodySize     int64
}

// FromCrawlerConfig builds a fetcher configuration from the crawler settings,
// layering site-specific headers under the configured ones.
func FromCrawlerConfig(c *crawlercfg.Config, siteHeaders map[string]string) Config {
	headers := make(map[string]string, len(siteHeaders)+len(c.Headers))
	for k, v := range siteHeaders {
		headers[k] = v
	}
	for k, v := range c.Headers {
		headers[k] = v
	}
	return Config{
		UserAgent:       c.UserAgent,
		Headers:         headers,
		RequestTimeout:  c.RequestTimeout,
		PolitenessDelay: c.PolitenessDelay,
		MaxBodySize:     c.MaxBodySize,
	}
}

// WithDefaults returns a copy of the config with default values applied for zero-value fields.
// PolitenessDelay is left as is: zero disables spacing.
func (c Config) WithDefaults() Config {
	if c.UserAgent == "" {
		c.UserAgent = crawlercfg.DefaultUserAgent
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = crawlercfg.DefaultRequestTimeout
	}
	if c.MaxBodySize <= 0 {
		c.MaxBodySize = crawlercfg.DefaultMaxBodySize
	}
	return c
}
