// Package elasticsearch provides configuration for the optional search mirror.
package elasticsearch

import (
	"errors"
	"time"
)

// Default configuration values.
const (
	DefaultAddress      = "http://127.0.0.1:9200"
	DefaultIndexName    = "news_articles"
	DefaultIndexTimeout = 10 * time.Second
)

// Config represents Elasticsearch mirror settings.
type Config struct {
	// Enabled turns the mirror on
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Addresses lists the cluster nodes
	Addresses []string `mapstructure:"addresses" yaml:"addresses"`
	// Username for basic auth
	Username string `mapstructure:"username" yaml:"username"`
	// Password for basic auth
	Password string `mapstructure:"password" yaml:"password" json:"-"`
	// APIKey takes precedence over basic auth
	APIKey string `mapstructure:"api_key" yaml:"api_key" json:"-"`
	// IndexName receives the article documents
	IndexName string `mapstructure:"index_name" yaml:"index_name"`
	// IndexTimeout bounds a single index request
	IndexTimeout time.Duration `mapstructure:"index_timeout" yaml:"index_timeout"`
}

// New returns the default (disabled) mirror configuration.
func New() *Config {
	return &Config{
		Addresses:    []string{DefaultAddress},
		IndexName:    DefaultIndexName,
		IndexTimeout: DefaultIndexTimeout,
	}
}

// Validate only checks settings when the mirror is enabled.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if len(c.Addresses) == 0 {
		return errors.New("elasticsearch addresses cannot be empty")
	}
	if c.IndexName == "" {
		return errors.New("elasticsearch index_name cannot be empty")
	}
	return nil
}
