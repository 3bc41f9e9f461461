// Package app holds application-level configuration.
package app

import (
	"errors"
	"fmt"
)

// Default configuration values.
const (
	DefaultName        = "news-crawler"
	DefaultVersion     = "0.1.0"
	DefaultEnvironment = "production"
)

// Config represents application-specific configuration settings.
type Config struct {
	// Name is the name of the application
	Name string `mapstructure:"name" yaml:"name"`
	// Version is the version of the application
	Version string `mapstructure:"version" yaml:"version"`
	// Environment is the application environment (development, staging, production)
	Environment string `mapstructure:"environment" yaml:"environment"`
	// Debug indicates whether debug mode is enabled
	Debug bool `mapstructure:"debug" yaml:"debug"`
}

// New returns the default application configuration.
func New() *Config {
	return &Config{
		Name:        DefaultName,
		Version:     DefaultVersion,
		Environment: DefaultEnvironment,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Environment {
	case "development", "staging", "production":
	case "":
		return errors.New("environment must be specified")
	default:
		return fmt.Errorf("invalid environment: %s", c.Environment)
	}

	if c.Name == "" {
		return errors.New("application name must be specified")
	}
	return nil
}
