// Package server provides configuration for the metrics and health endpoint.
package server

import "time"

// Default configuration values.
const (
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
)

// Config represents server-specific configuration settings.
type Config struct {
	// Address is the listen address; empty disables the server
	Address string `mapstructure:"address" yaml:"address"`
	// ReadTimeout is the maximum duration for reading the entire request
	ReadTimeout time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	// WriteTimeout is the maximum duration before timing out writes of the response
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// New returns the default server configuration with the server disabled.
func New() *Config {
	return &Config{
		ReadTimeout:     DefaultReadTimeout,
		WriteTimeout:    DefaultWriteTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// Enabled reports whether an address was configured.
func (c *Config) Enabled() bool {
	return c.Address != ""
}
