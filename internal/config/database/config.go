// Package database provides database configuration management.
package database

import (
	"errors"
	"fmt"
	"time"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Default configuration values.
const (
	DefaultDriver          = DriverSQLite
	DefaultDSN             = "articles.db"
	DefaultMaxOpenConns    = 10
	DefaultMaxIdleConns    = 5
	DefaultConnMaxLifetime = 5 * time.Minute
	DefaultPingTimeout     = 5 * time.Second
)

// Config represents database configuration settings.
type Config struct {
	// Driver is either sqlite3 or postgres
	Driver string `mapstructure:"driver" yaml:"driver"`
	// DSN is a file path for sqlite3 or a connection string for postgres
	DSN string `mapstructure:"dsn" yaml:"dsn"`
	// MaxOpenConns caps the connection pool (sqlite is always capped to 1)
	MaxOpenConns int `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	// MaxIdleConns caps idle connections
	MaxIdleConns int `mapstructure:"max_idle_conns" yaml:"max_idle_conns"`
	// ConnMaxLifetime recycles connections
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" yaml:"conn_max_lifetime"`
	// PingTimeout bounds the startup connectivity check
	PingTimeout time.Duration `mapstructure:"ping_timeout" yaml:"ping_timeout"`
}

// New returns the default database configuration.
func New() *Config {
	return &Config{
		Driver:          DefaultDriver,
		DSN:             DefaultDSN,
		MaxOpenConns:    DefaultMaxOpenConns,
		MaxIdleConns:    DefaultMaxIdleConns,
		ConnMaxLifetime: DefaultConnMaxLifetime,
		PingTimeout:     DefaultPingTimeout,
	}
}

// Validate checks the driver and DSN.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Driver)
	}
	if c.DSN == "" {
		return errors.New("database dsn must be specified")
	}
	if c.MaxOpenConns < 1 {
		return errors.New("max_open_conns must be positive")
	}
	return nil
}
