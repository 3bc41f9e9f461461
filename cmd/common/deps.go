// Package common provides shared utilities for command implementations.
package common

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/jonesrussell/north-cloud/news-crawler/internal/config"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/logger"
)

// CommandDeps holds common dependencies for all commands.
type CommandDeps struct {
	Logger logger.Interface
	Config *config.Config
}

// NewCommandDeps loads the configuration from the global viper instance and
// builds the logger.
func NewCommandDeps() (*CommandDeps, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(*cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	deps := &CommandDeps{
		Logger: log.With("service", cfg.App.Name, "version", cfg.App.Version),
		Config: cfg,
	}
	if validateErr := deps.Validate(); validateErr != nil {
		return nil, validateErr
	}
	return deps, nil
}

// Validate ensures all required dependencies are present.
func (d CommandDeps) Validate() error {
	if d.Logger == nil {
		return ErrLoggerRequired
	}
	if d.Config == nil {
		return ErrConfigRequired
	}
	if d.Config.Database == nil {
		return ErrDatabaseRequired
	}
	return nil
}
