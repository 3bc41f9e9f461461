// Package config provides configuration management for the news crawler.
// Values come from defaults, an optional YAML file and environment variables,
// resolved through viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/jonesrussell/north-cloud/news-crawler/internal/config/app"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/config/crawler"
	dbconfig "github.com/jonesrussell/north-cloud/news-crawler/internal/config/database"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/config/elasticsearch"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/config/server"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/logger"
)

// Config represents the application configuration.
type Config struct {
	App           *app.Config           `mapstructure:"app"           yaml:"app"`
	Logger        *logger.Config        `mapstructure:"logger"        yaml:"logger"`
	Crawler       *crawler.Config       `mapstructure:"crawler"       yaml:"crawler"`
	Database      *dbconfig.Config      `mapstructure:"database"      yaml:"database"`
	Elasticsearch *elasticsearch.Config `mapstructure:"elasticsearch" yaml:"elasticsearch"`
	Server        *server.Config        `mapstructure:"server"        yaml:"server"`
}

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string][]string{
	"app.environment":         {"APP_ENV"},
	"app.debug":               {"APP_DEBUG"},
	"logger.level":            {"LOG_LEVEL"},
	"logger.encoding":         {"LOG_FORMAT"},
	"database.driver":         {"DB_DRIVER"},
	"database.dsn":            {"DB_DSN", "DATABASE_URL"},
	"crawler.site_url":        {"CRAWLER_SITE_URL"},
	"crawler.workers":         {"CRAWLER_WORKERS"},
	"crawler.deduplicate":     {"CRAWLER_DEDUPLICATE"},
	"elasticsearch.enabled":   {"ELASTICSEARCH_ENABLED"},
	"elasticsearch.addresses": {"ELASTICSEARCH_HOSTS", "ELASTICSEARCH_ADDRESSES"},
	"elasticsearch.password":  {"ELASTIC_PASSWORD", "ELASTICSEARCH_PASSWORD"},
	"elasticsearch.api_key":   {"ELASTICSEARCH_API_KEY"},
}

// Init prepares v: loads .env, sets defaults, binds environment variables and
// reads the config file. A missing config file is not an error.
func Init(v *viper.Viper, cfgFile string) error {
	_ = godotenv.Load()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	SetDefaults(v)

	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return nil
}

// SetDefaults registers every configuration key with its default value so that
// environment overrides are visible to Unmarshal.
func SetDefaults(v *viper.Viper) {
	a := app.New()
	v.SetDefault("app", map[string]any{
		"name":        a.Name,
		"version":     a.Version,
		"environment": a.Environment,
		"debug":       false,
	})

	v.SetDefault("logger", map[string]any{
		"level":        string(logger.InfoLevel),
		"development":  false,
		"encoding":     logger.EncodingJSON,
		"output_paths": []string{"stdout"},
	})

	c := crawler.New()
	v.SetDefault("crawler", map[string]any{
		"site":             c.Site,
		"site_url":         "",
		"sites_file":       "",
		"user_agent":       c.UserAgent,
		"headers":          map[string]string{},
		"workers":          c.Workers,
		"politeness_delay": c.PolitenessDelay.String(),
		"request_timeout":  c.RequestTimeout.String(),
		"max_body_size":    c.MaxBodySize,
		"deduplicate":      false,
		"schedule":         "",
		"lookback_days":    c.LookbackDays,
	})

	d := dbconfig.New()
	v.SetDefault("database", map[string]any{
		"driver":            d.Driver,
		"dsn":               d.DSN,
		"max_open_conns":    d.MaxOpenConns,
		"max_idle_conns":    d.MaxIdleConns,
		"conn_max_lifetime": d.ConnMaxLifetime.String(),
		"ping_timeout":      d.PingTimeout.String(),
	})

	es := elasticsearch.New()
	v.SetDefault("elasticsearch", map[string]any{
		"enabled":       false,
		"addresses":     es.Addresses,
		"username":      "",
		"password":      "",
		"api_key":       "",
		"index_name":    es.IndexName,
		"index_timeout": es.IndexTimeout.String(),
	})

	s := server.New()
	v.SetDefault("server", map[string]any{
		"address":          "",
		"read_timeout":     s.ReadTimeout.String(),
		"write_timeout":    s.WriteTimeout.String(),
		"shutdown_timeout": s.ShutdownTimeout.String(),
	})
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	applyDevelopmentLogging(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates every section.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if err := c.Crawler.Validate(); err != nil {
		return fmt.Errorf("crawler: %w", err)
	}
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Elasticsearch.Validate(); err != nil {
		return fmt.Errorf("elasticsearch: %w", err)
	}
	return nil
}

// applyDevelopmentLogging switches to readable console logs in development and
// to debug level when app.debug is set.
func applyDevelopmentLogging(cfg *Config) {
	if cfg.App.Debug {
		cfg.Logger.Level = logger.DebugLevel
	}
	if cfg.App.Environment == "development" {
		cfg.Logger.Development = true
		cfg.Logger.Encoding = logger.EncodingConsole
	}
}
