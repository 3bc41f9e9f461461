// Package elasticsearch mirrors persisted articles into an Elasticsearch index.
package elasticsearch

import (
	"context"
	"errors"
	"fmt"

	es "github.com/elastic/go-elasticsearch/v8"

	esconfig "github.com/jonesrussell/north-cloud/news-crawler/internal/config/elasticsearch"
)

// ErrDisabled is returned by NewClient when the mirror is not enabled.
var ErrDisabled = errors.New("elasticsearch mirror is disabled")

// NewClient creates an Elasticsearch client from the mirror configuration.
func NewClient(cfg esconfig.Config) (*es.Client, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid elasticsearch config: %w", err)
	}

	clientConfig := es.Config{
		Addresses: cfg.Addresses,
	}
	if cfg.APIKey != "" {
		clientConfig.APIKey = cfg.APIKey
	} else if cfg.Username != "" {
		clientConfig.Username = cfg.Username
		clientConfig.Password = cfg.Password
	}

	client, err := es.NewClient(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	return client, nil
}

// Ping verifies the cluster is reachable.
func Ping(ctx context.Context, client *es.Client) error {
	res, err := client.Ping(client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to ping Elasticsearch: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error pinging Elasticsearch: %s", res.String())
	}

	return nil
}
