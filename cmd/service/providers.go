// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/linuxfoundation/lfx-v2-aggregation-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-aggregation-service/internal/infrastructure/mock"
	"github.com/linuxfoundation/lfx-v2-aggregation-service/internal/infrastructure/opensearch"
	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/constants"
)

// SearcherConfig holds the environment configuration of the aggregation searcher
type SearcherConfig struct {
	Source               string
	OpenSearchURL        string
	OpenSearchIndex      string
	OpenSearchMaxRetries int
	OpenSearchRetryDelay time.Duration
}

// SearcherConfigFromEnv reads the searcher configuration, applying defaults
// for unset variables.
func SearcherConfigFromEnv() (SearcherConfig, error) {
	cfg := SearcherConfig{
		Source:               os.Getenv("SEARCH_SOURCE"),
		OpenSearchURL:        os.Getenv("OPENSEARCH_URL"),
		OpenSearchIndex:      os.Getenv("OPENSEARCH_INDEX"),
		OpenSearchMaxRetries: 3,
		OpenSearchRetryDelay: 500 * time.Millisecond,
	}
	if cfg.Source == "" {
		cfg.Source = "opensearch"
	}
	if cfg.OpenSearchURL == "" {
		cfg.OpenSearchURL = "http://localhost:9200"
	}
	if cfg.OpenSearchIndex == "" {
		cfg.OpenSearchIndex = constants.DefaultIndex
	}

	if maxRetries := os.Getenv("OPENSEARCH_MAX_RETRIES"); maxRetries != "" {
		value, err := strconv.Atoi(maxRetries)
		if err != nil || value < 0 {
			return cfg, fmt.Errorf("invalid OPENSEARCH_MAX_RETRIES value %q", maxRetries)
		}
		cfg.OpenSearchMaxRetries = value
	}

	if retryDelay := os.Getenv("OPENSEARCH_RETRY_DELAY"); retryDelay != "" {
		value, err := time.ParseDuration(retryDelay)
		if err != nil {
			return cfg, fmt.Errorf("invalid OPENSEARCH_RETRY_DELAY duration %q: %w", retryDelay, err)
		}
		cfg.OpenSearchRetryDelay = value
	}

	return cfg, nil
}

// NewAggregationSearcher builds the searcher selected by cfg.Source
func NewAggregationSearcher(ctx context.Context, cfg SearcherConfig) (port.AggregationSearcher, error) {
	switch cfg.Source {
	case "mock":
		slog.InfoContext(ctx, "initializing mock aggregation searcher")
		return mock.NewMockAggregationSearcher(), nil

	case "opensearch":
		slog.InfoContext(ctx, "initializing opensearch aggregation searcher",
			"url", cfg.OpenSearchURL,
			"index", cfg.OpenSearchIndex,
			"max_retries", cfg.OpenSearchMaxRetries,
			"retry_delay", cfg.OpenSearchRetryDelay,
		)
		searcher, err := opensearch.NewSearcher(ctx, opensearch.Config{
			URL:        cfg.OpenSearchURL,
			Index:      cfg.OpenSearchIndex,
			MaxRetries: cfg.OpenSearchMaxRetries,
			RetryDelay: cfg.OpenSearchRetryDelay,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenSearch searcher: %w", err)
		}
		return searcher, nil

	default:
		return nil, fmt.Errorf("unsupported search implementation: %s", cfg.Source)
	}
}

// AggregationSearcherImpl injects the aggregation searcher implementation
func AggregationSearcherImpl(ctx context.Context) port.AggregationSearcher {
	cfg, err := SearcherConfigFromEnv()
	if err != nil {
		log.Fatalf("invalid searcher configuration: %v", err)
	}
	searcher, err := NewAggregationSearcher(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	return searcher
}
