// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"text/template"
	"time"

	"github.com/linuxfoundation/lfx-v2-aggregation-service/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-aggregation-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/scalars"

	"github.com/opensearch-project/opensearch-go/v4"
	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"
)

var aggregationBodyTemplate = template.Must(
	template.New("aggregationBody").
		Parse(aggregationBodySource))

// OpenSearchSearcher implements the AggregationSearcher interface for OpenSearch
type OpenSearchSearcher struct {
	client OpenSearchClientRetriever
	index  string
}

// OpenSearchClientRetriever defines the interface for OpenSearch operations
// This allows for easy mocking and testing
type OpenSearchClientRetriever interface {
	Search(ctx context.Context, index string, body []byte) (*SearchResponse, error)
	Ping(ctx context.Context) error
}

// Aggregate implements the AggregationSearcher interface
func (os *OpenSearchSearcher) Aggregate(ctx context.Context, criteria model.AggregationCriteria) (*model.AggregationResult, error) {
	index := criteria.Index
	if index == "" {
		index = os.index
	}

	slog.DebugContext(ctx, "executing opensearch aggregation",
		"index", index,
		"aggregations", len(criteria.Aggregations),
	)

	// Render the search body
	body, err := os.Render(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to render search body: %w", err)
	}

	// Execute the search
	response, err := os.client.Search(ctx, index, body)
	if err != nil {
		return nil, fmt.Errorf("opensearch search failed: %w", err)
	}

	// Convert response to domain objects
	result, err := os.convertResponse(response)
	if err != nil {
		return nil, fmt.Errorf("failed to convert search response: %w", err)
	}

	slog.DebugContext(ctx, "opensearch aggregation completed",
		"results_count", result.Aggregations.Len(),
		"total", result.Total,
	)
	return result, nil
}

// IsReady checks that the OpenSearch cluster answers
func (os *OpenSearchSearcher) IsReady(ctx context.Context) error {
	return os.client.Ping(ctx)
}

// Render generates the OpenSearch search body for the provided criteria
func (os *OpenSearchSearcher) Render(ctx context.Context, criteria model.AggregationCriteria) ([]byte, error) {
	aggs, err := encodeAggregations(criteria.Aggregations)
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode aggregations", "error", err)
		return nil, err
	}

	data := bodyData{Aggs: string(aggs)}
	if criteria.Query != nil && !criteria.Query.IsEmpty() {
		data.Query = criteria.Query.String()
	}

	var buf bytes.Buffer
	if err := aggregationBodyTemplate.Execute(&buf, data); err != nil {
		slog.ErrorContext(ctx, "failed to render search body template", "error", err)
		return nil, err
	}

	// validates and compacts the rendered body
	var compact bytes.Buffer
	if err := json.Compact(&compact, buf.Bytes()); err != nil {
		slog.ErrorContext(ctx, "failed to compact rendered search body", "error", err)
		return nil, errors.NewUnexpected("rendered search body is not valid JSON", err)
	}
	return compact.Bytes(), nil
}

// convertResponse converts OpenSearch response to domain objects
func (os *OpenSearchSearcher) convertResponse(response *SearchResponse) (*model.AggregationResult, error) {
	result := &model.AggregationResult{
		Total: response.Total,
		Took:  response.Took,
	}

	if len(response.Aggregations) == 0 {
		return result, nil
	}

	aggs, err := scalars.FromValue(response.Aggregations)
	if err != nil {
		return nil, err
	}
	result.Aggregations = aggs
	return result, nil
}

// retryOnStatus lists the engine answers worth another attempt: overload
// and gateway failures.
var retryOnStatus = []int{
	http.StatusTooManyRequests,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
	http.StatusGatewayTimeout,
}

// retryBackoff returns an exponential backoff starting at delay. A zero delay
// retries immediately.
func retryBackoff(delay time.Duration) func(attempt int) time.Duration {
	if delay <= 0 {
		return nil
	}
	return func(attempt int) time.Duration {
		if attempt < 1 {
			attempt = 1
		}
		return time.Duration(int64(delay) * int64(1<<(attempt-1)))
	}
}

// NewSearcher returns a new OpenSearchSearcher implementation
func NewSearcher(ctx context.Context, config Config) (port.AggregationSearcher, error) {

	if config.URL == "" {
		slog.ErrorContext(ctx, "opensearch URL is required")
		return nil, fmt.Errorf("opensearch URL is required")
	}
	if config.Index == "" {
		slog.ErrorContext(ctx, "opensearch index is required")
		return nil, fmt.Errorf("opensearch index is required")
	}

	opensearchClient, errOpensearchClient := opensearchapi.NewClient(opensearchapi.Config{
		Client: opensearch.Config{
			Addresses: []string{config.URL},
			Transport: &http.Transport{
				MaxIdleConnsPerHost:   10,
				ResponseHeaderTimeout: 10 * time.Second,
				DialContext:           (&net.Dialer{Timeout: 3 * time.Second}).DialContext,
			},
			DisableRetry:  config.MaxRetries == 0,
			MaxRetries:    config.MaxRetries,
			RetryOnStatus: retryOnStatus,
			RetryBackoff:  retryBackoff(config.RetryDelay),
		},
	})
	if errOpensearchClient != nil {
		slog.ErrorContext(ctx, "failed to create OpenSearch client", "error", errOpensearchClient)
		return nil, fmt.Errorf("failed to create OpenSearch client: %w", errOpensearchClient)
	}

	return &OpenSearchSearcher{
		client: &httpClient{
			client: opensearchClient,
		},
		index: config.Index,
	}, nil
}
