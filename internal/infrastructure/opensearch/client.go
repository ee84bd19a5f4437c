// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package opensearch

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/linuxfoundation/lfx-v2-aggregation-service/pkg/errors"

	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"
)

type httpClient struct {
	client *opensearchapi.Client
}

func (c *httpClient) Search(ctx context.Context, index string, body []byte) (*SearchResponse, error) {

	slog.DebugContext(ctx, "executing opensearch search",
		"index", index,
		"body", string(body),
	)

	searchRequest := opensearchapi.SearchReq{
		Indices: []string{index},
		Body:    bytes.NewReader(body),
	}

	searchResponse, errSearchResponse := c.client.Search(ctx, &searchRequest)
	if errSearchResponse != nil {
		// the engine answered: the request itself was rejected (unknown
		// field type, bad interval, missing index...)
		if searchResponse != nil {
			if resp := searchResponse.Inspect().Response; resp != nil &&
				resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError {
				return nil, errors.NewValidation("search engine rejected the aggregation request", errSearchResponse)
			}
		}
		return nil, errors.NewServiceUnavailable("failed to execute search", errSearchResponse)
	}

	// Check for errors in the response
	if searchResponse.Errors {
		return nil, errors.NewUnexpected("opensearch search returned errors")
	}

	result := &SearchResponse{
		Took:         searchResponse.Took,
		Total:        searchResponse.Hits.Total.Value,
		Aggregations: searchResponse.Aggregations,
	}

	slog.DebugContext(ctx, "opensearch search executed",
		"took", result.Took,
		"total_hits", result.Total,
	)

	return result, nil
}

func (c *httpClient) Ping(ctx context.Context) error {
	resp, err := c.client.Ping(ctx, nil)
	if err != nil {
		return errors.NewServiceUnavailable("opensearch is not reachable", err)
	}
	if resp.IsError() {
		return errors.NewServiceUnavailable(fmt.Sprintf("opensearch ping returned status %d", resp.StatusCode))
	}
	return nil
}
