// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package opensearch

import (
	"encoding/json"
	"time"
)

// Config represents OpenSearch configuration
type Config struct {
	URL   string `json:"url"`
	Index string `json:"index"`
	// MaxRetries is the number of retries on 429/502/503/504 responses;
	// zero disables retries
	MaxRetries int `json:"max_retries"`
	// RetryDelay is the first retry delay, doubled on every attempt
	RetryDelay time.Duration `json:"retry_delay"`
}

// SearchResponse represents the parts of an OpenSearch search response used
// by aggregation requests
type SearchResponse struct {
	Took         int             `json:"took"`
	Total        int             `json:"total"`
	Aggregations json.RawMessage `json:"aggregations,omitempty"`
}
