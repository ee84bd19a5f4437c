// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-aggregation-service/internal/domain/model"
)

// AggregationSearcher defines the behavior for aggregation operations
// This abstraction allows different search implementations (OpenSearch, etc.)
// without the domain layer knowing about specific implementations
type AggregationSearcher interface {
	// Aggregate runs the aggregations of the criteria and returns their results
	Aggregate(ctx context.Context, criteria model.AggregationCriteria) (*model.AggregationResult, error)

	// IsReady checks if the search service is ready
	IsReady(ctx context.Context) error
}
